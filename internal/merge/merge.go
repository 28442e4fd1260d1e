// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge reconciles the ranking output with the full candidate
// records. The AI step may truncate or paraphrase titles, so matching is
// fuzzy; ranked items are never dropped even when no candidate matches.
package merge

import (
	"strings"
	"unicode"

	"github.com/alextsol/ai-scholar/internal/rank"
	"github.com/alextsol/ai-scholar/pkg/types"
)

// Placeholder explanations that must never reach the caller.
var placeholderExplanations = []string{
	"No explanation provided",
	"AI ranking based on relevance to query",
}

// minFuzzyTitleLength is the shortest title allowed to participate in a
// substring match between titles of different length. Short titles still
// match when exactly equal.
const minFuzzyTitleLength = 15

// Finalize merges ranked entries with their full candidate records and
// truncates to limit. Each ranked entry takes the first matching
// candidate's record, with the ranked explanation and citation count
// overlaid; entries with no match are synthesized from their own fields.
func Finalize(ranked, candidates []types.Paper, query string, limit int) []types.Paper {
	merged := make([]types.Paper, 0, len(ranked))
	for _, r := range ranked {
		out, ok := matchCandidate(r, candidates)
		if !ok {
			out = synthesize(r)
		}
		out.Explanation = finalExplanation(r.Explanation, query, out.Title)
		if r.CitationsOrZero() > 0 {
			out.Citations = r.Citations
		}
		merged = append(merged, out)
	}

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// matchCandidate returns a copy of the first candidate whose normalized
// title fuzzily matches the ranked entry's.
func matchCandidate(r types.Paper, candidates []types.Paper) (types.Paper, bool) {
	rTitle := normalizeTitle(r.Title)
	if rTitle == "" {
		return types.Paper{}, false
	}
	for _, c := range candidates {
		if titlesMatch(rTitle, normalizeTitle(c.Title)) {
			return c, true
		}
	}
	return types.Paper{}, false
}

// titlesMatch reports whether two normalized titles refer to the same
// paper: exact equality always matches, and titles of different length
// match by substring containment in either direction provided the
// shorter one is long enough to make containment meaningful.
func titlesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	shorter := a
	if len(b) < len(shorter) {
		shorter = b
	}
	if len(shorter) < minFuzzyTitleLength {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// synthesize builds a minimal record from a ranked entry that matched no
// candidate.
func synthesize(r types.Paper) types.Paper {
	title := titleCase(strings.TrimSpace(r.Title))
	if title == "" {
		title = "Unknown Title"
	}
	authors := strings.TrimSpace(r.Authors)
	if authors == "" {
		authors = "Unknown Authors"
	}
	citations := types.CitationNA
	if r.CitationsOrZero() > 0 {
		citations = r.Citations
	}
	return types.Paper{
		Title:     title,
		Authors:   authors,
		Citations: citations,
	}
}

// finalExplanation returns the ranked explanation unless it is empty or
// a known placeholder, in which case a query-specific fallback takes its
// place.
func finalExplanation(explanation, query, title string) string {
	explanation = strings.TrimSpace(explanation)
	if explanation == "" || isPlaceholder(explanation) {
		return rank.FallbackExplanation(query, title)
	}
	return explanation
}

func isPlaceholder(explanation string) bool {
	for _, p := range placeholderExplanations {
		if explanation == p {
			return true
		}
	}
	return false
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
