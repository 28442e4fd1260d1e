// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter scores deduplicated papers for query relevance and
// metadata completeness, drops low-quality records, and caps the
// candidate pool before the expensive ranking stage.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/alextsol/ai-scholar/pkg/types"
)

const (
	// minTitleLength is the shortest trimmed title considered usable.
	minTitleLength = 10

	defaultMinScore      = 0.3
	defaultMaxCandidates = 200
)

// Apply scores every paper against the query, drops records without a
// usable title or authors, drops papers below cfg.MinScore, and returns
// the survivors sorted by combined score descending (stable, so ties keep
// arrival order) and truncated to cfg.MaxCandidates. The combined score
// is stored in each survivor's RelevanceScore for the ranking stage.
func Apply(papers []types.Paper, query string, cfg types.FilterConfig, now time.Time) []types.Paper {
	minScore := cfg.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}
	maxCandidates := cfg.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}

	queryTerms := splitTerms(query)

	var kept []types.Paper
	for _, p := range papers {
		if len(strings.TrimSpace(p.Title)) < minTitleLength {
			continue
		}
		if !p.HasUsableAuthors() {
			continue
		}

		score := 0.7*relevanceScore(p, query, queryTerms) + 0.3*qualityScore(p, now)
		if score < minScore {
			continue
		}
		p.RelevanceScore = score
		kept = append(kept, p)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RelevanceScore > kept[j].RelevanceScore
	})

	if len(kept) > maxCandidates {
		kept = kept[:maxCandidates]
	}
	return kept
}

// splitTerms lower-cases the query and splits it on whitespace.
func splitTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// relevanceScore measures how much of the query appears in the title and
// abstract: term fraction in title weighted 0.6, in abstract 0.4, plus a
// flat bonus when the whole query string appears verbatim (0.3 in title,
// 0.2 in abstract). Capped at 1.0.
func relevanceScore(p types.Paper, query string, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	title := strings.ToLower(p.Title)
	abstract := strings.ToLower(p.Abstract)

	score := termFraction(title, terms) * 0.6
	score += termFraction(abstract, terms) * 0.4

	whole := strings.ToLower(strings.TrimSpace(query))
	if strings.Contains(title, whole) {
		score += 0.3
	} else if abstract != "" && strings.Contains(abstract, whole) {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// termFraction returns the fraction of terms present as words of text.
func termFraction(text string, terms []string) float64 {
	if text == "" {
		return 0
	}
	words := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		words[w] = true
	}
	matches := 0
	for _, term := range terms {
		if words[term] {
			matches++
		}
	}
	return float64(matches) / float64(len(terms))
}

// qualityScore measures metadata completeness: DOI and URL presence,
// abstract length bands, citation-count bands, and recency within the
// last decade. Capped at 1.0.
func qualityScore(p types.Paper, now time.Time) float64 {
	score := 0.0

	if p.DOI != "" {
		score += 0.3
	}
	if p.URL != "" {
		score += 0.2
	}

	switch n := len(p.Abstract); {
	case n > 100:
		score += 0.3
	case n > 50:
		score += 0.2
	}

	switch c := p.CitationsOrZero(); {
	case c > 100:
		score += 0.2
	case c > 10:
		score += 0.1
	}

	if p.Year > 0 && now.Year()-p.Year <= 10 {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
