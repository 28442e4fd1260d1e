// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alextsol/ai-scholar/pkg/types"
)

// YearStrategy orders papers by a recency-weighted composite score:
// publication-age band weighted 0.5, the pre-filter relevance score 0.3,
// and a citation bonus 0.15 that only applies to papers from the last
// five years. The remaining 0.05 is reserved for venue prestige, which
// paper records do not carry, so it contributes nothing.
type YearStrategy struct {
	Now func() time.Time
}

// Name returns the strategy identifier.
func (s *YearStrategy) Name() string { return string(types.ModeYear) }

// Rank sorts papers by composite score descending, breaking ties by raw
// year descending, attaches explanations, and truncates to limit.
func (s *YearStrategy) Rank(_ context.Context, _ string, papers []types.Paper, limit int) []types.Paper {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	currentYear := now.Year()

	type scored struct {
		paper types.Paper
		score float64
	}
	entries := make([]scored, len(papers))
	for i, p := range papers {
		entries[i] = scored{paper: p, score: compositeScore(p, currentYear)}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].score != entries[b].score {
			return entries[a].score > entries[b].score
		}
		return entries[a].paper.Year > entries[b].paper.Year
	})

	out := make([]types.Paper, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.paper)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	for i := range out {
		out[i].Explanation = yearExplanation(out[i], i+1, currentYear)
	}
	return out
}

// compositeScore combines recency, pre-filter relevance, and a
// recency-gated citation bonus.
func compositeScore(p types.Paper, currentYear int) float64 {
	age := currentYear - p.Year
	return 0.5*recencyBand(p.Year, age) + 0.3*p.RelevanceScore + 0.15*citationBonus(p, age)
}

// recencyBand maps publication age to a score band. Unknown years score
// zero.
func recencyBand(year, age int) float64 {
	if year <= 0 {
		return 0
	}
	switch {
	case age <= 1:
		return 1.0
	case age <= 2:
		return 0.9
	case age <= 3:
		return 0.8
	case age <= 5:
		return 0.7
	case age <= 10:
		return 0.5
	default:
		return 0.2
	}
}

// citationBonus rewards citation counts only for papers from the last
// five years, so old heavily-cited work cannot dominate a recency sort.
func citationBonus(p types.Paper, age int) float64 {
	if p.Year <= 0 || age > 5 {
		return 0
	}
	switch c := p.CitationsOrZero(); {
	case c > 100:
		return 0.2
	case c > 50:
		return 0.15
	case c > 20:
		return 0.1
	case c > 5:
		return 0.05
	default:
		return 0
	}
}

// yearExplanation builds the templated explanation for one paper at the
// given 1-based rank.
func yearExplanation(p types.Paper, rank, currentYear int) string {
	if p.Year <= 0 {
		return fmt.Sprintf("Ranked #%d by recency despite an unknown publication year, selected for relevance to the query.", rank)
	}
	age := currentYear - p.Year
	var temporal string
	switch {
	case age <= 0:
		temporal = fmt.Sprintf("cutting-edge %d research representing the latest developments", p.Year)
	case age == 1:
		temporal = fmt.Sprintf("very recent %d work capturing immediate research trends", p.Year)
	case age == 2:
		temporal = fmt.Sprintf("recent %d contribution reflecting current methodological advances", p.Year)
	case age <= 5:
		temporal = "contemporary research offering proven modern approaches"
	default:
		temporal = "established work providing foundational perspective"
	}

	if bonus := citationBonus(p, age); bonus > 0 {
		return fmt.Sprintf("Ranked #%d as %s, with %d citations signalling high contemporary impact.", rank, temporal, p.CitationsOrZero())
	}
	return fmt.Sprintf("Ranked #%d as %s.", rank, temporal)
}
