// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"fmt"
	"sort"

	"github.com/alextsol/ai-scholar/pkg/types"
)

// CitationStrategy orders papers by citation count. Papers without a
// known positive citation count are appended after all cited papers,
// ordered by year descending so recent uncited work is not buried.
type CitationStrategy struct{}

// Name returns the strategy identifier.
func (s *CitationStrategy) Name() string { return string(types.ModeCitations) }

// Rank sorts cited papers by citation count descending, appends the
// uncited ones by year descending, attaches explanations, and truncates
// to limit.
func (s *CitationStrategy) Rank(_ context.Context, _ string, papers []types.Paper, limit int) []types.Paper {
	var cited, uncited []types.Paper
	for _, p := range papers {
		if p.CitationsOrZero() > 0 {
			cited = append(cited, p)
		} else {
			uncited = append(uncited, p)
		}
	}

	sort.SliceStable(cited, func(i, j int) bool {
		return cited[i].Citations > cited[j].Citations
	})
	sort.SliceStable(uncited, func(i, j int) bool {
		return uncited[i].Year > uncited[j].Year
	})

	ranked := append(cited, uncited...)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for i := range ranked {
		ranked[i].Explanation = citationExplanation(ranked[i], i+1)
	}
	return ranked
}

// citationExplanation builds the templated explanation for one paper at
// the given 1-based rank.
func citationExplanation(p types.Paper, rank int) string {
	citations := p.CitationsOrZero()
	if citations <= 0 {
		return fmt.Sprintf("Ranked #%d (limited citation data available), %s.", rank, impactNote(0))
	}
	return fmt.Sprintf("Ranked #%d with %d citations, %s.", rank, citations, impactNote(citations))
}

// impactNote maps a citation count to its qualitative impact band.
func impactNote(citations int) string {
	switch {
	case citations > 10000:
		return "indicating exceptional influence in shaping the field"
	case citations > 5000:
		return "demonstrating significant scholarly impact"
	case citations > 1000:
		return "showing strong academic recognition"
	case citations > 100:
		return "reflecting solid scholarly interest"
	case citations > 0:
		return "representing emerging academic contribution"
	default:
		return "selected for topical relevance and research quality"
	}
}
