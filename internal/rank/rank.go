// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders the filtered candidate pool and attaches a
// relevance explanation to every paper. Three interchangeable strategies
// exist: AI batch ranking through the genai registry, citation-count
// ordering, and recency-weighted ordering.
package rank

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alextsol/ai-scholar/internal/genai"
	"github.com/alextsol/ai-scholar/pkg/types"
)

// Strategy orders papers for a query and fills in their Explanation.
type Strategy interface {
	// Name identifies the strategy for logging and result metadata.
	Name() string
	// Rank returns papers in ranked order, at most limit entries for
	// deterministic strategies. The AI strategy returns the full
	// explained pool; truncation happens after merge.
	Rank(ctx context.Context, query string, papers []types.Paper, limit int) []types.Paper
}

// ForMode builds the strategy for a ranking mode. The registry is only
// required for ModeAI and may be nil otherwise.
func ForMode(mode types.RankingMode, reg *genai.Registry, cfg types.RankConfig, log zerolog.Logger) (Strategy, error) {
	switch mode {
	case types.ModeAI:
		if reg == nil {
			return nil, fmt.Errorf("AI ranking requires a configured provider registry")
		}
		return NewAIStrategy(reg, cfg, log), nil
	case types.ModeCitations:
		return &CitationStrategy{}, nil
	case types.ModeYear:
		return &YearStrategy{Now: time.Now}, nil
	default:
		return nil, fmt.Errorf("unknown ranking mode %q", mode)
	}
}
