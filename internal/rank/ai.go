// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alextsol/ai-scholar/internal/genai"
	"github.com/alextsol/ai-scholar/pkg/types"
)

const (
	defaultBatchSize      = 30
	defaultInterBatchWait = 1 * time.Second

	// minExplanationLength is the shortest model explanation accepted
	// before the fallback generator takes over.
	minExplanationLength = 20
)

// textGenerator is the part of genai.Registry the strategy uses.
type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, string, error)
	BatchSize() int
}

// AIStrategy ranks papers by submitting batches to the AI provider
// registry, sized to the preferred provider's configured optimum. Every
// batch failure degrades to templated fallback explanations instead of
// dropping papers.
type AIStrategy struct {
	reg       textGenerator
	batchSize int
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration)
	log       zerolog.Logger
}

// NewAIStrategy builds the AI strategy over a provider registry.
func NewAIStrategy(reg *genai.Registry, cfg types.RankConfig, log zerolog.Logger) *AIStrategy {
	batchSize := cfg.DefaultBatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	delay := cfg.InterBatchDelay
	if delay <= 0 {
		delay = defaultInterBatchWait
	}
	return &AIStrategy{
		reg:       reg,
		batchSize: batchSize,
		delay:     delay,
		sleep:     sleepCtx,
		log:       log,
	}
}

// Name returns the strategy identifier.
func (s *AIStrategy) Name() string { return string(types.ModeAI) }

// Rank submits batches sequentially and accumulates explained papers in
// batch order. The pool is capped at twice the result limit before
// batching; truncation to the limit itself happens after merge.
func (s *AIStrategy) Rank(ctx context.Context, query string, papers []types.Paper, limit int) []types.Paper {
	if len(papers) == 0 {
		return nil
	}
	if limit > 0 && len(papers) > limit*2 {
		papers = papers[:limit*2]
	}

	// Batch at the preferred provider's configured size; s.batchSize is
	// the fallback when no provider reports one.
	size := s.batchSize
	if v := s.reg.BatchSize(); v > 0 {
		size = v
	}

	batches := Partition(papers, size)
	var ranked []types.Paper
	for i, batch := range batches {
		ranked = append(ranked, s.rankBatch(ctx, query, batch, len(papers))...)
		if i < len(batches)-1 {
			s.sleep(ctx, s.delay)
		}
	}
	return ranked
}

// rankBatch runs one batch through the registry. Any failure yields the
// batch papers with fallback explanations.
func (s *AIStrategy) rankBatch(ctx context.Context, query string, batch types.RankingBatch, totalPapers int) []types.Paper {
	prompt, err := renderRankingPrompt(query, batch, totalPapers)
	if err != nil {
		s.log.Error().Err(err).Int("batch", batch.Index).Msg("building ranking prompt")
		return withFallbacks(batch.Papers, query)
	}

	out, provider, err := s.reg.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn().Err(err).Int("batch", batch.Index).Int("total", batch.Total).Msg("AI batch failed, using fallback explanations")
		return withFallbacks(batch.Papers, query)
	}

	entries := parseRankedEntries(out)
	if len(entries) == 0 {
		s.log.Warn().Str("provider", provider).Int("batch", batch.Index).Msg("unparseable AI ranking response, using fallback explanations")
		return withFallbacks(batch.Papers, query)
	}

	s.log.Debug().Str("provider", provider).Int("batch", batch.Index).Int("entries", len(entries)).Msg("AI batch ranked")

	ranked := make([]types.Paper, 0, len(batch.Papers))
	for _, e := range entries {
		p := types.Paper{
			Title:       e.Title,
			Authors:     e.Authors,
			Citations:   e.Citations,
			Explanation: strings.TrimSpace(e.Explanation),
		}
		if len(p.Explanation) < minExplanationLength {
			p.Explanation = FallbackExplanation(query, p.Title)
		}
		ranked = append(ranked, p)
	}

	// The model sometimes returns fewer entries than it was given;
	// papers beyond the returned prefix keep their own records with
	// fallback explanations.
	if len(entries) < len(batch.Papers) {
		ranked = append(ranked, withFallbacks(batch.Papers[len(entries):], query)...)
	}
	return ranked
}

// withFallbacks returns copies of papers with deterministic fallback
// explanations attached.
func withFallbacks(papers []types.Paper, query string) []types.Paper {
	out := make([]types.Paper, len(papers))
	for i, p := range papers {
		p.Explanation = FallbackExplanation(query, p.Title)
		out[i] = p
	}
	return out
}

// Partition splits papers into consecutive batches of at most size,
// annotated with 1-based batch index and total count.
func Partition(papers []types.Paper, size int) []types.RankingBatch {
	if size <= 0 || len(papers) == 0 {
		return nil
	}
	total := (len(papers) + size - 1) / size
	batches := make([]types.RankingBatch, 0, total)
	for start := 0; start < len(papers); start += size {
		end := start + size
		if end > len(papers) {
			end = len(papers)
		}
		batches = append(batches, types.RankingBatch{
			Papers: papers[start:end],
			Index:  len(batches) + 1,
			Total:  total,
		})
	}
	return batches
}

// sleepCtx waits for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
