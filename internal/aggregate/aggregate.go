// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate orchestrates the full search pipeline: provider
// fan-out, year filtering, deduplication, quality filtering, ranking,
// and merge. Partial provider failure degrades the result; only an
// invalid request produces an error.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alextsol/ai-scholar/internal/cache"
	"github.com/alextsol/ai-scholar/internal/dedup"
	"github.com/alextsol/ai-scholar/internal/filter"
	"github.com/alextsol/ai-scholar/internal/history"
	"github.com/alextsol/ai-scholar/internal/merge"
	"github.com/alextsol/ai-scholar/internal/rank"
	"github.com/alextsol/ai-scholar/pkg/types"
)

// gateway is the provider fan-out dependency.
type gateway interface {
	Search(ctx context.Context, req types.Request) ([]types.Paper, []string)
}

// strategyFactory builds the ranking strategy for a mode.
type strategyFactory func(mode types.RankingMode) (rank.Strategy, error)

// HistorySink records completed searches.
type HistorySink interface {
	Record(ctx context.Context, e history.Entry) error
}

// Service runs the aggregation pipeline.
type Service struct {
	gateway    gateway
	cache      *cache.Cache
	history    HistorySink
	strategies strategyFactory
	filterCfg  types.FilterConfig
	now        func() time.Time
	log        zerolog.Logger
}

// New builds a Service. cache and hist may be nil to disable the
// corresponding stage.
func New(gw gateway, c *cache.Cache, hist HistorySink, strategies strategyFactory, filterCfg types.FilterConfig, log zerolog.Logger) *Service {
	return &Service{
		gateway:    gw,
		cache:      c,
		history:    hist,
		strategies: strategies,
		filterCfg:  filterCfg,
		now:        time.Now,
		log:        log,
	}
}

// Search runs the full pipeline for one request. The only error paths
// are request validation and an unbuildable ranking strategy; provider
// and AI failures degrade the result instead of failing it.
func (s *Service) Search(ctx context.Context, req types.Request) (types.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return types.SearchResult{}, err
	}

	key := cacheKey(req)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.log.Debug().Str("query", req.Query).Msg("cache hit")
			cached.ProcessingTimeMs = 0
			return cached, nil
		}
	}

	strategy, err := s.strategies(req.Mode)
	if err != nil {
		return types.SearchResult{}, err
	}

	started := s.now()

	papers, backendsUsed := s.gateway.Search(ctx, req)
	papers = filterByYear(papers, req.MinYear, req.MaxYear)
	unique := dedup.Papers(papers)
	candidates := filter.Apply(unique, req.Query, s.filterCfg, s.now())

	s.log.Info().
		Str("query", req.Query).
		Int("aggregated", len(papers)).
		Int("unique", len(unique)).
		Int("candidates", len(candidates)).
		Strs("backends", backendsUsed).
		Msg("candidate pool assembled")

	ranked := strategy.Rank(ctx, req.Query, candidates, req.ResultLimit)
	final := merge.Finalize(ranked, candidates, req.Query, req.ResultLimit)

	result := types.SearchResult{
		Papers:           final,
		TotalFound:       len(unique),
		BackendsUsed:     backendsUsed,
		ProcessingTimeMs: s.now().Sub(started).Milliseconds(),
		RankingMode:      req.Mode,
	}

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	s.record(ctx, req, result)

	return result, nil
}

// record writes the search to the history sink. Failures are logged and
// swallowed; a search that produced results must not fail afterwards.
func (s *Service) record(ctx context.Context, req types.Request, result types.SearchResult) {
	if s.history == nil {
		return
	}
	entry := history.Entry{
		Query:       req.Query,
		Backends:    result.BackendsUsed,
		Mode:        req.Mode,
		ResultCount: len(result.Papers),
		Summary:     fmt.Sprintf("%d of %d papers returned in %dms", len(result.Papers), result.TotalFound, result.ProcessingTimeMs),
		CreatedAt:   s.now(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		s.log.Warn().Err(err).Msg("recording search history")
	}
}

// cacheKey builds the lookup key from every request field that affects
// the result.
func cacheKey(req types.Request) string {
	return fmt.Sprintf("%s|%d|%d|%s|%d|%d",
		req.Query, req.PerProviderLimit, req.ResultLimit, req.Mode, req.MinYear, req.MaxYear)
}

// filterByYear drops papers outside [minYear, maxYear]. Papers with an
// unknown year are dropped only when a bound is set.
func filterByYear(papers []types.Paper, minYear, maxYear int) []types.Paper {
	if minYear == 0 && maxYear == 0 {
		return papers
	}
	kept := papers[:0:0]
	for _, p := range papers {
		if p.Year == 0 {
			continue
		}
		if minYear > 0 && p.Year < minYear {
			continue
		}
		if maxYear > 0 && p.Year > maxYear {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
