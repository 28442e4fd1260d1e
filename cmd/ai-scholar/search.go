// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alextsol/ai-scholar/internal/aggregate"
	"github.com/alextsol/ai-scholar/internal/cache"
	"github.com/alextsol/ai-scholar/internal/genai"
	"github.com/alextsol/ai-scholar/internal/history"
	"github.com/alextsol/ai-scholar/internal/providers"
	"github.com/alextsol/ai-scholar/internal/rank"
	"github.com/alextsol/ai-scholar/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search academic providers and rank the merged results",
	Long: `Search queries the enabled academic providers in parallel, merges and
deduplicates their results, filters for relevance and quality, ranks the
survivors, and prints the explained result list.

The ai mode requires at least one AI provider credential in .secrets/
(gemini-api-key, gemini-api-key-2, gemini-api-key-3, or
openrouter-api-key); citations and year modes work without credentials.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("mode", "ai", "ranking mode: ai, citations, or year")
	searchCmd.Flags().Int("limit", 50, "maximum number of results to return")
	searchCmd.Flags().Int("per-provider", 0, "results requested from each provider (default from config)")
	searchCmd.Flags().Int("min-year", 0, "earliest publication year to include")
	searchCmd.Flags().Int("max-year", 0, "latest publication year to include")
	searchCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := types.ParseRankingMode(modeStr)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q (want table, json, or yaml)", format)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	perProvider, _ := cmd.Flags().GetInt("per-provider")
	minYear, _ := cmd.Flags().GetInt("min-year")
	maxYear, _ := cmd.Flags().GetInt("max-year")

	log := newLogger(cmd)
	cfg := pipelineConfig()
	if perProvider <= 0 {
		perProvider = cfg.Search.PerProviderLimit
	}

	req := types.Request{
		Query:            query,
		PerProviderLimit: perProvider,
		ResultLimit:      limit,
		Mode:             mode,
		MinYear:          minYear,
		MaxYear:          maxYear,
	}

	var registry *genai.Registry
	if mode == types.ModeAI {
		registry, err = genai.NewRegistry(cfg.Rank, log)
		if err != nil {
			return fmt.Errorf("ai ranking unavailable: %w (use --mode citations or --mode year)", err)
		}
	}

	strategies := func(m types.RankingMode) (rank.Strategy, error) {
		return rank.ForMode(m, registry, cfg.Rank, log)
	}

	var sink *history.Store
	if cfg.History.Path != "" {
		sink, err = history.NewStore(cfg.History)
		if err != nil {
			log.Warn().Err(err).Msg("search history disabled")
			sink = nil
		} else {
			defer sink.Close()
		}
	}

	svc := aggregate.New(
		providers.NewGateway(cfg.Search, log),
		cache.New(cfg.Cache),
		historyOrNil(sink),
		strategies,
		cfg.Filter,
		log,
	)

	result, err := svc.Search(cmd.Context(), req)
	if err != nil {
		return err
	}

	return writeResult(os.Stdout, result, format)
}

// historyOrNil keeps a typed nil *history.Store from reaching the
// service as a non-nil interface.
func historyOrNil(s *history.Store) aggregate.HistorySink {
	if s == nil {
		return nil
	}
	return s
}
