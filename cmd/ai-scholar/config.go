// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/alextsol/ai-scholar/pkg/types"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultUserAgent       = "ai-scholar/0.1"
	defaultPerProvider     = 20
	defaultGeminiModel     = "gemini-2.0-flash"
	defaultOpenRouterModel = "deepseek/deepseek-chat-v3-0324:free"
	geminiBatchSize        = 35
	openRouterBatchSize    = 25
	defaultHistoryDir      = ".ai-scholar"
)

func init() {
	viper.SetDefault("search.per_provider_limit", defaultPerProvider)
	viper.SetDefault("search.enable_arxiv", true)
	viper.SetDefault("search.enable_semantic_scholar", true)
	viper.SetDefault("search.enable_crossref", true)
	viper.SetDefault("search.enable_core", true)
	viper.SetDefault("search.enable_openalex", true)
	viper.SetDefault("filter.min_score", 0.3)
	viper.SetDefault("filter.max_candidates", 200)
	viper.SetDefault("rank.gemini_model", defaultGeminiModel)
	viper.SetDefault("rank.openrouter_model", defaultOpenRouterModel)
	viper.SetDefault("rank.default_batch_size", 30)
	viper.SetDefault("rank.quota_cooldown", time.Hour)
	viper.SetDefault("cache.ttl", time.Hour)
	viper.SetDefault("history.path", defaultHistoryDir)
}

// pipelineConfig assembles the full pipeline configuration from the
// config file, environment, and loaded secrets.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: defaultUserAgent,
			},
			PerProviderLimit:      viper.GetInt("search.per_provider_limit"),
			EnableArxiv:           viper.GetBool("search.enable_arxiv"),
			EnableSemanticScholar: viper.GetBool("search.enable_semantic_scholar"),
			EnableCrossRef:        viper.GetBool("search.enable_crossref"),
			EnableCORE:            viper.GetBool("search.enable_core"),
			EnableOpenAlex:        viper.GetBool("search.enable_openalex"),
			SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", viper.GetString("search.semantic_scholar_api_key")),
			COREAPIKey:            secretDefault("core-api-key", viper.GetString("search.core_api_key")),
			Mailto:                secretDefault("openalex-email", viper.GetString("search.mailto")),
			CrossRefMailto:        secretDefault("crossref-mailto", viper.GetString("search.crossref_mailto")),
		},
		Filter: types.FilterConfig{
			MinScore:      viper.GetFloat64("filter.min_score"),
			MaxCandidates: viper.GetInt("filter.max_candidates"),
		},
		Rank: types.RankConfig{
			Providers:        aiProviders(),
			DefaultBatchSize: viper.GetInt("rank.default_batch_size"),
			InterBatchDelay:  viper.GetDuration("rank.inter_batch_delay"),
			QuotaCooldown:    viper.GetDuration("rank.quota_cooldown"),
		},
		Cache: types.CacheConfig{
			TTL: viper.GetDuration("cache.ttl"),
		},
		History: types.HistoryConfig{
			Path: viper.GetString("history.path"),
		},
	}
}

// aiProviders builds the rotation list from available credentials:
// up to three Gemini keys in priority order, then OpenRouter as the
// final fallback.
func aiProviders() []types.AIProviderConfig {
	var providers []types.AIProviderConfig

	geminiModel := viper.GetString("rank.gemini_model")
	for i, key := range []string{"gemini-api-key", "gemini-api-key-2", "gemini-api-key-3"} {
		apiKey := secretDefault(key, "")
		if apiKey == "" {
			continue
		}
		providers = append(providers, types.AIProviderConfig{
			Name:      fmt.Sprintf("gemini-%d", i+1),
			Provider:  "gemini",
			APIKey:    apiKey,
			Model:     geminiModel,
			BatchSize: geminiBatchSize,
			Priority:  i + 1,
			Enabled:   true,
		})
	}

	if apiKey := secretDefault("openrouter-api-key", ""); apiKey != "" {
		providers = append(providers, types.AIProviderConfig{
			Name:      "openrouter",
			Provider:  "openrouter",
			APIKey:    apiKey,
			Model:     viper.GetString("rank.openrouter_model"),
			BatchSize: openRouterBatchSize,
			Priority:  len(providers) + 1,
			Enabled:   true,
		})
	}

	return providers
}
