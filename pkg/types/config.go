// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ai-scholar/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the provider gateway.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PerProviderLimit is the default number of results requested from
	// each provider when the caller does not specify one.
	PerProviderLimit int `json:"per_provider_limit" yaml:"per_provider_limit"`

	// Enable flags for each provider backend.
	EnableArxiv           bool `json:"enable_arxiv" yaml:"enable_arxiv"`
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`
	EnableCrossRef        bool `json:"enable_crossref" yaml:"enable_crossref"`
	EnableCORE            bool `json:"enable_core" yaml:"enable_core"`
	EnableOpenAlex        bool `json:"enable_openalex" yaml:"enable_openalex"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// COREAPIKey authenticates against the CORE v3 API.
	COREAPIKey string `json:"core_api_key,omitempty" yaml:"core_api_key,omitempty"`

	// Mailto is sent to OpenAlex for polite pool access, and to CrossRef
	// when CrossRefMailto is unset.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// CrossRefMailto overrides Mailto for the CrossRef polite pool.
	CrossRefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`
}

// FilterConfig holds settings for the quality pre-filter.
type FilterConfig struct {
	// MinScore is the minimum combined relevance/quality score a paper
	// needs to survive filtering (default 0.3).
	MinScore float64 `json:"min_score" yaml:"min_score"`

	// MaxCandidates caps the candidate pool handed to ranking, bounding
	// the AI stage's token and latency budget (default 200).
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`
}

// AIProviderConfig describes one credential/model pair usable for AI
// ranking. Runtime quota state is tracked by the genai registry, not here.
type AIProviderConfig struct {
	// Name identifies the entry in logs (e.g. "gemini-key1").
	Name string `json:"name" yaml:"name"`

	// Provider selects the client implementation: "gemini" or "openrouter".
	Provider string `json:"provider" yaml:"provider"`

	// APIKey authenticates against the provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the model identifier (e.g. "models/gemini-2.5-flash-lite").
	Model string `json:"model" yaml:"model"`

	// MaxTokens bounds the response size.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature controls sampling (ranking wants low values).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// BatchSize is this provider's optimal papers-per-prompt count.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// Priority orders provider selection; lower is preferred.
	Priority int `json:"priority" yaml:"priority"`

	// Enabled removes the entry from rotation when false.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// RankConfig holds settings for the ranking engine.
type RankConfig struct {
	// Providers is the ordered list of AI provider configurations.
	Providers []AIProviderConfig `json:"providers" yaml:"providers"`

	// DefaultBatchSize is used when the selected provider does not
	// configure its own (default 30).
	DefaultBatchSize int `json:"default_batch_size" yaml:"default_batch_size"`

	// InterBatchDelay is the pause between successive AI batches,
	// skipped after the last batch (default 1s).
	InterBatchDelay time.Duration `json:"inter_batch_delay" yaml:"inter_batch_delay"`

	// QuotaCooldown is how long a quota-exceeded provider stays out of
	// rotation before becoming selectable again (default 1h).
	QuotaCooldown time.Duration `json:"quota_cooldown" yaml:"quota_cooldown"`
}

// CacheConfig holds settings for the search result cache.
type CacheConfig struct {
	// TTL is how long a cached result stays valid (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// HistoryConfig holds settings for the search history sink.
type HistoryConfig struct {
	// Path is the directory holding the history database; empty
	// disables history.
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Filter  FilterConfig  `json:"filter" yaml:"filter"`
	Rank    RankConfig    `json:"rank" yaml:"rank"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	History HistoryConfig `json:"history" yaml:"history"`
}
