// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genai wraps the generative-AI providers used for ranking. Each
// provider implements Generator; Registry multiplexes across configured
// providers with priority ordering and quota-exhaustion cooldowns.
package genai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alextsol/ai-scholar/pkg/types"
)

// Generator produces a text completion for a prompt.
type Generator interface {
	// Name identifies the provider instance for logging and rotation.
	Name() string
	// Generate sends the prompt and returns the raw model output.
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	defaultMaxTokens   = 4096
	defaultTemperature = 0.3
	clientTimeout      = 120 * time.Second
)

// NewGenerator builds a Generator from provider config. Supported
// provider kinds are "gemini" and "openrouter".
func NewGenerator(cfg types.AIProviderConfig) (Generator, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	client := &http.Client{Timeout: clientTimeout}

	switch cfg.Provider {
	case "gemini":
		return &GeminiClient{
			name:        cfg.Name,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			Client:      client,
		}, nil
	case "openrouter":
		return &OpenRouterClient{
			name:        cfg.Name,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   maxTokens,
			Temperature: temperature,
			Client:      client,
		}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider kind %q", cfg.Provider)
	}
}
