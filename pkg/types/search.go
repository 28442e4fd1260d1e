// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// RankingMode selects the ranking strategy applied to the candidate pool.
type RankingMode string

const (
	ModeAI        RankingMode = "ai"
	ModeCitations RankingMode = "citations"
	ModeYear      RankingMode = "year"
)

// ParseRankingMode converts a user-supplied string into a RankingMode.
func ParseRankingMode(s string) (RankingMode, error) {
	switch RankingMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAI:
		return ModeAI, nil
	case ModeCitations:
		return ModeCitations, nil
	case ModeYear:
		return ModeYear, nil
	}
	return "", fmt.Errorf("unknown ranking mode %q (want ai, citations, or year)", s)
}

// Validation errors surfaced before the pipeline is entered.
var (
	ErrEmptyQuery   = errors.New("query is empty")
	ErrInvalidLimit = errors.New("limit must be positive")
)

// Request holds the caller's search parameters.
type Request struct {
	// Query is the free-text research question. Required.
	Query string `json:"query" yaml:"query"`

	// PerProviderLimit caps the number of raw results requested from
	// each provider.
	PerProviderLimit int `json:"per_provider_limit" yaml:"per_provider_limit"`

	// ResultLimit caps the final merged output.
	ResultLimit int `json:"result_limit" yaml:"result_limit"`

	// Mode selects the ranking strategy.
	Mode RankingMode `json:"mode" yaml:"mode"`

	// MinYear and MaxYear bound the publication year; 0 means unbounded.
	MinYear int `json:"min_year,omitempty" yaml:"min_year,omitempty"`
	MaxYear int `json:"max_year,omitempty" yaml:"max_year,omitempty"`
}

// Validate checks the request before any provider call is made.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if r.PerProviderLimit <= 0 || r.ResultLimit <= 0 {
		return ErrInvalidLimit
	}
	if r.Mode != ModeAI && r.Mode != ModeCitations && r.Mode != ModeYear {
		return fmt.Errorf("unknown ranking mode %q", r.Mode)
	}
	return nil
}

// SearchResult is the pipeline output: an ordered, explained, truncated
// list of papers plus bookkeeping about the run. A failed pipeline still
// produces a well-formed (possibly empty) SearchResult, never an error.
type SearchResult struct {
	// Papers is the ranked output, at most Request.ResultLimit long.
	Papers []Paper `json:"papers" yaml:"papers"`

	// TotalFound counts unique papers aggregated before filtering.
	TotalFound int `json:"total_found" yaml:"total_found"`

	// BackendsUsed lists the providers that returned without error.
	BackendsUsed []string `json:"backends_used" yaml:"backends_used"`

	// ProcessingTimeMs is the wall-clock pipeline duration.
	ProcessingTimeMs int64 `json:"processing_time_ms" yaml:"processing_time_ms"`

	// RankingMode records which strategy produced the ordering.
	RankingMode RankingMode `json:"ranking_mode" yaml:"ranking_mode"`
}
