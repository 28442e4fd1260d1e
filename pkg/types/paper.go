// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ai-scholar pipeline.
package types

import "strings"

// CitationNA marks a citation count the provider did not report. It is
// distinct from 0, which means the provider reported zero citations.
const CitationNA = -1

// UnknownAuthors is the sentinel stored when a provider returns no author
// information, so downstream stages never branch on an absent field.
const UnknownAuthors = "Unknown"

// Paper is one candidate academic work, normalized to a common shape at the
// provider gateway. After the gateway, Title and Source are always set; all
// other fields are best-effort.
type Paper struct {
	// Title is the paper title, trimmed and non-empty.
	Title string `json:"title" yaml:"title"`

	// Authors is a free-form author string ("Unknown" when absent).
	Authors string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract, possibly empty.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Year is the publication year; 0 means unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// URL points at the paper's landing page or PDF.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// DOI is the bare DOI without the https://doi.org/ prefix.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Citations is the citation count, or CitationNA when not reported.
	Citations int `json:"citations" yaml:"citations"`

	// Source identifies the provider that found this paper
	// (e.g. "arxiv", "crossref").
	Source string `json:"source" yaml:"source"`

	// Explanation is the human-readable relevance explanation, filled
	// only after ranking.
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`

	// RelevanceScore is a transient working score used between the
	// quality filter and the ranking engine.
	RelevanceScore float64 `json:"-" yaml:"-"`
}

// HasCitations reports whether the paper carries a positive citation count.
func (p Paper) HasCitations() bool {
	return p.Citations > 0
}

// CitationsOrZero returns the citation count with CitationNA collapsed to 0,
// for sort keys that treat "unknown" and "zero" alike.
func (p Paper) CitationsOrZero() int {
	if p.Citations == CitationNA {
		return 0
	}
	return p.Citations
}

// HasUsableAuthors reports whether the author field carries real author
// information rather than a sentinel.
func (p Paper) HasUsableAuthors() bool {
	a := strings.ToLower(strings.TrimSpace(p.Authors))
	switch a {
	case "", "unknown", "n/a", "no authors":
		return false
	}
	return true
}

// RankingBatch is a bounded slice of papers submitted to a ranking strategy
// together with its position in the partition. Batches cover the candidate
// pool exactly once, in original order, with no overlap.
type RankingBatch struct {
	Papers []Paper
	Index  int
	Total  int
}
