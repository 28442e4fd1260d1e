// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"testing"
	"time"

	"github.com/alextsol/ai-scholar/pkg/types"
)

var testNow = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func goodPaper(title string) types.Paper {
	return types.Paper{
		Title:     title,
		Authors:   "Jane Doe",
		Abstract:  "A thorough study of quantum error correction techniques applied to surface codes and their thresholds.",
		Year:      2024,
		URL:       "https://example.org/paper",
		DOI:       "10.1000/test",
		Citations: 150,
		Source:    "arxiv",
	}
}

func TestApplyRejectsShortTitles(t *testing.T) {
	papers := []types.Paper{
		goodPaper("Short"),
		goodPaper("Quantum error correction in surface codes"),
	}
	got := Apply(papers, "quantum error correction", types.FilterConfig{}, testNow)
	if len(got) != 1 {
		t.Fatalf("expected 1 paper, got %d", len(got))
	}
	if got[0].Title != "Quantum error correction in surface codes" {
		t.Fatalf("kept wrong paper: %q", got[0].Title)
	}
}

func TestApplyRejectsUnusableAuthors(t *testing.T) {
	for _, authors := range []string{"", "Unknown", "n/a", "No Authors"} {
		p := goodPaper("Quantum error correction in surface codes")
		p.Authors = authors
		got := Apply([]types.Paper{p}, "quantum error correction", types.FilterConfig{}, testNow)
		if len(got) != 0 {
			t.Fatalf("authors %q: expected rejection, got %d papers", authors, len(got))
		}
	}
}

func TestApplyDropsBelowMinScore(t *testing.T) {
	p := types.Paper{
		Title:     "A treatise on medieval agricultural practice",
		Authors:   "John Smith",
		Year:      1995,
		Citations: types.CitationNA,
		Source:    "crossref",
	}
	got := Apply([]types.Paper{p}, "quantum error correction", types.FilterConfig{}, testNow)
	if len(got) != 0 {
		t.Fatalf("expected irrelevant paper dropped, got %d papers", len(got))
	}
}

func TestApplySortsByScoreDescending(t *testing.T) {
	weak := goodPaper("Loosely related work on quantum devices")
	weak.Abstract = ""
	weak.DOI = ""
	weak.Citations = 0

	strong := goodPaper("Quantum error correction in surface codes")

	got := Apply([]types.Paper{weak, strong}, "quantum error correction", types.FilterConfig{}, testNow)
	if len(got) != 2 {
		t.Fatalf("expected 2 papers, got %d", len(got))
	}
	if got[0].Title != strong.Title {
		t.Fatalf("expected strongest paper first, got %q", got[0].Title)
	}
	if got[0].RelevanceScore <= got[1].RelevanceScore {
		t.Fatalf("scores not descending: %f then %f", got[0].RelevanceScore, got[1].RelevanceScore)
	}
}

func TestApplyTruncatesToMaxCandidates(t *testing.T) {
	var papers []types.Paper
	for i := 0; i < 10; i++ {
		papers = append(papers, goodPaper("Quantum error correction in surface codes"))
	}
	got := Apply(papers, "quantum error correction", types.FilterConfig{MaxCandidates: 3}, testNow)
	if len(got) != 3 {
		t.Fatalf("expected 3 papers after cap, got %d", len(got))
	}
}

func TestRelevanceScore(t *testing.T) {
	tests := []struct {
		name  string
		paper types.Paper
		query string
		want  float64
	}{
		{
			name:  "all terms in title plus whole-query bonus",
			paper: types.Paper{Title: "quantum error correction"},
			query: "quantum error correction",
			want:  0.9, // 1.0*0.6 + 0.3 bonus
		},
		{
			name:  "half terms in title only",
			paper: types.Paper{Title: "quantum devices and applications"},
			query: "quantum error",
			want:  0.3, // 0.5*0.6
		},
		{
			name:  "whole query in abstract",
			paper: types.Paper{Title: "unrelated title here", Abstract: "we study quantum error correction"},
			query: "quantum error correction",
			want:  0.6, // 1.0*0.4 + 0.2 bonus
		},
		{
			name:  "no overlap",
			paper: types.Paper{Title: "medieval agriculture", Abstract: "crop rotation"},
			query: "quantum error",
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := splitTerms(tt.query)
			got := relevanceScore(tt.paper, tt.query, terms)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("relevanceScore = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name  string
		paper types.Paper
		want  float64
	}{
		{
			name: "everything present caps at 1.0",
			paper: types.Paper{
				DOI:       "10.1/x",
				URL:       "https://example.org",
				Abstract:  string(make([]byte, 150)),
				Citations: 500,
				Year:      2025,
			},
			want: 1.0,
		},
		{
			name:  "bare paper",
			paper: types.Paper{Citations: types.CitationNA, Year: 1990},
			want:  0,
		},
		{
			name:  "medium abstract and modest citations",
			paper: types.Paper{Abstract: string(make([]byte, 60)), Citations: 50, Year: 1990},
			want:  0.3,
		},
		{
			name:  "recent year bonus",
			paper: types.Paper{Year: 2020, Citations: types.CitationNA},
			want:  0.1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qualityScore(tt.paper, testNow)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("qualityScore = %f, want %f", got, tt.want)
			}
		})
	}
}
