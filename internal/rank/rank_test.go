// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alextsol/ai-scholar/pkg/types"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		papers    int
		size      int
		wantSizes []int
	}{
		{name: "77 papers in 30s", papers: 77, size: 30, wantSizes: []int{30, 30, 17}},
		{name: "exact multiple", papers: 60, size: 30, wantSizes: []int{30, 30}},
		{name: "single short batch", papers: 5, size: 30, wantSizes: []int{5}},
		{name: "empty", papers: 0, size: 30, wantSizes: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			papers := make([]types.Paper, tt.papers)
			batches := Partition(papers, tt.size)
			if len(batches) != len(tt.wantSizes) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.wantSizes))
			}
			for i, b := range batches {
				if len(b.Papers) != tt.wantSizes[i] {
					t.Errorf("batch %d has %d papers, want %d", i, len(b.Papers), tt.wantSizes[i])
				}
				if b.Index != i+1 || b.Total != len(tt.wantSizes) {
					t.Errorf("batch %d annotated %d/%d, want %d/%d", i, b.Index, b.Total, i+1, len(tt.wantSizes))
				}
			}
		})
	}
}

func TestCitationStrategyOrdering(t *testing.T) {
	citations := []int{50, 0, 200, types.CitationNA, 5, 0, 10, 1}
	years := []int{2020, 2024, 2018, 2025, 2021, 2019, 2022, 2023}
	papers := make([]types.Paper, len(citations))
	for i := range citations {
		papers[i] = types.Paper{Title: "paper", Citations: citations[i], Year: years[i]}
	}

	got := (&CitationStrategy{}).Rank(context.Background(), "q", papers, 0)
	if len(got) != len(papers) {
		t.Fatalf("got %d papers, want %d", len(got), len(papers))
	}

	wantCitations := []int{200, 50, 10, 5, 1}
	for i, want := range wantCitations {
		if got[i].Citations != want {
			t.Fatalf("position %d has %d citations, want %d", i, got[i].Citations, want)
		}
	}
	// Uncited tail ordered by year descending: 2025(NA), 2024(0), 2019(0).
	wantYears := []int{2025, 2024, 2019}
	for i, want := range wantYears {
		if got[len(wantCitations)+i].Year != want {
			t.Fatalf("uncited position %d has year %d, want %d", i, got[len(wantCitations)+i].Year, want)
		}
	}

	for i, p := range got {
		if p.Explanation == "" {
			t.Fatalf("paper %d has empty explanation", i)
		}
	}
	if !strings.Contains(got[0].Explanation, "#1") || !strings.Contains(got[0].Explanation, "200") {
		t.Fatalf("top explanation missing rank or count: %q", got[0].Explanation)
	}
	if !strings.Contains(got[5].Explanation, "limited citation data") {
		t.Fatalf("uncited explanation unexpected: %q", got[5].Explanation)
	}
}

func TestCitationStrategyLimit(t *testing.T) {
	papers := []types.Paper{
		{Title: "a", Citations: 5},
		{Title: "b", Citations: 10},
		{Title: "c", Citations: 1},
	}
	got := (&CitationStrategy{}).Rank(context.Background(), "q", papers, 2)
	if len(got) != 2 {
		t.Fatalf("got %d papers, want 2", len(got))
	}
	if got[0].Title != "b" || got[1].Title != "a" {
		t.Fatalf("unexpected order: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestImpactNote(t *testing.T) {
	tests := []struct {
		citations int
		want      string
	}{
		{15000, "exceptional influence"},
		{6000, "significant scholarly impact"},
		{2000, "strong academic recognition"},
		{150, "solid scholarly interest"},
		{3, "emerging academic contribution"},
		{0, "topical relevance"},
	}
	for _, tt := range tests {
		if got := impactNote(tt.citations); !strings.Contains(got, tt.want) {
			t.Errorf("impactNote(%d) = %q, want substring %q", tt.citations, got, tt.want)
		}
	}
}

func TestYearStrategyPrefersRecent(t *testing.T) {
	now := func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }
	papers := []types.Paper{
		{Title: "old classic", Year: 2005, Citations: 50000},
		{Title: "fresh work", Year: 2025, Citations: 3},
		{Title: "mid decade", Year: 2019, Citations: 40},
		{Title: "no year", Year: 0},
	}
	got := (&YearStrategy{Now: now}).Rank(context.Background(), "q", papers, 0)
	if got[0].Title != "fresh work" {
		t.Fatalf("expected most recent first, got %q", got[0].Title)
	}
	if got[len(got)-1].Title != "no year" {
		t.Fatalf("expected unknown year last, got %q", got[len(got)-1].Title)
	}
	for i, p := range got {
		if p.Explanation == "" {
			t.Fatalf("paper %d has empty explanation", i)
		}
	}
}

func TestYearStrategyCitationBonusGatedToRecentYears(t *testing.T) {
	now := func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }
	currentYear := now().Year()

	recent := types.Paper{Year: 2024, Citations: 200}
	old := types.Paper{Year: 2010, Citations: 200}

	if got := citationBonus(recent, currentYear-recent.Year); got != 0.2 {
		t.Fatalf("recent citation bonus = %f, want 0.2", got)
	}
	if got := citationBonus(old, currentYear-old.Year); got != 0 {
		t.Fatalf("old citation bonus = %f, want 0", got)
	}
}

func TestRecencyBand(t *testing.T) {
	currentYear := 2026
	tests := []struct {
		year int
		want float64
	}{
		{2026, 1.0},
		{2025, 1.0},
		{2024, 0.9},
		{2023, 0.8},
		{2021, 0.7},
		{2016, 0.5},
		{2000, 0.2},
		{0, 0},
	}
	for _, tt := range tests {
		if got := recencyBand(tt.year, currentYear-tt.year); got != tt.want {
			t.Errorf("recencyBand(year=%d) = %f, want %f", tt.year, got, tt.want)
		}
	}
}

func TestFallbackExplanation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"unit testing strategies", "testing methodology"},
		{"machine learning for robotics", "machine learning research"},
		{"explainable ai", "machine learning research"},
		{"neural architecture search", "neural network research"},
		{"quantum error correction", "comprehensive analysis"},
		{"maintainable software design", "comprehensive analysis"},
	}
	for _, tt := range tests {
		got := FallbackExplanation(tt.query, "Some Paper")
		if !strings.Contains(got, tt.want) {
			t.Errorf("FallbackExplanation(%q) = %q, want substring %q", tt.query, got, tt.want)
		}
		if got == "" {
			t.Errorf("FallbackExplanation(%q) empty", tt.query)
		}
		if again := FallbackExplanation(tt.query, "Some Paper"); again != got {
			t.Errorf("FallbackExplanation(%q) not deterministic", tt.query)
		}
	}
}
