// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alextsol/ai-scholar/pkg/types"
)

// --- reconstructAbstract ---

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{
			name:  "empty map",
			index: map[string][]int{},
			want:  "",
		},
		{
			name:  "nil map",
			index: nil,
			want:  "",
		},
		{
			name:  "single word",
			index: map[string][]int{"hello": {0}},
			want:  "hello",
		},
		{
			name: "multi-word ordered",
			index: map[string][]int{
				"We":      {0},
				"propose": {1},
				"a":       {2},
				"new":     {3},
				"method":  {4},
			},
			want: "We propose a new method",
		},
		{
			name: "word appearing at multiple positions",
			index: map[string][]int{
				"the": {0, 4},
				"cat": {1},
				"sat": {2},
				"on":  {3},
				"mat": {5},
			},
			want: "the cat sat on the mat",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconstructAbstract(tt.index)
			if got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Mock OpenAlex server ---

const sampleOpenAlexJSON = `{
  "meta": {"count": 2, "per_page": 20, "page": 1},
  "results": [
    {
      "id": "https://openalex.org/W2741809807",
      "title": "Attention Is All You Need",
      "doi": "https://doi.org/10.5555/3295222.3295349",
      "publication_year": 2017,
      "cited_by_count": 95000,
      "authorships": [
        {"author": {"id": "A1", "display_name": "Ashish Vaswani"}},
        {"author": {"id": "A2", "display_name": "Noam Shazeer"}}
      ],
      "abstract_inverted_index": {
        "We": [0],
        "propose": [1],
        "a": [2],
        "new": [3],
        "architecture": [4]
      }
    },
    {
      "id": "https://openalex.org/W999",
      "title": "An Uncited Paper",
      "publication_year": 2024,
      "cited_by_count": 0,
      "authorships": []
    }
  ]
}`

func TestOpenAlexSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search"); got != "attention" {
			t.Errorf("search param = %q, want %q", got, "attention")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleOpenAlexJSON))
	}))
	defer ts.Close()

	oldBase := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = oldBase }()

	p := &OpenAlexProvider{Client: ts.Client(), Email: "user@example.com"}
	papers, err := p.Search(context.Background(), types.Request{Query: "attention", PerProviderLimit: 20}, types.SearchConfig{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}

	first := papers[0]
	if first.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.DOI != "10.5555/3295222.3295349" {
		t.Errorf("DOI = %q, want bare DOI", first.DOI)
	}
	if first.Citations != 95000 {
		t.Errorf("Citations = %d, want 95000", first.Citations)
	}
	if first.Year != 2017 {
		t.Errorf("Year = %d, want 2017", first.Year)
	}
	if first.Abstract != "We propose a new architecture" {
		t.Errorf("Abstract = %q", first.Abstract)
	}
	if first.Authors != "Ashish Vaswani, Noam Shazeer" {
		t.Errorf("Authors = %q", first.Authors)
	}

	// Zero citations from the API stay 0, not NA.
	if papers[1].Citations != 0 {
		t.Errorf("uncited Citations = %d, want 0", papers[1].Citations)
	}
}

func TestOpenAlexServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	oldBase := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = oldBase }()

	p := &OpenAlexProvider{Client: ts.Client()}
	_, err := p.Search(context.Background(), types.Request{Query: "x", PerProviderLimit: 5}, types.SearchConfig{})
	if err == nil {
		t.Fatal("expected error for HTTP 403")
	}
}
