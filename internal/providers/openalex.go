// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/alextsol/ai-scholar/internal/httputil"
	"github.com/alextsol/ai-scholar/pkg/types"
)

// openAlexAPIBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

// OpenAlexProvider queries the OpenAlex API.
type OpenAlexProvider struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email string
}

// Name returns the provider identifier.
func (p *OpenAlexProvider) Name() string { return ProviderOpenAlex }

// Search queries the OpenAlex API and returns normalized papers.
func (p *OpenAlexProvider) Search(ctx context.Context, req types.Request, cfg types.SearchConfig) ([]types.Paper, error) {
	limit := perProviderLimit(req, cfg)
	if limit > 200 {
		limit = 200
	}

	params := url.Values{
		"search":   {req.Query},
		"per_page": {fmt.Sprintf("%d", limit)},
		"page":     {"1"},
	}

	var filters []string
	if req.MinYear > 0 {
		filters = append(filters, fmt.Sprintf("from_publication_date:%d-01-01", req.MinYear))
	}
	if req.MaxYear > 0 {
		filters = append(filters, fmt.Sprintf("to_publication_date:%d-12-31", req.MaxYear))
	}
	if len(filters) > 0 {
		params.Set("filter", strings.Join(filters, ","))
	}

	if p.Email != "" {
		params.Set("mailto", p.Email)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, openAlexAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, httpReq, 0)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	var papers []types.Paper
	for _, work := range oar.Results {
		paper := types.Paper{
			Title:     work.Title,
			Abstract:  reconstructAbstract(work.AbstractInvertedIndex),
			Year:      work.PublicationYear,
			Citations: work.CitedByCount,
			URL:       work.ID,
		}

		// Prefer DOI; OpenAlex is DOI-centric. Strip the
		// https://doi.org/ prefix to get the bare DOI.
		if work.DOI != "" {
			paper.DOI = strings.TrimPrefix(work.DOI, "https://doi.org/")
			paper.URL = work.DOI
		}

		var names []string
		for _, authorship := range work.Authorships {
			names = append(names, authorship.Author.DisplayName)
		}
		paper.Authors = joinAuthors(names)

		papers = append(papers, paper)
	}
	return papers, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to a list of positions
// where that word appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationYear       int                  `json:"publication_year"`
	CitedByCount          int                  `json:"cited_by_count"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
