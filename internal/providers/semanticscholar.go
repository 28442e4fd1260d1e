// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alextsol/ai-scholar/internal/httputil"
	"github.com/alextsol/ai-scholar/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,year,citationCount,url"

// SemanticScholarProvider queries the Semantic Scholar graph API.
type SemanticScholarProvider struct {
	Client *http.Client
	APIKey string
}

// Name returns the provider identifier.
func (p *SemanticScholarProvider) Name() string { return ProviderSemanticScholar }

// Search queries the Semantic Scholar API and returns normalized papers.
func (p *SemanticScholarProvider) Search(ctx context.Context, req types.Request, cfg types.SearchConfig) ([]types.Paper, error) {
	params := url.Values{
		"query":  {req.Query},
		"limit":  {fmt.Sprintf("%d", perProviderLimit(req, cfg))},
		"fields": {semanticFields},
	}
	if yr := yearRange(req.MinYear, req.MaxYear); yr != "" {
		params.Set("year", yr)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", cfg.UserAgent)
	if p.APIKey != "" {
		httpReq.Header.Set("x-api-key", p.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, httpReq, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var papers []types.Paper
	for _, sp := range sr.Data {
		paper := types.Paper{
			Title:     sp.Title,
			Abstract:  sp.Abstract,
			Year:      sp.Year,
			URL:       sp.URL,
			DOI:       sp.ExternalIDs.DOI,
			Citations: types.CitationNA,
		}
		if sp.CitationCount != nil {
			paper.Citations = *sp.CitationCount
		}

		var names []string
		for _, a := range sp.Authors {
			names = append(names, a.Name)
		}
		paper.Authors = joinAuthors(names)

		papers = append(papers, paper)
	}
	return papers, nil
}

// yearRange returns a Semantic Scholar year filter string (e.g. "2020-2023").
func yearRange(minYear, maxYear int) string {
	switch {
	case minYear > 0 && maxYear > 0:
		return fmt.Sprintf("%d-%d", minYear, maxYear)
	case minYear > 0:
		return fmt.Sprintf("%d-", minYear)
	case maxYear > 0:
		return fmt.Sprintf("-%d", maxYear)
	default:
		return ""
	}
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID       string              `json:"paperId"`
	Title         string              `json:"title"`
	Abstract      string              `json:"abstract"`
	Year          int                 `json:"year"`
	URL           string              `json:"url"`
	CitationCount *int                `json:"citationCount"`
	Authors       []semanticAuthor    `json:"authors"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
