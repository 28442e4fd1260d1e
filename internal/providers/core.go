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

// coreAPIBase is the CORE v3 works search endpoint. Declared as a var so
// tests can substitute an httptest server.
var coreAPIBase = "https://api.core.ac.uk/v3/search/works"

// COREProvider queries the CORE (COnnecting REpositories) v3 API.
type COREProvider struct {
	Client *http.Client
	APIKey string
}

// Name returns the provider identifier.
func (p *COREProvider) Name() string { return ProviderCORE }

// Search queries the CORE API and returns normalized papers. Year bounds
// are expressed inside the query string since the v3 search endpoint has
// no dedicated filter parameters.
func (p *COREProvider) Search(ctx context.Context, req types.Request, cfg types.SearchConfig) ([]types.Paper, error) {
	q := req.Query
	if req.MinYear > 0 {
		q = fmt.Sprintf("%s AND yearPublished>=%d", q, req.MinYear)
	}
	if req.MaxYear > 0 {
		q = fmt.Sprintf("%s AND yearPublished<=%d", q, req.MaxYear)
	}

	params := url.Values{
		"q":     {q},
		"limit": {fmt.Sprintf("%d", perProviderLimit(req, cfg))},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, coreAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", cfg.UserAgent)
	if p.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, httpReq, 0)
	if err != nil {
		return nil, fmt.Errorf("CORE API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CORE API returned HTTP %d", resp.StatusCode)
	}

	var cr coreResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing CORE response: %w", err)
	}

	var papers []types.Paper
	for _, work := range cr.Results {
		paper := types.Paper{
			Title:     work.Title,
			Abstract:  work.Abstract,
			Year:      work.YearPublished,
			DOI:       work.DOI,
			URL:       work.DownloadURL,
			Citations: types.CitationNA,
		}
		if work.CitationCount != nil {
			paper.Citations = *work.CitationCount
		}

		var names []string
		for _, a := range work.Authors {
			names = append(names, a.Name)
		}
		paper.Authors = joinAuthors(names)

		papers = append(papers, paper)
	}
	return papers, nil
}

// CORE API JSON structures.
type coreResponse struct {
	TotalHits int        `json:"totalHits"`
	Results   []coreWork `json:"results"`
}

type coreWork struct {
	Title         string       `json:"title"`
	Abstract      string       `json:"abstract"`
	YearPublished int          `json:"yearPublished"`
	DOI           string       `json:"doi"`
	DownloadURL   string       `json:"downloadUrl"`
	CitationCount *int         `json:"citationCount"`
	Authors       []coreAuthor `json:"authors"`
}

type coreAuthor struct {
	Name string `json:"name"`
}
