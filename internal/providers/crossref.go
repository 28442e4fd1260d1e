// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alextsol/ai-scholar/internal/httputil"
	"github.com/alextsol/ai-scholar/pkg/types"
)

// crossRefAPIBase is the CrossRef works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossRefAPIBase = "https://api.crossref.org/works"

// CrossRefProvider queries the CrossRef works API, restricted to journal
// articles and sorted by citation count.
type CrossRefProvider struct {
	Client *http.Client
	// Mailto is sent for polite pool access.
	Mailto string
}

// Name returns the provider identifier.
func (p *CrossRefProvider) Name() string { return ProviderCrossRef }

// Search queries the CrossRef API and returns normalized papers.
func (p *CrossRefProvider) Search(ctx context.Context, req types.Request, cfg types.SearchConfig) ([]types.Paper, error) {
	params := url.Values{
		"query": {req.Query},
		"rows":  {fmt.Sprintf("%d", perProviderLimit(req, cfg))},
		"sort":  {"is-referenced-by-count"},
		"order": {"desc"},
	}

	filters := []string{"type:journal-article"}
	if req.MinYear > 0 {
		filters = append(filters, fmt.Sprintf("from-pub-date:%d", req.MinYear))
	}
	if req.MaxYear > 0 {
		filters = append(filters, fmt.Sprintf("until-pub-date:%d", req.MaxYear))
	}
	params.Set("filter", strings.Join(filters, ","))

	if p.Mailto != "" {
		params.Set("mailto", p.Mailto)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, crossRefAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, httpReq, 0)
	if err != nil {
		return nil, fmt.Errorf("CrossRef API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	var cr crossRefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing CrossRef response: %w", err)
	}

	var papers []types.Paper
	for _, item := range cr.Message.Items {
		if len(item.Title) == 0 {
			continue
		}

		paper := types.Paper{
			Title:     item.Title[0],
			Abstract:  stripJATS(item.Abstract),
			DOI:       item.DOI,
			URL:       item.URL,
			Citations: item.IsReferencedByCount,
		}

		var names []string
		for _, a := range item.Author {
			name := strings.TrimSpace(a.Given + " " + a.Family)
			names = append(names, name)
		}
		paper.Authors = joinAuthors(names)

		if y := item.Published.year(); y > 0 {
			paper.Year = y
		} else {
			paper.Year = item.PublishedPrint.year()
		}

		papers = append(papers, paper)
	}
	return papers, nil
}

// stripJATS removes the JATS XML tags CrossRef wraps abstracts in,
// leaving plain text.
func stripJATS(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CrossRef API JSON structures.
type crossRefResponse struct {
	Message crossRefMessage `json:"message"`
}

type crossRefMessage struct {
	Items []crossRefItem `json:"items"`
}

type crossRefItem struct {
	Title               []string        `json:"title"`
	Abstract            string          `json:"abstract"`
	DOI                 string          `json:"DOI"`
	URL                 string          `json:"URL"`
	IsReferencedByCount int             `json:"is-referenced-by-count"`
	Author              []crossRefName  `json:"author"`
	Published           crossRefPartial `json:"published"`
	PublishedPrint      crossRefPartial `json:"published-print"`
}

type crossRefName struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossRefPartial struct {
	DateParts [][]int `json:"date-parts"`
}

func (p crossRefPartial) year() int {
	if len(p.DateParts) > 0 && len(p.DateParts[0]) > 0 {
		return p.DateParts[0][0]
	}
	return 0
}
