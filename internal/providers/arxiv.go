// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package providers

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alextsol/ai-scholar/internal/httputil"
	"github.com/alextsol/ai-scholar/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivProvider queries the arXiv Atom API. arXiv reports no citation
// counts, so every emitted paper carries the CitationNA sentinel.
type ArxivProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *ArxivProvider) Name() string { return ProviderArxiv }

// Search queries the arXiv API and returns normalized papers.
func (p *ArxivProvider) Search(ctx context.Context, req types.Request, cfg types.SearchConfig) ([]types.Paper, error) {
	terms := strings.Fields(req.Query)
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty arXiv query")
	}

	url := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, strings.Join(terms, "+"), perProviderLimit(req, cfg))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, httpReq, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		paper := types.Paper{
			Title:     strings.Join(strings.Fields(entry.Title), " "),
			Abstract:  strings.TrimSpace(entry.Summary),
			URL:       strings.TrimSpace(entry.ID),
			Citations: types.CitationNA,
		}

		var names []string
		for _, a := range entry.Authors {
			names = append(names, a.Name)
		}
		paper.Authors = joinAuthors(names)

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			paper.Year = t.Year()
		}

		papers = append(papers, paper)
	}
	return papers, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
