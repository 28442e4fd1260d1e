// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package providers queries academic search APIs and normalizes their
// output into the common Paper shape. Each backend (arXiv, Semantic
// Scholar, CrossRef, CORE, OpenAlex) implements the Provider interface;
// the Gateway fans a query out to all configured backends and isolates
// per-backend failures so one provider's error never aborts the pipeline.
package providers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/alextsol/ai-scholar/pkg/types"
)

// Provider searches a single academic API.
type Provider interface {
	Name() string
	Search(ctx context.Context, req types.Request, cfg types.SearchConfig) ([]types.Paper, error)
}

// politenessIntervals gives the minimum spacing between requests to each
// rate-sensitive provider. Enforced across repeated calls from the same
// process via a shared token bucket per provider.
var politenessIntervals = map[string]time.Duration{
	ProviderArxiv:           3 * time.Second,
	ProviderCORE:            2 * time.Second,
	ProviderCrossRef:        1 * time.Second,
	ProviderSemanticScholar: 1 * time.Second,
	ProviderOpenAlex:        1 * time.Second,
}

// Provider identifiers, also used as the Source field on emitted papers.
const (
	ProviderArxiv           = "arxiv"
	ProviderSemanticScholar = "semantic_scholar"
	ProviderCrossRef        = "crossref"
	ProviderCORE            = "core"
	ProviderOpenAlex        = "openalex"
)

// Gateway fans search requests out to all configured providers in
// parallel, applying per-provider politeness delays and absorbing
// per-provider failures.
type Gateway struct {
	cfg      types.SearchConfig
	backends []Provider
	limiters map[string]*rate.Limiter
	log      zerolog.Logger
}

// NewGateway builds a gateway over the providers enabled in cfg.
func NewGateway(cfg types.SearchConfig, log zerolog.Logger) *Gateway {
	client := newHTTPClient(cfg)

	var backends []Provider
	if cfg.EnableArxiv {
		backends = append(backends, &ArxivProvider{Client: client})
	}
	if cfg.EnableSemanticScholar {
		backends = append(backends, &SemanticScholarProvider{Client: client, APIKey: cfg.SemanticScholarAPIKey})
	}
	if cfg.EnableCrossRef {
		mailto := cfg.CrossRefMailto
		if mailto == "" {
			mailto = cfg.Mailto
		}
		backends = append(backends, &CrossRefProvider{Client: client, Mailto: mailto})
	}
	if cfg.EnableCORE {
		backends = append(backends, &COREProvider{Client: client, APIKey: cfg.COREAPIKey})
	}
	if cfg.EnableOpenAlex {
		backends = append(backends, &OpenAlexProvider{Client: client, Email: cfg.Mailto})
	}

	return newGatewayWith(cfg, backends, log)
}

// newGatewayWith wires limiters for an explicit backend list. Tests use it
// to substitute mock providers.
func newGatewayWith(cfg types.SearchConfig, backends []Provider, log zerolog.Logger) *Gateway {
	limiters := make(map[string]*rate.Limiter, len(backends))
	for _, b := range backends {
		interval, ok := politenessIntervals[b.Name()]
		if !ok {
			interval = time.Second
		}
		limiters[b.Name()] = rate.NewLimiter(rate.Every(interval), 1)
	}
	return &Gateway{cfg: cfg, backends: backends, limiters: limiters, log: log}
}

// Search fans the request out to all backends concurrently and returns the
// combined papers plus the names of the backends that returned without
// error. A backend failure yields an empty contribution and a warning; if
// every backend fails the result is simply empty.
func (g *Gateway) Search(ctx context.Context, req types.Request) ([]types.Paper, []string) {
	type backendResult struct {
		papers []types.Paper
		err    error
		name   string
	}

	ch := make(chan backendResult, len(g.backends))
	var wg sync.WaitGroup

	for _, b := range g.backends {
		wg.Add(1)
		go func(b Provider) {
			defer wg.Done()
			if lim := g.limiters[b.Name()]; lim != nil {
				if err := lim.Wait(ctx); err != nil {
					ch <- backendResult{err: err, name: b.Name()}
					return
				}
			}
			papers, err := b.Search(ctx, req, g.cfg)
			ch <- backendResult{papers: papers, err: err, name: b.Name()}
		}(b)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.Paper
	var used []string
	for br := range ch {
		if br.err != nil {
			g.log.Warn().Str("provider", br.name).Err(br.err).Msg("provider search failed")
			continue
		}
		for _, p := range br.papers {
			if np, ok := normalize(p, br.name); ok {
				all = append(all, np)
			}
		}
		used = append(used, br.name)
	}
	return all, used
}

// normalize enforces the Paper invariants before a record leaves the
// gateway: Title and Source set, sentinels in place of missing fields.
// Papers without a usable title are dropped.
func normalize(p types.Paper, source string) (types.Paper, bool) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return types.Paper{}, false
	}
	p.Source = source
	p.Authors = strings.TrimSpace(p.Authors)
	if p.Authors == "" {
		p.Authors = types.UnknownAuthors
	}
	p.Abstract = strings.TrimSpace(p.Abstract)
	if p.Year < 0 {
		p.Year = 0
	}
	if p.Citations < 0 {
		p.Citations = types.CitationNA
	}
	return p, true
}
