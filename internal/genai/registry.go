// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alextsol/ai-scholar/pkg/types"
)

const defaultQuotaCooldown = time.Hour

// entry is one registered provider with its rotation state.
type entry struct {
	gen       Generator
	priority  int
	batchSize int

	quotaExceeded bool
	quotaAt       time.Time
}

// Registry multiplexes prompt generation across configured providers.
// Providers are tried in priority order (lower value first); one that
// reports a quota failure is placed in cooldown and skipped until the
// cooldown elapses. A successful call clears the provider's quota flag.
type Registry struct {
	mu       sync.Mutex
	entries  []*entry
	cooldown time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewRegistry builds a Registry from the enabled providers in cfg.
func NewRegistry(cfg types.RankConfig, log zerolog.Logger) (*Registry, error) {
	cooldown := cfg.QuotaCooldown
	if cooldown <= 0 {
		cooldown = defaultQuotaCooldown
	}

	r := &Registry{
		cooldown: cooldown,
		now:      time.Now,
		log:      log,
	}
	for _, pc := range cfg.Providers {
		if !pc.Enabled {
			continue
		}
		gen, err := NewGenerator(pc)
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", pc.Name, err)
		}
		r.entries = append(r.entries, &entry{gen: gen, priority: pc.Priority, batchSize: pc.BatchSize})
	}
	if len(r.entries) == 0 {
		return nil, fmt.Errorf("no AI providers enabled")
	}
	return r, nil
}

// newRegistryWith builds a Registry over pre-built generators, for tests.
// Generators get priorities 1, 2, 3, ... in slice order.
func newRegistryWith(cooldown time.Duration, now func() time.Time, log zerolog.Logger, gens ...Generator) *Registry {
	r := &Registry{cooldown: cooldown, now: now, log: log}
	for i, gen := range gens {
		r.entries = append(r.entries, &entry{gen: gen, priority: i + 1})
	}
	return r
}

// Available reports how many providers are currently out of cooldown.
func (r *Registry) Available() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	n := 0
	for _, e := range r.entries {
		if !e.quotaExceeded {
			n++
		}
	}
	return n
}

// BatchSize returns the papers-per-prompt count configured for the
// provider Generate would try first, or 0 when every provider is
// cooling down or the preferred one configures no batch size.
func (r *Registry) BatchSize() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()

	var best *entry
	for _, e := range r.entries {
		if e.quotaExceeded {
			continue
		}
		if best == nil || e.priority < best.priority {
			best = e
		}
	}
	if best == nil {
		return 0
	}
	return best.batchSize
}

// Generate runs the prompt against the best available provider, rotating
// to the next one on failure. Quota failures put the provider in
// cooldown. Returns the model output and the name of the provider that
// produced it, or ErrAllProvidersExhausted when every provider failed or
// is cooling down.
func (r *Registry) Generate(ctx context.Context, prompt string) (string, string, error) {
	tried := make(map[string]bool)
	var lastErr error

	// One extra attempt so a provider whose cooldown expires mid-loop
	// gets a chance.
	attempts := len(r.entries) + 1
	for i := 0; i < attempts; i++ {
		e := r.pick(tried)
		if e == nil {
			break
		}
		name := e.gen.Name()
		tried[name] = true

		out, err := e.gen.Generate(ctx, prompt)
		if err == nil {
			r.markSuccess(e)
			return out, name, nil
		}
		lastErr = err

		if IsQuotaError(err) {
			r.markQuota(e)
			r.log.Warn().Str("provider", name).Err(err).Msg("AI provider quota exhausted, rotating")
		} else {
			r.log.Warn().Str("provider", name).Err(err).Msg("AI provider failed, rotating")
		}

		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}
	}

	if lastErr != nil {
		return "", "", fmt.Errorf("%w: %v", ErrAllProvidersExhausted, lastErr)
	}
	return "", "", ErrAllProvidersExhausted
}

// pick returns the untried, non-cooling provider with the lowest
// priority value, or nil when none is available.
func (r *Registry) pick(tried map[string]bool) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()

	var best *entry
	for _, e := range r.entries {
		if e.quotaExceeded || tried[e.gen.Name()] {
			continue
		}
		if best == nil || e.priority < best.priority {
			best = e
		}
	}
	return best
}

// sweep clears quota flags whose cooldown has elapsed. Caller holds mu.
func (r *Registry) sweep() {
	now := r.now()
	for _, e := range r.entries {
		if e.quotaExceeded && now.Sub(e.quotaAt) >= r.cooldown {
			e.quotaExceeded = false
			r.log.Info().Str("provider", e.gen.Name()).Msg("AI provider cooldown elapsed")
		}
	}
}

func (r *Registry) markQuota(e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.quotaExceeded = true
	e.quotaAt = r.now()
}

func (r *Registry) markSuccess(e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.quotaExceeded = false
}
