// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides an in-memory TTL cache for search results.
package cache

import (
	"sync"
	"time"

	"github.com/alextsol/ai-scholar/pkg/types"
)

const defaultTTL = time.Hour

// Stats summarizes cache occupancy.
type Stats struct {
	Total   int
	Active  int
	Expired int
}

type item struct {
	result   types.SearchResult
	storedAt time.Time
}

// Cache is a mutex-guarded TTL map of search results. Expired entries
// are detected lazily on Get and removed in bulk by Cleanup.
type Cache struct {
	mu    sync.Mutex
	items map[string]item
	ttl   time.Duration
	now   func() time.Time
}

// New builds a Cache with the given TTL; non-positive falls back to one
// hour.
func New(cfg types.CacheConfig) *Cache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		items: make(map[string]item),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached result for key, if present and fresh. An
// expired entry is removed on the spot.
func (c *Cache) Get(key string) (types.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return types.SearchResult{}, false
	}
	if c.now().Sub(it.storedAt) >= c.ttl {
		delete(c.items, key)
		return types.SearchResult{}, false
	}
	return it.result, true
}

// Set stores a result under key, replacing any previous entry.
func (c *Cache) Set(key string, result types.SearchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{result: result, storedAt: c.now()}
}

// Stats reports total, active, and expired entry counts.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	s := Stats{Total: len(c.items)}
	for _, it := range c.items {
		if now.Sub(it.storedAt) >= c.ttl {
			s.Expired++
		} else {
			s.Active++
		}
	}
	return s
}

// Cleanup removes all expired entries and returns how many were removed.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, it := range c.items {
		if now.Sub(it.storedAt) >= c.ttl {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}
