// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache memoizes fetch-and-aggregate results for the lifetime
// of a process. There is no TTL and no invalidation: within a session
// a repeated query must never hit the upstream API again, and an empty
// result is as cacheable as a populated one. Staleness across a
// long-running session is an accepted tradeoff.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/resilience-engine/pkg/types"
)

// Key identifies one aggregation result. Flow is empty for the
// combined (both-direction) fetch variant.
type Key struct {
	Country   string
	Year      int
	Commodity string
	Flow      types.Flow
}

// Cache is an injected memoization table. By default it is unbounded,
// matching the original single-session behavior; a positive MaxEntries
// bounds it with LRU eviction (an evicted key recomputes on next use).
//
// Computation is at-most-once per live key: concurrent requests for
// the same key share a single upstream call.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[Key]*entry[V]
	bounded *lru.Cache[Key, *entry[V]]
}

type entry[V any] struct {
	once  sync.Once
	value V
}

// New builds a cache from the config.
func New[V any](cfg types.CacheConfig) (*Cache[V], error) {
	c := &Cache[V]{}
	if cfg.MaxEntries > 0 {
		bounded, err := lru.New[Key, *entry[V]](cfg.MaxEntries)
		if err != nil {
			return nil, err
		}
		c.bounded = bounded
	} else {
		c.entries = make(map[Key]*entry[V])
	}
	return c, nil
}

// GetOrCompute returns the memoized value for key, running compute
// exactly once per live key. compute must not call back into the
// cache with the same key.
func (c *Cache[V]) GetOrCompute(key Key, compute func() V) V {
	e := c.lookup(key)
	e.once.Do(func() {
		e.value = compute()
	})
	return e.value
}

func (c *Cache[V]) lookup(key Key) *entry[V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bounded != nil {
		if e, ok := c.bounded.Get(key); ok {
			return e
		}
		e := &entry[V]{}
		c.bounded.Add(key, e)
		return e
	}

	if e, ok := c.entries[key]; ok {
		return e
	}
	e := &entry[V]{}
	c.entries[key] = e
	return e
}

// Len reports how many keys are currently cached.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bounded != nil {
		return c.bounded.Len()
	}
	return len(c.entries)
}
