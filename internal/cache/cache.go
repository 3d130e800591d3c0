// Package cache provides the in-process result cache. Entries never
// expire on a timer: play data changes only on ingest, so invalidation is
// explicit and keyed by season.
package cache

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"GridironStatsApi/internal/clock"
)

type entry struct {
	value     any
	createdAt time.Time
}

// Cache is a prefix-invalidatable map with single-flight computation.
// Concurrent callers of GetOrCompute for the same key share one compute
// call; callers for different keys never block each other's computes.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	clk     clock.Clock
}

func New(clk clock.Clock) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		clk:     clk,
	}
}

// Get returns the cached value and its store time.
func (c *Cache) Get(key string) (any, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	return e.value, e.createdAt, true
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. A failed compute stores nothing, so the next caller retries.
func (c *Cache) GetOrCompute(key string, compute func() (any, error)) (any, error) {
	if v, _, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A previous flight may have filled the entry between our miss
		// and this call.
		if v, _, ok := c.Get(key); ok {
			return v, nil
		}

		v, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{value: v, createdAt: c.clk.Now()}
		c.mu.Unlock()

		return v, nil
	})
	return v, err
}

// Invalidate drops every entry whose key starts with prefix and returns
// the number removed.
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
