// Package cache provides a small in-memory TTL cache with single-flight
// computation, used to keep repeated dashboard requests from hammering the
// upstream helpdesk API. The aggregation core never touches it; only the
// fetch layer does.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a TTL cache safe for concurrent use. Concurrent GetOrCompute
// calls for the same key collapse into a single computation; the other
// callers share its result.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	flight  singleflight.Group
	now     func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Test seam.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// GetOrCompute returns the cached value for key, computing and caching it
// when absent or expired. Errors are not cached, so a failed fetch is
// retried on the next call.
func (c *Cache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) (any, error)) (any, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err, _ := c.flight.Do(key, func() (any, error) {
		// A concurrent caller may have filled the entry while this
		// call was queued behind the flight.
		if value, ok := c.Get(key); ok {
			return value, nil
		}

		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, value, ttl)
		return value, nil
	})
	return value, err
}

// Invalidate removes key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
