// Package cache stores parsed records by normalized identifier so repeated
// inspections skip parsing.
package cache

import (
	"context"
	"sync"
	"time"

	"uvci/internal/uvci"
)

type entry struct {
	rec       uvci.Record
	expiresAt time.Time
}

// InMemoryCache is a TTL map guarded by a mutex. Expired entries are dropped
// on read.
type InMemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewInMemoryCache returns a cache whose entries live for ttl. A zero ttl
// keeps entries forever.
func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (uvci.Record, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return uvci.Record{}, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return uvci.Record{}, false, nil
	}
	return e.rec, true, nil
}

func (c *InMemoryCache) Set(_ context.Context, key string, rec uvci.Record) error {
	e := entry{rec: rec}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
