package exchange

import (
	"context"
	"sync"
)

// InMemoryCache implements Cache with a process-local snapshot. Used in
// tests and in deployments without redis.
type InMemoryCache struct {
	mu   sync.RWMutex
	snap Snapshot
	set  bool
}

// NewInMemoryCache creates an empty in-memory cache
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{}
}

// Get returns the stored snapshot, if any
func (c *InMemoryCache) Get(_ context.Context) (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap, c.set
}

// Set stores the snapshot
func (c *InMemoryCache) Set(_ context.Context, snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.set = true
}
