package cache

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache stores views in-process with a shared TTL
type MemoryCache struct {
	mu          sync.RWMutex
	items       map[string]map[string]cacheEntry
	generations map[string]int64
	ttl         time.Duration
}

// NewMemoryCache constructs a MemoryCache. A non-positive ttl uses the default.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryCache{
		items:       make(map[string]map[string]cacheEntry),
		generations: make(map[string]int64),
		ttl:         ttl,
	}
}

// Get returns a cached view if it exists and has not expired.
func (c *MemoryCache) Get(ctx context.Context, path, variant string) ([]byte, bool, error) {
	key := viewKey(path)
	c.mu.RLock()
	entry, ok := c.items[key][variant]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items[key], variant)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// Generation returns how many times path has been revalidated
func (c *MemoryCache) Generation(ctx context.Context, path string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[path], nil
}

// Set stores a rendered view unless path was revalidated after gen was read.
func (c *MemoryCache) Set(ctx context.Context, path, variant string, gen int64, payload []byte) error {
	key := viewKey(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[path] != gen {
		return nil
	}
	if c.items[key] == nil {
		c.items[key] = make(map[string]cacheEntry)
	}
	c.items[key][variant] = cacheEntry{payload: payload, expiresAt: time.Now().Add(c.ttl)}
	return nil
}

// RevalidatePath drops every cached variant of path.
func (c *MemoryCache) RevalidatePath(ctx context.Context, path string) error {
	c.mu.Lock()
	delete(c.items, viewKey(path))
	c.generations[path]++
	c.mu.Unlock()
	return nil
}
