package access

import (
	"context"
	"sync"
	"time"
)

// Entity families. Each read caches under its family key and each
// mutation invalidates the whole family.
const (
	FamilyUsers   = "users"
	FamilyProfile = "profile"
)

// Cache holds the last successful read per entity family. Mutations
// call Invalidate so the next read observes the write regardless of
// which backend served it.
type Cache interface {
	Get(ctx context.Context, family string) ([]byte, bool)
	Set(ctx context.Context, family string, payload []byte)
	Invalidate(ctx context.Context, family string)
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is the default single-process cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (c *MemoryCache) Get(ctx context.Context, family string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[family]
	if !ok || time.Now().After(e.expiresAt) {
		cacheMisses.WithLabelValues(family).Inc()
		return nil, false
	}
	cacheHits.WithLabelValues(family).Inc()
	return e.payload, true
}

func (c *MemoryCache) Set(ctx context.Context, family string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[family] = memoryEntry{payload: payload, expiresAt: time.Now().Add(c.ttl)}
}

func (c *MemoryCache) Invalidate(ctx context.Context, family string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, family)
}

// NopCache disables read caching; every read goes to a backend.
type NopCache struct{}

func (NopCache) Get(ctx context.Context, family string) ([]byte, bool)  { return nil, false }
func (NopCache) Set(ctx context.Context, family string, payload []byte) {}
func (NopCache) Invalidate(ctx context.Context, family string)          {}
