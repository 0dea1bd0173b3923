package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/retail-ledger/internal/domain/matching"
)

// MemoryCatalogCache implementa CatalogCache en memoria con expiración por TTL.
// Para desarrollo y tests; en despliegues con varias réplicas usar Redis.
type MemoryCatalogCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	candidates []matching.Candidate
	expiresAt  time.Time
}

// NewMemoryCatalogCache construye la caché en memoria.
func NewMemoryCatalogCache() *MemoryCatalogCache {
	return &MemoryCatalogCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCatalogCache) Get(_ context.Context, key string) ([]matching.Candidate, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.candidates, true, nil
}

func (c *MemoryCatalogCache) Set(_ context.Context, key string, candidates []matching.Candidate, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{candidates: candidates, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCatalogCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
