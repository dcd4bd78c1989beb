package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/medfind/medfinder/internal/domain/providers"
)

// MemoryAdapter implements the CacheProvider interface with an in-process map.
// Entries live for the process lifetime; expiration is ignored because lookup
// inputs are bounded by user vocabulary and deployments are short-lived per
// process. Safe for concurrent use.
type MemoryAdapter struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryAdapter creates a new in-memory cache adapter
func NewMemoryAdapter() providers.CacheProvider {
	return &MemoryAdapter{
		entries: make(map[string][]byte),
	}
}

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	value, ok := a.entries[key]
	a.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

// Set stores a value in cache; expirationSeconds is ignored (process lifetime)
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	a.mu.Lock()
	a.entries[key] = value
	a.mu.Unlock()
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	delete(a.entries, key)
	a.mu.Unlock()
	return nil
}

// Exists checks if a key exists in cache
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	a.mu.RLock()
	_, ok := a.entries[key]
	a.mu.RUnlock()
	return ok, nil
}
