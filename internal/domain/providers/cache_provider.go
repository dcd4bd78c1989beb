package providers

import (
	"context"
)

// CacheProvider defines the interface for caching operations. Implementations
// must be safe for concurrent use; redundant concurrent population of the same
// key with the same computed value is harmless.
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration; expirationSeconds of zero
	// means the entry lives for the process (or store) lifetime
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)
}
