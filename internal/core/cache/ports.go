package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for missing keys. Repositories match it
// with errors.Is to distinguish absence from store failure.
var ErrNotFound = errors.New("key not found")

// Cache is the port for the key/value store backing agent GPS fixes, the
// delivery zone table and the geocode cache. Implementations may be swapped
// (Redis, Memcached, in-memory) without touching the repositories built on
// top of it.
type Cache interface {
	// Get retrieves a value by key. Missing keys return an error wrapping
	// ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}
