// Package cache provides a byte-oriented cache abstraction with a Redis
// implementation. Repositories use it for cache-aside reads; the interface
// keeps them testable without a running Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a minimal get/set/delete cache with per-entry TTL.
type Cache interface {
	// Get returns the cached value and whether the key was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl. A zero ttl means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
