// Package cache stores computed layouts and rendered artifacts.
//
// Caching is an optimization only: every cached value can be recomputed from
// the dataset and options it is keyed by, so callers log and ignore cache
// errors instead of failing a render.
//
// Three backends are provided: [FileCache] for the CLI, [RedisCache] for the
// HTTP service and [NullCache] when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Default lifetimes. Layouts and artifacts are content-addressed, so they
// only expire to bound disk and memory use.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLDataset  = 5 * time.Minute
)

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}
