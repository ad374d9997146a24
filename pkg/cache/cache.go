// Package cache stores built visualization sets and rendered outputs.
//
// # Backends
//
// [FileCache] keeps entries as JSON files under a directory and is the CLI
// default. [RedisCache] shares entries between serve instances.
// [NullCache] disables caching.
//
// # Keys
//
// A [Keyer] derives keys from content hashes plus the options that shape
// the result, so a changed model file or flag always misses.
package cache

import (
	"context"
	"time"
)

// Entry lifetimes.
const (
	TTLVisSet = 7 * 24 * time.Hour
	TTLOutput = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
