// Package cache provides a small content-addressed artifact cache.
//
// The CLI uses it to reuse rendered dependency-graph SVGs: the cache key
// is derived from the serialized scene, so any edit invalidates the
// artifact naturally. Entries carry an optional TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is a byte-blob cache keyed by string.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Key generates a cache key of the form prefix:hash(data).
func Key(prefix string, data []byte) string {
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}
