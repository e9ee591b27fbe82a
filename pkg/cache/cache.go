// Package cache stores computed layouts, rendered artifacts and translation
// suggestions so repeated requests skip the work.
//
// Implementations:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// Keys are built by a [Keyer] from content hashes, so a changed word list or
// option produces a different key and stale entries simply expire.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. hit is false on a miss or an expired
	// entry; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Entry lifetimes.
const (
	TTLLayout      = 7 * 24 * time.Hour
	TTLArtifact    = 7 * 24 * time.Hour
	TTLTranslation = 30 * 24 * time.Hour
)
