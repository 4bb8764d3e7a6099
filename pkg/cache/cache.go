// Package cache provides content-addressed caching of generated
// expression sets.
//
// The engine is fully deterministic: identical spec and policy inputs
// always produce byte-identical output. That makes the rendered bytes
// safe to cache under a hash of the canonical inputs plus the
// generator version. The CLI uses a file cache under the XDG cache
// directory; a null cache disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered expression sets keyed by input hash.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
