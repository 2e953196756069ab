// Package cache provides the artifact cache used by the rendering pipeline.
//
// Rendering a single SVG is cheap, but PNG rasterization and PDF conversion
// are not. The pipeline caches every produced artifact under a key derived
// from the text, the resolved options, and the output format.
//
// # Backends
//
//   - [NewNullCache]: caching disabled
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// # Keys
//
// A [Keyer] turns render inputs into cache keys. [DefaultKeyer] hashes the
// inputs; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 24 * time.Hour

// Cache stores opaque byte values with an optional TTL.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NewNullCache returns a cache that stores nothing. Every Get misses.
func NewNullCache() Cache { return nullCache{} }

type nullCache struct{}

func (nullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nullCache) Delete(context.Context, string) error                     { return nil }
func (nullCache) Close() error                                             { return nil }
