// Package cache stores small byte values under string keys with an
// optional expiry.
//
// graphar caches the count files chunk readers consult (vertex and edge
// counts) so that walking an archive on a remote backend does not fetch the
// same count file on every run or request. Three implementations exist:
//
//   - [FileCache]: entries as files under a directory, for the CLI
//   - [MemoryCache]: a process-local map, for the HTTP server
//   - [NullCache]: caches nothing
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store for cached bytes.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the value of key and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
