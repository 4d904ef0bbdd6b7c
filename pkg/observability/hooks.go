// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about storage access and schema loading.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the storage backends
// stay free of any particular metrics or tracing framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStorageHooks(&myStorageHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	data, err := read(name)
//	observability.Storage().OnRead(ctx, "gcs", name, len(data), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Storage Hooks
// =============================================================================

// StorageHooks receives events from storage backends. backend is the short
// backend name ("local", "memory", "gcs", "redis", "mongo").
type StorageHooks interface {
	// OnRead records a whole-file read. size is 0 when err is non-nil.
	OnRead(ctx context.Context, backend, name string, size int, duration time.Duration, err error)

	// OnWrite records a whole-file write.
	OnWrite(ctx context.Context, backend, name string, size int, duration time.Duration, err error)

	// OnExists records an existence check.
	OnExists(ctx context.Context, backend, name string, found bool, err error)
}

// =============================================================================
// Schema Hooks
// =============================================================================

// SchemaHooks receives events about loading and saving graph schemas.
type SchemaHooks interface {
	// OnLoad records a graph schema load with its member counts.
	OnLoad(ctx context.Context, path string, vertices, edges int, duration time.Duration, err error)

	// OnSave records a graph schema save.
	OnSave(ctx context.Context, path string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStorageHooks is a no-op implementation of StorageHooks.
type NoopStorageHooks struct{}

func (NoopStorageHooks) OnRead(context.Context, string, string, int, time.Duration, error)  {}
func (NoopStorageHooks) OnWrite(context.Context, string, string, int, time.Duration, error) {}
func (NoopStorageHooks) OnExists(context.Context, string, string, bool, error)              {}

// NoopSchemaHooks is a no-op implementation of SchemaHooks.
type NoopSchemaHooks struct{}

func (NoopSchemaHooks) OnLoad(context.Context, string, int, int, time.Duration, error) {}
func (NoopSchemaHooks) OnSave(context.Context, string, time.Duration, error)           {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storageHooks StorageHooks = NoopStorageHooks{}
	schemaHooks  SchemaHooks  = NoopSchemaHooks{}
	hooksMu      sync.RWMutex
)

// SetStorageHooks registers custom storage hooks.
// This should be called once at application startup before any storage access.
func SetStorageHooks(h StorageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storageHooks = h
	}
}

// SetSchemaHooks registers custom schema hooks.
func SetSchemaHooks(h SchemaHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		schemaHooks = h
	}
}

// Storage returns the registered storage hooks.
func Storage() StorageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storageHooks
}

// Schema returns the registered schema hooks.
func Schema() SchemaHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return schemaHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storageHooks = NoopStorageHooks{}
	schemaHooks = NoopSchemaHooks{}
}
