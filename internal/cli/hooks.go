package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphar/pkg/observability"
)

// registerHooks traces storage and schema I/O at debug level.
func registerHooks(logger *log.Logger) {
	observability.SetStorageHooks(storageLogger{logger})
	observability.SetSchemaHooks(schemaLogger{logger})
}

type storageLogger struct{ logger *log.Logger }

func (h storageLogger) OnRead(_ context.Context, backend, name string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("read failed", "backend", backend, "name", name, "err", err)
		return
	}
	h.logger.Debug("read", "backend", backend, "name", name, "bytes", size, "took", d.Round(time.Microsecond))
}

func (h storageLogger) OnWrite(_ context.Context, backend, name string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("write failed", "backend", backend, "name", name, "err", err)
		return
	}
	h.logger.Debug("write", "backend", backend, "name", name, "bytes", size, "took", d.Round(time.Microsecond))
}

func (h storageLogger) OnExists(_ context.Context, backend, name string, found bool, err error) {
	h.logger.Debug("exists", "backend", backend, "name", name, "found", found, "err", err)
}

type schemaLogger struct{ logger *log.Logger }

func (h schemaLogger) OnLoad(_ context.Context, path string, vertices, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("schema load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("schema loaded", "path", path, "vertices", vertices, "edges", edges, "took", d.Round(time.Microsecond))
}

func (h schemaLogger) OnSave(_ context.Context, path string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("schema save failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("schema saved", "path", path, "took", d.Round(time.Microsecond))
}
