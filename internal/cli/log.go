// Package cli implements the graphar command-line interface.
//
// Commands operate on a graph file, the YAML document listing the vertex
// and edge documents of an archive. By default the graph file is read from
// local disk and its directory is the archive root; --storage (or the
// storage.root config key) points at another backend such as gs://, redis://
// or mongodb://, and the graph file argument is then a name within it.
//
// # Commands
//
//   - validate: report every schema problem per vertex, edge and graph
//   - show: summarize vertices, edges, property groups and adjacency lists
//   - dump: print the canonical YAML of the graph or one of its members
//   - path: resolve the file path of one chunk
//   - chunks: walk the chunks of a property or adjacency list
//   - render: draw the schema as DOT, SVG or PNG
//   - serve: expose the schema and path resolution over HTTP
//   - copy: write the schema documents to another storage backend
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every storage read and write.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level along with the elapsed time.
// Example output: "Loaded graph ldbc (1.234ms)"
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Microsecond))
}
