// Package pkg provides the core libraries for reading GraphAr archives.
//
// # Overview
//
// A GraphAr archive stores a property graph as chunked files described by
// YAML metadata. One graph document names the vertex and edge documents that
// make up the graph; the data itself lives in chunk files whose paths are
// derived from that metadata. The pkg directory is organized into:
//
//  1. [info] - Metadata model (graph, vertex and edge info, version, paths)
//  2. [reader] - Chunk info readers that walk the chunk paths of a graph
//  3. [storage] - Filesystems the metadata and count files are read from
//  4. [render] - Graphviz diagrams of a graph schema
//  5. [cache] - Key/value caches for count files of remote archives
//
// # Architecture
//
// The typical data flow:
//
//	graph.yml + member documents
//	         ↓
//	    [storage] package (local, memory, gs, redis, mongodb)
//	         ↓
//	    [info] package (parse, validate, derive paths)
//	         ↓
//	    [reader] package (cursor over chunk paths, counts from count files)
//
// # Quick Start
//
// Load a graph and list the chunks of a vertex property group:
//
//	fs, _ := storage.Open(ctx, "/data/ldbc")
//	g, _ := info.LoadGraphInfo(ctx, fs, "ldbc.graph.yml")
//	counts := reader.NewArchiveCounts(fs)
//	rd, _ := reader.NewVertexPropertyChunkInfoReader(ctx, counts, g, "person", "firstName")
//	chunks, _ := reader.Collect(rd, 0)
//
// # Supporting Packages
//
// [errors] - Error values carrying a stable code (INVALID_PATH, NOT_FOUND,
// OUT_OF_RANGE and friends) that the CLI and HTTP server map to exit
// statuses and response codes.
//
// [observability] - Hooks for storage access and schema load/save events.
//
// [buildinfo] - Version information injected at build time.
//
// [info]: https://pkg.go.dev/github.com/matzehuels/graphar/pkg/info
// [reader]: https://pkg.go.dev/github.com/matzehuels/graphar/pkg/reader
// [storage]: https://pkg.go.dev/github.com/matzehuels/graphar/pkg/storage
// [render]: https://pkg.go.dev/github.com/matzehuels/graphar/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphar/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphar/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphar/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/graphar/pkg/buildinfo
package pkg
