// Package reader provides chunk info readers: cursors that walk the chunk
// coordinates of one property group or adjacency list and resolve the path
// of the chunk under the cursor, without reading chunk contents.
//
// # Readers
//
// Three readers share one cursor model:
//
//   - [VertexPropertyChunkInfoReader] walks the chunks of the property group
//     owning a vertex property. The cursor is a single chunk index.
//   - [AdjListChunkInfoReader] walks the adjacency chunks of one adjacency
//     list type of an edge.
//   - [AdjListPropertyChunkInfoReader] walks the chunks of the edge property
//     group owning a property, stored alongside one adjacency list type.
//
// The edge cursors are a (partition, chunk) pair. A partition holds the
// edges of one anchor vertex chunk; [AdjListChunkInfoReader.NextChunk]
// rolls over into the next partition that holds any edges.
//
// # Counts
//
// Chunk counts come from the count files stored in the archive. A reader
// asks a [CountSource] for them once, at construction; afterwards every
// cursor operation is pure arithmetic. [ArchiveCounts] reads the count
// files through any file reader (a storage.Filesystem for instance);
// [StaticCounts] holds counts the caller already knows.
//
//	fs, _ := storage.Open(ctx, "./ldbc")
//	r, err := reader.NewVertexPropertyChunkInfoReader(ctx, reader.NewArchiveCounts(fs), g, "person", "id")
//	if err != nil {
//	    return err
//	}
//	_ = r.SeekID(520)    // vertex 520 lives in chunk 5
//	p, _ := r.GetChunk() // vertex/person/id/chunk5
//
// # Failure
//
// A failed NextChunk or seek leaves the cursor where it was. Moving past the
// last chunk fails with OUT_OF_RANGE; negative ids and seeks on the wrong
// side of an adjacency list fail with INVALID_ARGUMENT.
//
// Readers are single-owner values and are not safe for concurrent use.
// They are cheap to create: use one per traversal.
package reader
