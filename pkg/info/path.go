package info

import (
	"strconv"

	"github.com/matzehuels/graphar/pkg/errors"
)

// Fixed segments of the archive layout.
const (
	ChunkPrefix     = "chunk"        // chunk<i>
	PartPrefix      = "part"         // part<p>/
	AdjListDir      = "adj_list/"    // <type>/adj_list/
	OffsetDir       = "offset/"      // <type>/offset/
	VertexCountFile = "vertex_count" // <prefix>vertex_count, <type>/adj_list/vertex_count
	EdgeCountPrefix = "edge_count"   // <type>/adj_list/edge_count<p>
)

// reservedDirs may not be used as property group directories: they would
// shadow layout segments that live next to group directories.
var reservedDirs = map[string]bool{
	AdjListDir:            true,
	OffsetDir:             true,
	VertexCountFile + "/": true,
}

// The functions below are the path resolver. They are pure; callers have
// already checked that the referenced group or adjacency list is registered.

func itoa(i int64) string { return strconv.FormatInt(i, 10) }

func chunkName(i int64) string { return ChunkPrefix + itoa(i) }

func partName(p int64) string { return PartPrefix + itoa(p) + "/" }

// vertexChunkPath is <prefix><group>chunk<i>.
func vertexChunkPath(prefix, groupDir string, chunk int64) string {
	return prefix + groupDir + chunkName(chunk)
}

// adjListChunkPath is <prefix><adj>adj_list/part<p>/chunk<i>.
func adjListChunkPath(prefix, adjDir string, part, chunk int64) string {
	return prefix + adjDir + AdjListDir + partName(part) + chunkName(chunk)
}

// adjListOffsetPath is <prefix><adj>offset/chunk<i>.
func adjListOffsetPath(prefix, adjDir string, chunk int64) string {
	return prefix + adjDir + OffsetDir + chunkName(chunk)
}

// edgePropertyChunkPath is <prefix><adj><group>part<p>/chunk<i>.
func edgePropertyChunkPath(prefix, adjDir, groupDir string, part, chunk int64) string {
	return prefix + adjDir + groupDir + partName(part) + chunkName(chunk)
}

func checkIndex(kind string, i int64) error {
	if i < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "%s must be non-negative, got %d", kind, i)
	}
	return nil
}
