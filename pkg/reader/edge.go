package reader

import (
	"context"

	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
)

// edgeCursor is the (partition, chunk) cursor shared by the edge readers.
// partitions[p] is the number of edge chunks in partition p.
type edgeCursor struct {
	edge       *info.EdgeInfo
	adjType    info.AdjListType
	prefix     string
	partitions []int64
	part       int64
	chunk      int64
}

func newEdgeCursor(ctx context.Context, counts CountSource, g *info.GraphInfo, src, edge, dst string, t info.AdjListType) (*edgeCursor, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "graph info is required")
	}
	e := g.GetEdgeInfo(src, edge, dst)
	if e == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %q has no edge %s", g.Name(), info.EdgeKey{Src: src, Edge: edge, Dst: dst})
	}
	if _, err := e.GetAdjacentList(t); err != nil {
		return nil, err
	}

	vertices, err := counts.AdjListVertexCount(ctx, g, e, t)
	if err != nil {
		return nil, err
	}
	partitions := make([]int64, ceilDiv(vertices, e.AnchorChunkSize(t)))
	for p := range partitions {
		n, err := counts.EdgeCount(ctx, g, e, t, int64(p))
		if err != nil {
			return nil, err
		}
		partitions[p] = ceilDiv(n, e.ChunkSize())
	}
	return &edgeCursor{edge: e, adjType: t, prefix: g.Prefix(), partitions: partitions}, nil
}

// EdgeInfo returns the edge the reader walks.
func (c *edgeCursor) EdgeInfo() *info.EdgeInfo { return c.edge }

// AdjListType returns the adjacency list type the reader walks.
func (c *edgeCursor) AdjListType() info.AdjListType { return c.adjType }

// NextChunk advances to the next chunk, rolling over into the next
// partition that holds edges. Past the last chunk of the last non-empty
// partition it fails with OUT_OF_RANGE.
func (c *edgeCursor) NextChunk() error {
	part, chunk := c.part, c.chunk+1
	for part < int64(len(c.partitions)) && chunk >= c.partitions[part] {
		part++
		chunk = 0
	}
	if part >= int64(len(c.partitions)) {
		return errors.New(errors.ErrCodeOutOfRange, "edge %s %s: no chunk after partition %d chunk %d", c.edge.Key(), c.adjType, c.part, c.chunk)
	}
	c.part, c.chunk = part, chunk
	return nil
}

// SeekOffset moves the cursor to the chunk holding edge offset within the
// current partition.
func (c *edgeCursor) SeekOffset(offset int64) error {
	if offset < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "edge offset must be non-negative, got %d", offset)
	}
	chunk := offset / c.edge.ChunkSize()
	if chunk >= c.PartitionChunkNum() {
		return errors.New(errors.ErrCodeOutOfRange, "edge %s %s: offset %d is beyond the %d chunks of partition %d",
			c.edge.Key(), c.adjType, offset, c.PartitionChunkNum(), c.part)
	}
	c.chunk = chunk
	return nil
}

// SeekSrc moves the cursor to the first chunk of the partition holding
// source vertex id. Only adjacency lists aligned by source support it.
func (c *edgeCursor) SeekSrc(id int64) error {
	return c.seekVertex(info.AlignedBySrc, id, c.edge.SrcChunkSize())
}

// SeekDst moves the cursor to the first chunk of the partition holding
// destination vertex id. Only adjacency lists aligned by destination
// support it.
func (c *edgeCursor) SeekDst(id int64) error {
	return c.seekVertex(info.AlignedByDst, id, c.edge.DstChunkSize())
}

func (c *edgeCursor) seekVertex(side string, id, chunkSize int64) error {
	if c.adjType.AlignedBy() != side {
		return errors.New(errors.ErrCodeInvalidArgument, "edge %s: cannot seek by %s on %s", c.edge.Key(), side, c.adjType)
	}
	if id < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "vertex id must be non-negative, got %d", id)
	}
	part := id / chunkSize
	if part >= int64(len(c.partitions)) {
		return errors.New(errors.ErrCodeOutOfRange, "edge %s %s: %s id %d is beyond the %d partitions",
			c.edge.Key(), c.adjType, side, id, len(c.partitions))
	}
	c.part, c.chunk = part, 0
	return nil
}

// GetChunkNum returns the number of chunks over all partitions.
func (c *edgeCursor) GetChunkNum() int64 {
	var n int64
	for _, k := range c.partitions {
		n += k
	}
	return n
}

// VertexChunkNum returns the number of partitions, one per anchor vertex
// chunk.
func (c *edgeCursor) VertexChunkNum() int64 { return int64(len(c.partitions)) }

// PartitionChunkNum returns the number of chunks in the current partition.
func (c *edgeCursor) PartitionChunkNum() int64 {
	if c.part < int64(len(c.partitions)) {
		return c.partitions[c.part]
	}
	return 0
}

// VertexChunkIndex returns the partition under the cursor.
func (c *edgeCursor) VertexChunkIndex() int64 { return c.part }

// ChunkIndex returns the ordinal of the chunk under the cursor counted over
// all partitions.
func (c *edgeCursor) ChunkIndex() int64 {
	var n int64
	for _, k := range c.partitions[:min(c.part, int64(len(c.partitions)))] {
		n += k
	}
	return n + c.chunk
}

// AdjListChunkInfoReader walks the adjacency chunks of one adjacency list
// type of an edge.
type AdjListChunkInfoReader struct {
	*edgeCursor
}

// NewAdjListChunkInfoReader binds a reader to adjacency list t of the edge
// (src, edge, dst). Vertex and edge counts are read from counts once.
//
// It fails with NOT_FOUND if the graph has no such edge or the edge has no
// adjacency list of type t.
func NewAdjListChunkInfoReader(ctx context.Context, counts CountSource, g *info.GraphInfo, src, edge, dst string, t info.AdjListType) (*AdjListChunkInfoReader, error) {
	c, err := newEdgeCursor(ctx, counts, g, src, edge, dst, t)
	if err != nil {
		return nil, err
	}
	return &AdjListChunkInfoReader{edgeCursor: c}, nil
}

// GetChunk returns the path of the adjacency chunk under the cursor,
// including the graph prefix.
func (r *AdjListChunkInfoReader) GetChunk() (string, error) {
	p, err := r.edge.GetAdjListFilePath(r.part, r.chunk, r.adjType)
	if err != nil {
		return "", err
	}
	return r.prefix + p, nil
}

// GetOffsetChunk returns the path of the offset chunk of the current
// partition. Unordered adjacency lists have no offsets and fail with
// INVALID_ARGUMENT.
func (r *AdjListChunkInfoReader) GetOffsetChunk() (string, error) {
	p, err := r.edge.GetAdjListOffsetFilePath(r.part, r.adjType)
	if err != nil {
		return "", err
	}
	return r.prefix + p, nil
}

// AdjListPropertyChunkInfoReader walks the chunks of the edge property group
// owning one property, stored alongside one adjacency list type.
type AdjListPropertyChunkInfoReader struct {
	*edgeCursor
	group *info.PropertyGroup
}

// NewAdjListPropertyChunkInfoReader binds a reader to property of the edge
// (src, edge, dst) as stored with adjacency list t.
//
// It fails with NOT_FOUND if the graph has no such edge, the edge has no
// adjacency list of type t, or no group of the edge holds property.
func NewAdjListPropertyChunkInfoReader(ctx context.Context, counts CountSource, g *info.GraphInfo, src, edge, dst, property string, t info.AdjListType) (*AdjListPropertyChunkInfoReader, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "graph info is required")
	}
	e := g.GetEdgeInfo(src, edge, dst)
	if e == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %q has no edge %s", g.Name(), info.EdgeKey{Src: src, Edge: edge, Dst: dst})
	}
	group, err := e.GetPropertyGroup(property)
	if err != nil {
		return nil, err
	}
	c, err := newEdgeCursor(ctx, counts, g, src, edge, dst, t)
	if err != nil {
		return nil, err
	}
	return &AdjListPropertyChunkInfoReader{edgeCursor: c, group: group}, nil
}

// PropertyGroup returns the group the reader walks.
func (r *AdjListPropertyChunkInfoReader) PropertyGroup() *info.PropertyGroup { return r.group }

// GetChunk returns the path of the property chunk under the cursor,
// including the graph prefix.
func (r *AdjListPropertyChunkInfoReader) GetChunk() (string, error) {
	p, err := r.edge.GetPropertyFilePath(r.group, r.adjType, r.part, r.chunk)
	if err != nil {
		return "", err
	}
	return r.prefix + p, nil
}
