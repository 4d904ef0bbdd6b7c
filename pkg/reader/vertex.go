package reader

import (
	"context"

	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
)

// VertexPropertyChunkInfoReader walks the chunks of the property group that
// owns one vertex property.
type VertexPropertyChunkInfoReader struct {
	vertex   *info.VertexInfo
	group    *info.PropertyGroup
	prefix   string
	chunkNum int64
	chunk    int64
}

// NewVertexPropertyChunkInfoReader binds a reader to property of the vertex
// labeled label. The vertex count is read from counts once.
//
// It fails with NOT_FOUND if the graph has no such vertex or no group of
// the vertex holds property.
func NewVertexPropertyChunkInfoReader(ctx context.Context, counts CountSource, g *info.GraphInfo, label, property string) (*VertexPropertyChunkInfoReader, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "graph info is required")
	}
	v := g.GetVertexInfo(label)
	if v == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %q has no vertex %q", g.Name(), label)
	}
	group, err := v.GetPropertyGroup(property)
	if err != nil {
		return nil, err
	}
	n, err := counts.VertexCount(ctx, g, v)
	if err != nil {
		return nil, err
	}
	return &VertexPropertyChunkInfoReader{
		vertex:   v,
		group:    group,
		prefix:   g.Prefix(),
		chunkNum: ceilDiv(n, v.ChunkSize()),
	}, nil
}

// PropertyGroup returns the group the reader walks.
func (r *VertexPropertyChunkInfoReader) PropertyGroup() *info.PropertyGroup { return r.group }

// GetChunk returns the path of the chunk under the cursor, including the
// graph prefix.
func (r *VertexPropertyChunkInfoReader) GetChunk() (string, error) {
	p, err := r.vertex.GetFilePath(r.group, r.chunk)
	if err != nil {
		return "", err
	}
	return r.prefix + p, nil
}

// NextChunk advances the cursor by one chunk. At the last chunk it fails
// with OUT_OF_RANGE.
func (r *VertexPropertyChunkInfoReader) NextChunk() error {
	if r.chunk+1 >= r.chunkNum {
		return errors.New(errors.ErrCodeOutOfRange, "vertex %q: chunk %d is the last of %d", r.vertex.Label(), r.chunk, r.chunkNum)
	}
	r.chunk++
	return nil
}

// SeekID moves the cursor to the chunk holding vertex id.
func (r *VertexPropertyChunkInfoReader) SeekID(id int64) error {
	if id < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "vertex id must be non-negative, got %d", id)
	}
	chunk := id / r.vertex.ChunkSize()
	if chunk >= r.chunkNum {
		return errors.New(errors.ErrCodeOutOfRange, "vertex %q: id %d is beyond the %d chunks", r.vertex.Label(), id, r.chunkNum)
	}
	r.chunk = chunk
	return nil
}

// GetChunkNum returns the number of chunks, ceil(vertex count / chunk size).
func (r *VertexPropertyChunkInfoReader) GetChunkNum() int64 { return r.chunkNum }

// ChunkIndex returns the index of the chunk under the cursor.
func (r *VertexPropertyChunkInfoReader) ChunkIndex() int64 { return r.chunk }
