package reader

import (
	"context"
	"encoding/binary"

	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
)

// CountSource supplies the element counts that bound chunk cursors.
type CountSource interface {
	// VertexCount returns the number of vertices of v.
	VertexCount(ctx context.Context, g *info.GraphInfo, v *info.VertexInfo) (int64, error)

	// AdjListVertexCount returns the number of anchor vertices of
	// adjacency list t of e.
	AdjListVertexCount(ctx context.Context, g *info.GraphInfo, e *info.EdgeInfo, t info.AdjListType) (int64, error)

	// EdgeCount returns the number of edges in partition part of
	// adjacency list t of e.
	EdgeCount(ctx context.Context, g *info.GraphInfo, e *info.EdgeInfo, t info.AdjListType, part int64) (int64, error)
}

// countSize is the size of an encoded count file.
const countSize = 8

// EncodeCount returns the content of a count file holding n.
func EncodeCount(n int64) []byte {
	return binary.LittleEndian.AppendUint64(make([]byte, 0, countSize), uint64(n))
}

// DecodeCount parses the content of a count file.
func DecodeCount(data []byte) (int64, error) {
	if len(data) != countSize {
		return 0, errors.New(errors.ErrCodeSerialization, "count file must hold %d bytes, got %d", countSize, len(data))
	}
	n := int64(binary.LittleEndian.Uint64(data))
	if n < 0 {
		return 0, errors.New(errors.ErrCodeSerialization, "negative count %d", n)
	}
	return n, nil
}

// ArchiveCounts reads count files from an archive. File names are the
// graph prefix followed by the entity count paths.
type ArchiveCounts struct {
	fs info.FileReader
}

// NewArchiveCounts returns a count source reading through fs.
func NewArchiveCounts(fs info.FileReader) *ArchiveCounts {
	return &ArchiveCounts{fs: fs}
}

func (a *ArchiveCounts) read(ctx context.Context, name string) (int64, error) {
	data, err := a.fs.ReadFile(ctx, name)
	if err != nil {
		if errors.GetCode(err) != "" {
			return 0, err
		}
		return 0, errors.Wrap(errors.ErrCodeIO, err, "read %s", name)
	}
	n, err := DecodeCount(data)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeSerialization, err, "decode %s", name)
	}
	return n, nil
}

func (a *ArchiveCounts) VertexCount(ctx context.Context, g *info.GraphInfo, v *info.VertexInfo) (int64, error) {
	return a.read(ctx, g.Prefix()+v.GetVerticesNumFilePath())
}

func (a *ArchiveCounts) AdjListVertexCount(ctx context.Context, g *info.GraphInfo, e *info.EdgeInfo, t info.AdjListType) (int64, error) {
	p, err := e.GetVerticesNumFilePath(t)
	if err != nil {
		return 0, err
	}
	return a.read(ctx, g.Prefix()+p)
}

func (a *ArchiveCounts) EdgeCount(ctx context.Context, g *info.GraphInfo, e *info.EdgeInfo, t info.AdjListType, part int64) (int64, error) {
	p, err := e.GetEdgesNumFilePath(part, t)
	if err != nil {
		return 0, err
	}
	return a.read(ctx, g.Prefix()+p)
}

// AdjListKey identifies one adjacency list of an edge.
type AdjListKey struct {
	Edge info.EdgeKey
	Type info.AdjListType
}

// StaticCounts is a [CountSource] over counts held in memory.
//
// Vertices maps a vertex label to its vertex count; adjacency lists use the
// count of their anchor label. Edges maps an adjacency list to its edge
// count per partition; partitions past the end of the slice are empty.
type StaticCounts struct {
	Vertices map[string]int64
	Edges    map[AdjListKey][]int64
}

func (s StaticCounts) vertices(label string) (int64, error) {
	n, ok := s.Vertices[label]
	if !ok {
		return 0, errors.New(errors.ErrCodeNotFound, "no vertex count for %q", label)
	}
	return n, nil
}

func (s StaticCounts) VertexCount(_ context.Context, _ *info.GraphInfo, v *info.VertexInfo) (int64, error) {
	return s.vertices(v.Label())
}

func (s StaticCounts) AdjListVertexCount(_ context.Context, _ *info.GraphInfo, e *info.EdgeInfo, t info.AdjListType) (int64, error) {
	if t.AlignedBy() == info.AlignedBySrc {
		return s.vertices(e.SrcLabel())
	}
	return s.vertices(e.DstLabel())
}

func (s StaticCounts) EdgeCount(_ context.Context, _ *info.GraphInfo, e *info.EdgeInfo, t info.AdjListType, part int64) (int64, error) {
	counts, ok := s.Edges[AdjListKey{Edge: e.Key(), Type: t}]
	if !ok {
		return 0, errors.New(errors.ErrCodeNotFound, "no edge counts for %s %s", e.Key(), t)
	}
	if part < int64(len(counts)) {
		return counts[part], nil
	}
	return 0, nil
}

var (
	_ CountSource = (*ArchiveCounts)(nil)
	_ CountSource = StaticCounts{}
)

// ceilDiv returns ceil(n / d) for n >= 0, d > 0.
func ceilDiv(n, d int64) int64 {
	return (n + d - 1) / d
}
