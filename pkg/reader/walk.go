package reader

import "github.com/matzehuels/graphar/pkg/errors"

// Cursor is the cursor interface shared by all readers.
type Cursor interface {
	GetChunk() (string, error)
	NextChunk() error
	GetChunkNum() int64
	ChunkIndex() int64
}

// Chunk is one visited chunk: its ordinal and path.
type Chunk struct {
	Index int64  `json:"index"`
	Path  string `json:"path"`
}

// Collect visits up to limit chunks starting at the cursor and returns
// them in order. A limit <= 0 visits every remaining chunk. The cursor is
// left on the last visited chunk.
//
// An edge cursor parked on an empty partition (after SeekSrc or at the
// start) first moves to the next partition holding edges.
func Collect(c Cursor, limit int) ([]Chunk, error) {
	if c.GetChunkNum() == 0 {
		return nil, nil
	}
	if p, ok := c.(interface{ PartitionChunkNum() int64 }); ok && p.PartitionChunkNum() == 0 {
		if err := c.NextChunk(); err != nil {
			if errors.Is(err, errors.ErrCodeOutOfRange) {
				return nil, nil
			}
			return nil, err
		}
	}

	var chunks []Chunk
	for {
		path, err := c.GetChunk()
		if err != nil {
			return chunks, err
		}
		chunks = append(chunks, Chunk{Index: c.ChunkIndex(), Path: path})
		if limit > 0 && len(chunks) >= limit {
			return chunks, nil
		}
		if err := c.NextChunk(); err != nil {
			if errors.Is(err, errors.ErrCodeOutOfRange) {
				return chunks, nil
			}
			return chunks, err
		}
	}
}

var (
	_ Cursor = (*VertexPropertyChunkInfoReader)(nil)
	_ Cursor = (*AdjListChunkInfoReader)(nil)
	_ Cursor = (*AdjListPropertyChunkInfoReader)(nil)
)
