package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/graphar/internal/schema"
	"github.com/matzehuels/graphar/pkg/buildinfo"
	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
	"github.com/matzehuels/graphar/pkg/reader"
)

const (
	defaultLimit = 100
	maxLimit     = 10000
)

type pathResponse struct {
	Path string `json:"path"`
}

type chunksResponse struct {
	ChunkNum int64          `json:"chunk_num"`
	Chunks   []reader.Chunk `json:"chunks"`
}

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// statusOf maps error codes to HTTP statuses.
func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeOutOfRange:
		return http.StatusNotFound
	case errors.ErrCodeInvalidArgument, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeSerialization:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusOf(code), errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func writePath(w http.ResponseWriter, path string, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pathResponse{Path: path})
}

// intParam parses a non-negative integer URL or query parameter.
func intParam(name, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "%s must be a non-negative integer, got %q", name, s)
	}
	return n, nil
}

func limitParam(r *http.Request) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return defaultLimit, nil
	}
	n, err := intParam("limit", s)
	if err != nil {
		return 0, err
	}
	return int(min(max(n, 1), maxLimit)), nil
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, schema.Summarize(s.graph))
}

func (s *Server) handleGraphYAML(w http.ResponseWriter, _ *http.Request) {
	doc, err := s.graph.Dump()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write([]byte(doc))
}

// =============================================================================
// Vertices
// =============================================================================

func (s *Server) vertex(r *http.Request) (*info.VertexInfo, error) {
	label := chi.URLParam(r, "label")
	v := s.graph.GetVertexInfo(label)
	if v == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %q has no vertex %q", s.graph.Name(), label)
	}
	return v, nil
}

func (s *Server) handleVertex(w http.ResponseWriter, r *http.Request) {
	v, err := s.vertex(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.SummarizeVertex(v))
}

func (s *Server) handleVertexChunk(w http.ResponseWriter, r *http.Request) {
	v, err := s.vertex(r)
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := v.GetPropertyGroup(chi.URLParam(r, "property"))
	if err != nil {
		writeError(w, err)
		return
	}
	chunk, err := intParam("chunk", chi.URLParam(r, "chunk"))
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := v.GetFilePath(g, chunk)
	writePath(w, s.graph.Prefix()+p, err)
}

func (s *Server) handleVertexChunks(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rd, err := reader.NewVertexPropertyChunkInfoReader(r.Context(), s.counts, s.graph,
		chi.URLParam(r, "label"), chi.URLParam(r, "property"))
	if err != nil {
		writeError(w, err)
		return
	}
	if q := r.URL.Query().Get("seek"); q != "" {
		id, err := intParam("seek", q)
		if err == nil {
			err = rd.SeekID(id)
		}
		if err != nil {
			writeError(w, err)
			return
		}
	}
	s.writeChunks(w, rd, limit)
}

func (s *Server) writeChunks(w http.ResponseWriter, c reader.Cursor, limit int) {
	chunks, err := reader.Collect(c, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if chunks == nil {
		chunks = []reader.Chunk{}
	}
	writeJSON(w, http.StatusOK, chunksResponse{ChunkNum: c.GetChunkNum(), Chunks: chunks})
}

// =============================================================================
// Edges
// =============================================================================

func edgeKey(r *http.Request) info.EdgeKey {
	return info.EdgeKey{
		Src:  chi.URLParam(r, "src"),
		Edge: chi.URLParam(r, "edge"),
		Dst:  chi.URLParam(r, "dst"),
	}
}

func (s *Server) edge(r *http.Request) (*info.EdgeInfo, error) {
	k := edgeKey(r)
	e := s.graph.GetEdgeInfo(k.Src, k.Edge, k.Dst)
	if e == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %q has no edge %s", s.graph.Name(), k)
	}
	return e, nil
}

func (s *Server) edgeAndType(r *http.Request) (*info.EdgeInfo, info.AdjListType, error) {
	e, err := s.edge(r)
	if err != nil {
		return nil, 0, err
	}
	t, err := info.ParseAdjListType(chi.URLParam(r, "type"))
	if err != nil {
		return nil, 0, err
	}
	return e, t, nil
}

// partAndChunk parses the {part} and {chunk} URL parameters.
func partAndChunk(r *http.Request) (part, chunk int64, err error) {
	if part, err = intParam("part", chi.URLParam(r, "part")); err != nil {
		return 0, 0, err
	}
	if chunk, err = intParam("chunk", chi.URLParam(r, "chunk")); err != nil {
		return 0, 0, err
	}
	return part, chunk, nil
}

func (s *Server) handleEdge(w http.ResponseWriter, r *http.Request) {
	e, err := s.edge(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.SummarizeEdge(e))
}

func (s *Server) handleAdjListChunk(w http.ResponseWriter, r *http.Request) {
	e, t, err := s.edgeAndType(r)
	if err != nil {
		writeError(w, err)
		return
	}
	part, chunk, err := partAndChunk(r)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := e.GetAdjListFilePath(part, chunk, t)
	writePath(w, s.graph.Prefix()+p, err)
}

func (s *Server) handleOffsetChunk(w http.ResponseWriter, r *http.Request) {
	e, t, err := s.edgeAndType(r)
	if err != nil {
		writeError(w, err)
		return
	}
	chunk, err := intParam("chunk", chi.URLParam(r, "chunk"))
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := e.GetAdjListOffsetFilePath(chunk, t)
	writePath(w, s.graph.Prefix()+p, err)
}

func (s *Server) handleEdgePropertyChunk(w http.ResponseWriter, r *http.Request) {
	e, t, err := s.edgeAndType(r)
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := e.GetPropertyGroup(chi.URLParam(r, "property"))
	if err != nil {
		writeError(w, err)
		return
	}
	part, chunk, err := partAndChunk(r)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := e.GetPropertyFilePath(g, t, part, chunk)
	writePath(w, s.graph.Prefix()+p, err)
}

// edgeSeeker is implemented by both edge readers.
type edgeSeeker interface {
	reader.Cursor
	SeekSrc(id int64) error
	SeekDst(id int64) error
}

func (s *Server) handleEdgeChunks(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := info.ParseAdjListType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, err)
		return
	}
	k := edgeKey(r)
	q := r.URL.Query()

	var rd edgeSeeker
	if property := q.Get("property"); property != "" {
		rd, err = reader.NewAdjListPropertyChunkInfoReader(r.Context(), s.counts, s.graph, k.Src, k.Edge, k.Dst, property, t)
	} else {
		rd, err = reader.NewAdjListChunkInfoReader(r.Context(), s.counts, s.graph, k.Src, k.Edge, k.Dst, t)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	for _, seek := range []struct {
		param string
		fn    func(int64) error
	}{
		{"seek_src", rd.SeekSrc},
		{"seek_dst", rd.SeekDst},
	} {
		v := q.Get(seek.param)
		if v == "" {
			continue
		}
		id, err := intParam(seek.param, v)
		if err == nil {
			err = seek.fn(id)
		}
		if err != nil {
			writeError(w, err)
			return
		}
	}
	s.writeChunks(w, rd, limit)
}
