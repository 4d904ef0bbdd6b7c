package info

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/observability"
)

// FileReader reads whole files by slash-separated name.
// storage.Filesystem implements it.
type FileReader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// FileWriter writes whole files by slash-separated name.
// storage.Filesystem implements it.
type FileWriter interface {
	WriteFile(ctx context.Context, name string, data []byte) error
}

// Save writes the vertex document to name.
func (v *VertexInfo) Save(ctx context.Context, fs FileWriter, name string) error {
	doc, err := v.Dump()
	if err != nil {
		return err
	}
	return writeDoc(ctx, fs, name, doc)
}

// Save writes the edge document to name.
func (e *EdgeInfo) Save(ctx context.Context, fs FileWriter, name string) error {
	doc, err := e.Dump()
	if err != nil {
		return err
	}
	return writeDoc(ctx, fs, name, doc)
}

// Save writes the graph document to name and the document of every member
// next to it, named by [VertexFileName] and [EdgeFileName].
//
// Members are written first, so a graph document on disk always refers to
// complete member documents.
func (g *GraphInfo) Save(ctx context.Context, fs FileWriter, name string) (err error) {
	start := time.Now()
	defer func() { observability.Schema().OnSave(ctx, name, time.Since(start), err) }()

	doc, err := g.Dump()
	if err != nil {
		return err
	}
	dir := path.Dir(name)
	for _, v := range g.VertexInfos() {
		if err := v.Save(ctx, fs, path.Join(dir, VertexFileName(v.label))); err != nil {
			return err
		}
	}
	for _, e := range g.EdgeInfos() {
		if err := e.Save(ctx, fs, path.Join(dir, EdgeFileName(e.key))); err != nil {
			return err
		}
	}
	return writeDoc(ctx, fs, name, doc)
}

func writeDoc(ctx context.Context, fs FileWriter, name, doc string) error {
	if err := fs.WriteFile(ctx, name, []byte(doc)); err != nil {
		return ioError(err, "write %s", name)
	}
	return nil
}

func readDoc(ctx context.Context, fs FileReader, name string) ([]byte, error) {
	data, err := fs.ReadFile(ctx, name)
	if err != nil {
		return nil, ioError(err, "read %s", name)
	}
	return data, nil
}

// ioError keeps coded storage errors (NOT_FOUND, IO_ERROR) as they are and
// wraps anything else as IO_ERROR.
func ioError(err error, format string, args ...any) error {
	if code := errors.GetCode(err); code != "" {
		return errors.Wrap(code, err, format, args...)
	}
	return errors.Wrap(errors.ErrCodeIO, err, format, args...)
}

// LoadVertexInfo reads and parses a vertex document.
func LoadVertexInfo(ctx context.Context, fs FileReader, name string) (*VertexInfo, error) {
	data, err := readDoc(ctx, fs, name)
	if err != nil {
		return nil, err
	}
	return ParseVertexInfo(data)
}

// LoadEdgeInfo reads and parses an edge document.
func LoadEdgeInfo(ctx context.Context, fs FileReader, name string) (*EdgeInfo, error) {
	data, err := readDoc(ctx, fs, name)
	if err != nil {
		return nil, err
	}
	return ParseEdgeInfo(data)
}

// LoadGraphInfo reads a graph document and every member document it lists.
// Member names are relative to the directory of name. A graph document
// without a prefix gets that directory as its prefix.
//
// Loading is all or nothing: any read or parse failure returns no graph.
// Well-formed documents describing an inconsistent schema load as a graph
// that is not validated.
func LoadGraphInfo(ctx context.Context, fs FileReader, name string) (g *GraphInfo, err error) {
	start := time.Now()
	defer func() {
		var vertices, edges int
		if g != nil {
			vertices, edges = g.VertexInfoNum(), g.EdgeInfoNum()
		}
		observability.Schema().OnLoad(ctx, name, vertices, edges, time.Since(start), err)
	}()

	data, err := readDoc(ctx, fs, name)
	if err != nil {
		return nil, err
	}
	doc, version, err := parseGraphDoc(data)
	if err != nil {
		return nil, err
	}
	dir := path.Dir(name)

	vertices := make([]*VertexInfo, 0, len(doc.Vertices))
	for _, f := range doc.Vertices {
		v, err := LoadVertexInfo(ctx, fs, path.Join(dir, f))
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, v)
	}
	edges := make([]*EdgeInfo, 0, len(doc.Edges))
	for _, f := range doc.Edges {
		e, err := LoadEdgeInfo(ctx, fs, path.Join(dir, f))
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}

	prefix := doc.Prefix
	if prefix == "" && dir != "." {
		prefix = strings.TrimSuffix(dir, "/") + "/"
	}
	g, err = NewGraphInfo(doc.Name, vertices, edges, prefix, version)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "graph document %s", name)
	}
	return g, nil
}
