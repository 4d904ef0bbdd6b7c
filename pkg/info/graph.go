package info

import (
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/matzehuels/graphar/pkg/errors"
)

// GraphInfo is the schema of a whole archive: a name, a root prefix and a
// closed set of vertex and edge infos.
//
// A GraphInfo is validated when its name and prefix are valid, every member
// info is validated, every edge references source and destination
// labels present in the graph, and no two members share a data directory
// or a document file name. Like the member infos it is immutable;
// [GraphInfo.AddVertex] and [GraphInfo.AddEdge] return new graphs.
type GraphInfo struct {
	name     string
	prefix   string
	version  *Version
	vertices map[string]*VertexInfo
	edges    map[EdgeKey]*EdgeInfo
	err      error
}

// NewGraphInfo creates a graph info. The prefix is the archive root under
// which all entity prefixes resolve; it may be absolute.
//
// It fails with INVALID_VERSION for a nil version, INVALID_ARGUMENT for a
// nil member and SCHEMA_CONFLICT when two vertices share a label or two
// edges share a (src, edge, dst) triple.
func NewGraphInfo(name string, vertices []*VertexInfo, edges []*EdgeInfo, prefix string, version *Version) (*GraphInfo, error) {
	if version == nil {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "graph %q: version is required", name)
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	g := &GraphInfo{
		name:     name,
		prefix:   prefix,
		version:  version,
		vertices: make(map[string]*VertexInfo, len(vertices)),
		edges:    make(map[EdgeKey]*EdgeInfo, len(edges)),
	}
	for _, v := range vertices {
		if v == nil {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "graph %q: nil vertex info", name)
		}
		if _, dup := g.vertices[v.label]; dup {
			return nil, errors.New(errors.ErrCodeSchemaConflict, "graph %q: vertex %q defined twice", name, v.label)
		}
		g.vertices[v.label] = v
	}
	for _, e := range edges {
		if e == nil {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "graph %q: nil edge info", name)
		}
		if _, dup := g.edges[e.key]; dup {
			return nil, errors.New(errors.ErrCodeSchemaConflict, "graph %q: edge %s defined twice", name, e.key)
		}
		g.edges[e.key] = e
	}
	g.err = g.validate()
	return g, nil
}

func (g *GraphInfo) validate() error {
	if err := errors.ValidateName("graph name", g.name); err != nil {
		return err
	}
	if err := errors.ValidatePrefix(g.prefix); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "graph %q prefix", g.name)
	}
	var errs []error
	for _, v := range g.VertexInfos() {
		errs = append(errs, v.Validate())
	}
	for _, e := range g.EdgeInfos() {
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		labels := []string{e.key.Src}
		if e.key.Dst != e.key.Src {
			labels = append(labels, e.key.Dst)
		}
		for _, label := range labels {
			if _, ok := g.vertices[label]; !ok {
				errs = append(errs, errors.New(errors.ErrCodeNotFound, "edge %s references unknown vertex %q", e.key, label))
			}
		}
	}
	errs = append(errs, g.checkLayout()...)
	return errors.Join(errs...)
}

// checkLayout reports members sharing a data directory or a document file
// name. Labels may contain "_", so distinct edge triples can join to the
// same default prefix and file name.
func (g *GraphInfo) checkLayout() []error {
	var errs []error
	owners := make(map[string]string)
	claim := func(what, key, owner string) {
		if prev, ok := owners[what+":"+key]; ok {
			errs = append(errs, errors.New(errors.ErrCodeSchemaConflict, "%s and %s share %s %q", prev, owner, what, key))
			return
		}
		owners[what+":"+key] = owner
	}
	for _, v := range g.VertexInfos() {
		owner := "vertex " + v.label
		claim("prefix", path.Clean(v.prefix), owner)
		claim("file", VertexFileName(v.label), owner)
	}
	for _, e := range g.EdgeInfos() {
		owner := "edge (" + e.key.Src + ", " + e.key.Edge + ", " + e.key.Dst + ")"
		claim("prefix", path.Clean(e.prefix), owner)
		claim("file", EdgeFileName(e.key), owner)
	}
	return errs
}

// Name returns the graph name.
func (g *GraphInfo) Name() string { return g.name }

// Prefix returns the archive root.
func (g *GraphInfo) Prefix() string { return g.prefix }

// Version returns the graph's format version.
func (g *GraphInfo) Version() *Version { return g.version }

// GetVertexInfo returns the vertex info for label, or nil.
func (g *GraphInfo) GetVertexInfo(label string) *VertexInfo { return g.vertices[label] }

// GetEdgeInfo returns the edge info for the triple, or nil.
func (g *GraphInfo) GetEdgeInfo(src, edge, dst string) *EdgeInfo {
	return g.edges[EdgeKey{Src: src, Edge: edge, Dst: dst}]
}

// VertexInfos returns the vertex infos sorted by label.
func (g *GraphInfo) VertexInfos() []*VertexInfo {
	labels := slices.Sorted(maps.Keys(g.vertices))
	out := make([]*VertexInfo, len(labels))
	for i, l := range labels {
		out[i] = g.vertices[l]
	}
	return out
}

// EdgeInfos returns the edge infos sorted by key.
func (g *GraphInfo) EdgeInfos() []*EdgeInfo {
	keys := slices.SortedFunc(maps.Keys(g.edges), func(a, b EdgeKey) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	out := make([]*EdgeInfo, len(keys))
	for i, k := range keys {
		out[i] = g.edges[k]
	}
	return out
}

// VertexInfoNum returns the number of vertex types.
func (g *GraphInfo) VertexInfoNum() int { return len(g.vertices) }

// EdgeInfoNum returns the number of edge types.
func (g *GraphInfo) EdgeInfoNum() int { return len(g.edges) }

// AddVertex returns a new graph that also holds v.
func (g *GraphInfo) AddVertex(v *VertexInfo) (*GraphInfo, error) {
	if v == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "vertex info is nil")
	}
	return g.derive(append(g.VertexInfos(), v), g.EdgeInfos())
}

// AddEdge returns a new graph that also holds e.
func (g *GraphInfo) AddEdge(e *EdgeInfo) (*GraphInfo, error) {
	if e == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "edge info is nil")
	}
	return g.derive(g.VertexInfos(), append(g.EdgeInfos(), e))
}

// derive builds the successor graph. Unlike entity infos, a graph may
// become unvalidated through an add: edges are commonly added before the
// vertices they reference.
func (g *GraphInfo) derive(vertices []*VertexInfo, edges []*EdgeInfo) (*GraphInfo, error) {
	return NewGraphInfo(g.name, vertices, edges, g.prefix, g.version)
}

// Validate returns nil if the graph is consistent, or every problem found
// joined together.
func (g *GraphInfo) Validate() error { return g.err }

// IsValidated reports whether [GraphInfo.Validate] returns nil.
func (g *GraphInfo) IsValidated() bool { return g.err == nil }
