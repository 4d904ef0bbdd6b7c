package info

import (
	"slices"

	"github.com/matzehuels/graphar/pkg/errors"
)

// EdgeKey identifies an edge type by its (source, edge, destination) labels.
type EdgeKey struct {
	Src  string
	Edge string
	Dst  string
}

// String returns "src_edge_dst", the default directory and file stem of
// the edge type.
func (k EdgeKey) String() string { return k.Src + "_" + k.Edge + "_" + k.Dst }

// Less orders keys by source, edge, then destination label.
func (k EdgeKey) Less(o EdgeKey) bool {
	if k.Src != o.Src {
		return k.Src < o.Src
	}
	if k.Edge != o.Edge {
		return k.Edge < o.Edge
	}
	return k.Dst < o.Dst
}

// EdgeConfig holds the fields of an [EdgeInfo]. Prefix defaults to
// "<src>_<edge>_<dst>/".
type EdgeConfig struct {
	Src, Edge, Dst string

	ChunkSize    int64 // edges per chunk
	SrcChunkSize int64 // vertices per source partition
	DstChunkSize int64 // vertices per destination partition

	Directed       bool
	AdjacentLists  []*AdjacentList
	PropertyGroups []*PropertyGroup
	Prefix         string
	Version        *Version
}

// EdgeInfo describes the storage of one edge type: its adjacency lists and
// the property groups stored alongside each of them.
//
// EdgeInfo is immutable and safe for concurrent use.
type EdgeInfo struct {
	key          EdgeKey
	chunkSize    int64
	srcChunkSize int64
	dstChunkSize int64
	directed     bool
	prefix       string
	version      *Version
	adjLists     []*AdjacentList
	groups       propertyGroups
	err          error
}

// NewEdgeInfo creates an edge info from cfg.
//
// It fails with INVALID_ARGUMENT when a label is empty or a chunk size is
// not positive, and with INVALID_VERSION when the version is nil. Every
// other problem is reported by [EdgeInfo.Validate].
func NewEdgeInfo(cfg EdgeConfig) (*EdgeInfo, error) {
	key := EdgeKey{Src: cfg.Src, Edge: cfg.Edge, Dst: cfg.Dst}
	if key.Src == "" || key.Edge == "" || key.Dst == "" {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "edge labels cannot be empty: %q", key)
	}
	for _, c := range []struct {
		name string
		size int64
	}{
		{"chunk size", cfg.ChunkSize},
		{"source chunk size", cfg.SrcChunkSize},
		{"destination chunk size", cfg.DstChunkSize},
	} {
		if c.size <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "edge %s: %s must be positive, got %d", key, c.name, c.size)
		}
	}
	if cfg.Version == nil {
		return nil, errors.New(errors.ErrCodeInvalidVersion, "edge %s: version is required", key)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = key.String() + "/"
	}
	e := &EdgeInfo{
		key:          key,
		chunkSize:    cfg.ChunkSize,
		srcChunkSize: cfg.SrcChunkSize,
		dstChunkSize: cfg.DstChunkSize,
		directed:     cfg.Directed,
		prefix:       prefix,
		version:      cfg.Version,
		groups:       newPropertyGroups(cfg.PropertyGroups),
	}
	for _, a := range cfg.AdjacentLists {
		if a != nil {
			e.adjLists = append(e.adjLists, a)
		}
	}
	e.err = e.validate()
	return e, nil
}

func (e *EdgeInfo) config() EdgeConfig {
	return EdgeConfig{
		Src:            e.key.Src,
		Edge:           e.key.Edge,
		Dst:            e.key.Dst,
		ChunkSize:      e.chunkSize,
		SrcChunkSize:   e.srcChunkSize,
		DstChunkSize:   e.dstChunkSize,
		Directed:       e.directed,
		AdjacentLists:  slices.Clone(e.adjLists),
		PropertyGroups: slices.Clone(e.groups.groups),
		Prefix:         e.prefix,
		Version:        e.version,
	}
}

func (e *EdgeInfo) validate() error {
	for _, l := range []struct{ kind, name string }{
		{"source label", e.key.Src},
		{"edge label", e.key.Edge},
		{"destination label", e.key.Dst},
	} {
		if err := errors.ValidateName(l.kind, l.name); err != nil {
			return err
		}
	}
	if err := errors.ValidatePath(e.prefix); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "edge %s prefix", e.key)
	}
	if len(e.adjLists) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "edge %s has no adjacency list", e.key)
	}
	types := make(map[AdjListType]bool)
	dirs := make(map[string]bool)
	for _, a := range e.adjLists {
		if err := a.Validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "edge %s", e.key)
		}
		if types[a.typ] {
			return errors.New(errors.ErrCodeSchemaConflict, "edge %s: adjacency list %s registered twice", e.key, a.typ)
		}
		types[a.typ] = true
		if dirs[a.prefix] {
			return errors.New(errors.ErrCodeSchemaConflict, "edge %s: two adjacency lists share directory %q", e.key, a.prefix)
		}
		dirs[a.prefix] = true
	}
	if err := e.groups.validate(e.version, false); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "edge %s", e.key)
	}
	return nil
}

// Key returns the (src, edge, dst) triple.
func (e *EdgeInfo) Key() EdgeKey { return e.key }

// SrcLabel returns the source vertex label.
func (e *EdgeInfo) SrcLabel() string { return e.key.Src }

// EdgeLabel returns the edge label.
func (e *EdgeInfo) EdgeLabel() string { return e.key.Edge }

// DstLabel returns the destination vertex label.
func (e *EdgeInfo) DstLabel() string { return e.key.Dst }

// ChunkSize returns the number of edges per chunk.
func (e *EdgeInfo) ChunkSize() int64 { return e.chunkSize }

// SrcChunkSize returns the chunk size of the source vertices, which is the
// partition width of source-aligned adjacency lists.
func (e *EdgeInfo) SrcChunkSize() int64 { return e.srcChunkSize }

// DstChunkSize returns the chunk size of the destination vertices.
func (e *EdgeInfo) DstChunkSize() int64 { return e.dstChunkSize }

// AnchorChunkSize returns the partition width of adjacency list type t:
// the source chunk size for source-aligned types, else the destination one.
func (e *EdgeInfo) AnchorChunkSize(t AdjListType) int64 {
	if t.AlignedBy() == AlignedByDst {
		return e.dstChunkSize
	}
	return e.srcChunkSize
}

// IsDirected reports whether the edge type is directed.
func (e *EdgeInfo) IsDirected() bool { return e.directed }

// Prefix returns the directory of the edge data, relative to the graph prefix.
func (e *EdgeInfo) Prefix() string { return e.prefix }

// Version returns the format version.
func (e *EdgeInfo) Version() *Version { return e.version }

// =============================================================================
// Adjacency lists
// =============================================================================

// AdjacentLists returns the registered adjacency lists in registration order.
func (e *EdgeInfo) AdjacentLists() []*AdjacentList { return slices.Clone(e.adjLists) }

// HasAdjacentListType reports whether an adjacency list of type t is registered.
func (e *EdgeInfo) HasAdjacentListType(t AdjListType) bool {
	_, ok := e.adjList(t)
	return ok
}

// GetAdjacentList returns the adjacency list of type t.
func (e *EdgeInfo) GetAdjacentList(t AdjListType) (*AdjacentList, error) {
	a, ok := e.adjList(t)
	if !ok {
		return nil, e.noAdjList(t)
	}
	return a, nil
}

func (e *EdgeInfo) adjList(t AdjListType) (*AdjacentList, bool) {
	for _, a := range e.adjLists {
		if a.typ == t {
			return a, true
		}
	}
	return nil, false
}

func (e *EdgeInfo) noAdjList(t AdjListType) error {
	return errors.New(errors.ErrCodeNotFound, "edge %s has no adjacency list %s", e.key, t)
}

// AddAdjacentList returns a new EdgeInfo with a registered. A second list of
// the same type is a SCHEMA_CONFLICT. e itself is never modified.
func (e *EdgeInfo) AddAdjacentList(a *AdjacentList) (*EdgeInfo, error) {
	if a == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "adjacency list is nil")
	}
	if e.HasAdjacentListType(a.typ) {
		return nil, errors.New(errors.ErrCodeSchemaConflict, "edge %s: adjacency list %s already registered", e.key, a.typ)
	}
	cfg := e.config()
	cfg.AdjacentLists = append(cfg.AdjacentLists, a)
	return e.derive(cfg)
}

// =============================================================================
// Property groups
// =============================================================================

// PropertyGroups returns the registered groups in registration order.
func (e *EdgeInfo) PropertyGroups() []*PropertyGroup { return slices.Clone(e.groups.groups) }

// PropertyGroupNum returns the number of registered groups.
func (e *EdgeInfo) PropertyGroupNum() int { return len(e.groups.groups) }

// HasProperty reports whether any group holds a property named name.
func (e *EdgeInfo) HasProperty(name string) bool {
	_, ok := e.groups.owner[name]
	return ok
}

// HasPropertyGroup reports whether a group equal to g is registered.
func (e *EdgeInfo) HasPropertyGroup(g *PropertyGroup) bool { return e.groups.has(g) }

// GetPropertyGroup returns the group owning property name.
func (e *EdgeInfo) GetPropertyGroup(name string) (*PropertyGroup, error) {
	g, ok := e.groups.groupOf(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "edge %s has no property %q", e.key, name)
	}
	return g, nil
}

// GetPropertyType returns the data type of property name.
func (e *EdgeInfo) GetPropertyType(name string) (DataType, error) {
	p, ok := e.groups.property(name)
	if !ok {
		return DataType{}, errors.New(errors.ErrCodeNotFound, "edge %s has no property %q", e.key, name)
	}
	return p.Type, nil
}

// IsPrimaryKey always reports false for a valid edge; it exists so edge and
// vertex infos answer the same questions.
func (e *EdgeInfo) IsPrimaryKey(name string) bool {
	p, ok := e.groups.property(name)
	return ok && p.IsPrimary
}

// AddPropertyGroup returns a new EdgeInfo with g registered. A property
// name already present on the edge is a SCHEMA_CONFLICT.
func (e *EdgeInfo) AddPropertyGroup(g *PropertyGroup) (*EdgeInfo, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "property group is nil")
	}
	if err := e.groups.conflicts(g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaConflict, err, "edge %s", e.key)
	}
	cfg := e.config()
	cfg.PropertyGroups = append(cfg.PropertyGroups, g)
	return e.derive(cfg)
}

// derive builds the successor of e. A validated edge never yields an
// unvalidated one.
func (e *EdgeInfo) derive(cfg EdgeConfig) (*EdgeInfo, error) {
	next, err := NewEdgeInfo(cfg)
	if err != nil {
		return nil, err
	}
	if e.IsValidated() && !next.IsValidated() {
		return nil, next.err
	}
	return next, nil
}

// =============================================================================
// Paths
// =============================================================================

// GetAdjListPathPrefix returns <prefix><adj>adj_list/.
func (e *EdgeInfo) GetAdjListPathPrefix(t AdjListType) (string, error) {
	a, ok := e.adjList(t)
	if !ok {
		return "", e.noAdjList(t)
	}
	return e.prefix + a.prefix + AdjListDir, nil
}

// GetAdjListOffsetPathPrefix returns <prefix><adj>offset/. Only ordered
// types have offsets.
func (e *EdgeInfo) GetAdjListOffsetPathPrefix(t AdjListType) (string, error) {
	a, err := e.orderedAdjList(t)
	if err != nil {
		return "", err
	}
	return e.prefix + a.prefix + OffsetDir, nil
}

// GetPropertyGroupPathPrefix returns <prefix><adj><group>.
func (e *EdgeInfo) GetPropertyGroupPathPrefix(g *PropertyGroup, t AdjListType) (string, error) {
	a, err := e.groupAndAdjList(g, t)
	if err != nil {
		return "", err
	}
	return e.prefix + a.prefix + g.prefix, nil
}

// GetAdjListFilePath returns the path of adjacency chunk chunkIndex in
// partition vertexChunkIndex:
// <prefix><adj>adj_list/part<p>/chunk<i>.
func (e *EdgeInfo) GetAdjListFilePath(vertexChunkIndex, chunkIndex int64, t AdjListType) (string, error) {
	if err := checkIndex("vertex chunk index", vertexChunkIndex); err != nil {
		return "", err
	}
	if err := checkIndex("chunk index", chunkIndex); err != nil {
		return "", err
	}
	a, ok := e.adjList(t)
	if !ok {
		return "", e.noAdjList(t)
	}
	return adjListChunkPath(e.prefix, a.prefix, vertexChunkIndex, chunkIndex), nil
}

// GetAdjListOffsetFilePath returns the path of offset chunk chunkIndex:
// <prefix><adj>offset/chunk<i>. The chunk index is that of the anchor
// vertex chunk. Unordered types fail with INVALID_ARGUMENT.
func (e *EdgeInfo) GetAdjListOffsetFilePath(chunkIndex int64, t AdjListType) (string, error) {
	if err := checkIndex("chunk index", chunkIndex); err != nil {
		return "", err
	}
	a, err := e.orderedAdjList(t)
	if err != nil {
		return "", err
	}
	return adjListOffsetPath(e.prefix, a.prefix, chunkIndex), nil
}

// GetPropertyFilePath returns the path of property chunk chunkIndex of
// group g, stored alongside adjacency list t in partition vertexChunkIndex:
// <prefix><adj><group>part<p>/chunk<i>.
func (e *EdgeInfo) GetPropertyFilePath(g *PropertyGroup, t AdjListType, vertexChunkIndex, chunkIndex int64) (string, error) {
	if err := checkIndex("vertex chunk index", vertexChunkIndex); err != nil {
		return "", err
	}
	if err := checkIndex("chunk index", chunkIndex); err != nil {
		return "", err
	}
	a, err := e.groupAndAdjList(g, t)
	if err != nil {
		return "", err
	}
	return edgePropertyChunkPath(e.prefix, a.prefix, g.prefix, vertexChunkIndex, chunkIndex), nil
}

// GetVerticesNumFilePath returns the path of the file recording the number
// of anchor vertices of adjacency list t.
func (e *EdgeInfo) GetVerticesNumFilePath(t AdjListType) (string, error) {
	p, err := e.GetAdjListPathPrefix(t)
	if err != nil {
		return "", err
	}
	return p + VertexCountFile, nil
}

// GetEdgesNumFilePath returns the path of the file recording the number of
// edges in partition vertexChunkIndex of adjacency list t.
func (e *EdgeInfo) GetEdgesNumFilePath(vertexChunkIndex int64, t AdjListType) (string, error) {
	if err := checkIndex("vertex chunk index", vertexChunkIndex); err != nil {
		return "", err
	}
	p, err := e.GetAdjListPathPrefix(t)
	if err != nil {
		return "", err
	}
	return p + EdgeCountPrefix + itoa(vertexChunkIndex), nil
}

func (e *EdgeInfo) orderedAdjList(t AdjListType) (*AdjacentList, error) {
	a, ok := e.adjList(t)
	if !ok {
		return nil, e.noAdjList(t)
	}
	if !t.IsOrdered() {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "edge %s: adjacency list %s is unordered and has no offsets", e.key, t)
	}
	return a, nil
}

func (e *EdgeInfo) groupAndAdjList(g *PropertyGroup, t AdjListType) (*AdjacentList, error) {
	if !e.HasPropertyGroup(g) {
		return nil, errors.New(errors.ErrCodeNotFound, "property group %v is not registered on edge %s", g, e.key)
	}
	a, ok := e.adjList(t)
	if !ok {
		return nil, e.noAdjList(t)
	}
	return a, nil
}

// Validate returns nil if the edge info is consistent, or the first problem
// found.
func (e *EdgeInfo) Validate() error { return e.err }

// IsValidated reports whether [EdgeInfo.Validate] returns nil.
func (e *EdgeInfo) IsValidated() bool { return e.err == nil }
