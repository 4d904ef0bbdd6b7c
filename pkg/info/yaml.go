package info

import (
	"bytes"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphar/pkg/errors"
)

// File name suffixes used when a graph is saved next to its members.
const (
	GraphFileSuffix  = ".graph.yml"
	VertexFileSuffix = ".vertex.yml"
	EdgeFileSuffix   = ".edge.yml"
)

// VertexFileName returns the file name a graph gives the document of vertex
// label, e.g. "person.vertex.yml".
func VertexFileName(label string) string { return label + VertexFileSuffix }

// EdgeFileName returns the file name a graph gives the document of edge k,
// e.g. "person_knows_person.edge.yml".
func EdgeFileName(k EdgeKey) string { return k.String() + EdgeFileSuffix }

// =============================================================================
// Documents
// =============================================================================

type propertyDoc struct {
	Name      string `yaml:"name" validate:"required"`
	DataType  string `yaml:"data_type" validate:"required"`
	IsPrimary bool   `yaml:"is_primary"`
}

type propertyGroupDoc struct {
	Properties []propertyDoc `yaml:"properties" validate:"required,min=1,dive"`
	FileType   string        `yaml:"file_type" validate:"required"`
	Prefix     string        `yaml:"prefix,omitempty"`
}

type adjListDoc struct {
	Ordered   bool   `yaml:"ordered"`
	AlignedBy string `yaml:"aligned_by" validate:"required,oneof=src dst"`
	Prefix    string `yaml:"prefix,omitempty"`
	FileType  string `yaml:"file_type" validate:"required"`
}

type vertexDoc struct {
	Label          string             `yaml:"label" validate:"required"`
	ChunkSize      int64              `yaml:"chunk_size" validate:"gt=0"`
	Prefix         string             `yaml:"prefix,omitempty"`
	PropertyGroups []propertyGroupDoc `yaml:"property_groups" validate:"dive"`
	Version        string             `yaml:"version" validate:"required"`
}

type edgeDoc struct {
	SrcLabel       string             `yaml:"src_label" validate:"required"`
	EdgeLabel      string             `yaml:"edge_label" validate:"required"`
	DstLabel       string             `yaml:"dst_label" validate:"required"`
	ChunkSize      int64              `yaml:"chunk_size" validate:"gt=0"`
	SrcChunkSize   int64              `yaml:"src_chunk_size" validate:"gt=0"`
	DstChunkSize   int64              `yaml:"dst_chunk_size" validate:"gt=0"`
	Directed       bool               `yaml:"directed"`
	Prefix         string             `yaml:"prefix,omitempty"`
	AdjLists       []adjListDoc       `yaml:"adj_lists" validate:"required,min=1,dive"`
	PropertyGroups []propertyGroupDoc `yaml:"property_groups" validate:"dive"`
	Version        string             `yaml:"version" validate:"required"`
}

type graphDoc struct {
	Name     string   `yaml:"name" validate:"required"`
	Prefix   string   `yaml:"prefix,omitempty"`
	Vertices []string `yaml:"vertices" validate:"dive,required"`
	Edges    []string `yaml:"edges" validate:"dive,required"`
	Version  string   `yaml:"version" validate:"required"`
}

var docValidator = validator.New(validator.WithRequiredStructEnabled())

// decodeDoc unmarshals and structurally checks a document. Every failure is
// a SERIALIZATION_ERROR.
func decodeDoc(kind string, data []byte, doc any) error {
	if err := yaml.Unmarshal(data, doc); err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "malformed %s document", kind)
	}
	if err := docValidator.Struct(doc); err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "invalid %s document", kind)
	}
	return nil
}

func encodeDoc(doc any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", errors.Wrap(errors.ErrCodeSerialization, err, "encode document")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeSerialization, err, "encode document")
	}
	return buf.String(), nil
}

func notDumpable(kind string, err error) error {
	return errors.Wrap(errors.ErrCodeSerialization, err, "cannot dump unvalidated %s", kind)
}

// =============================================================================
// Conversion
// =============================================================================

func groupToDoc(g *PropertyGroup) propertyGroupDoc {
	doc := propertyGroupDoc{FileType: g.fileType.String(), Prefix: g.prefix}
	for _, p := range g.properties {
		doc.Properties = append(doc.Properties, propertyDoc{
			Name:      p.Name,
			DataType:  p.Type.String(),
			IsPrimary: p.IsPrimary,
		})
	}
	return doc
}

func groupFromDoc(doc propertyGroupDoc) (*PropertyGroup, error) {
	ft, err := ParseFileType(doc.FileType)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "property group")
	}
	props := make([]Property, 0, len(doc.Properties))
	for _, pd := range doc.Properties {
		t, err := ParseDataType(pd.DataType)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSerialization, err, "property %q", pd.Name)
		}
		props = append(props, NewProperty(pd.Name, t, pd.IsPrimary))
	}
	return NewPropertyGroupWithPrefix(props, ft, doc.Prefix), nil
}

func groupsFromDocs(docs []propertyGroupDoc) ([]*PropertyGroup, error) {
	groups := make([]*PropertyGroup, 0, len(docs))
	for _, d := range docs {
		g, err := groupFromDoc(d)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func parseDocVersion(s string) (*Version, error) {
	v, err := ParseVersion(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "version")
	}
	return v, nil
}

func (v *VertexInfo) toDoc() vertexDoc {
	doc := vertexDoc{
		Label:     v.label,
		ChunkSize: v.chunkSize,
		Prefix:    v.prefix,
		Version:   v.version.String(),
	}
	for _, g := range v.groups.groups {
		doc.PropertyGroups = append(doc.PropertyGroups, groupToDoc(g))
	}
	return doc
}

func (e *EdgeInfo) toDoc() edgeDoc {
	doc := edgeDoc{
		SrcLabel:     e.key.Src,
		EdgeLabel:    e.key.Edge,
		DstLabel:     e.key.Dst,
		ChunkSize:    e.chunkSize,
		SrcChunkSize: e.srcChunkSize,
		DstChunkSize: e.dstChunkSize,
		Directed:     e.directed,
		Prefix:       e.prefix,
		Version:      e.version.String(),
	}
	for _, a := range e.adjLists {
		doc.AdjLists = append(doc.AdjLists, adjListDoc{
			Ordered:   a.typ.IsOrdered(),
			AlignedBy: a.typ.AlignedBy(),
			Prefix:    a.prefix,
			FileType:  a.fileType.String(),
		})
	}
	for _, g := range e.groups.groups {
		doc.PropertyGroups = append(doc.PropertyGroups, groupToDoc(g))
	}
	return doc
}

func (g *GraphInfo) toDoc() graphDoc {
	doc := graphDoc{
		Name:     g.name,
		Prefix:   g.prefix,
		Version:  g.version.String(),
		Vertices: []string{},
		Edges:    []string{},
	}
	for _, v := range g.VertexInfos() {
		doc.Vertices = append(doc.Vertices, VertexFileName(v.label))
	}
	for _, e := range g.EdgeInfos() {
		doc.Edges = append(doc.Edges, EdgeFileName(e.key))
	}
	return doc
}

// =============================================================================
// Dump / Parse
// =============================================================================

// Dump returns the YAML document of v. An unvalidated vertex fails with
// SERIALIZATION_ERROR.
func (v *VertexInfo) Dump() (string, error) {
	if !v.IsValidated() {
		return "", notDumpable("vertex "+v.label, v.err)
	}
	return encodeDoc(v.toDoc())
}

// Dump returns the YAML document of e. An unvalidated edge fails with
// SERIALIZATION_ERROR.
func (e *EdgeInfo) Dump() (string, error) {
	if !e.IsValidated() {
		return "", notDumpable("edge "+e.key.String(), e.err)
	}
	return encodeDoc(e.toDoc())
}

// Dump returns the YAML document of the graph itself. Members are listed by
// file name (see [VertexFileName], [EdgeFileName]); their documents are
// produced by their own Dump. An unvalidated graph fails with
// SERIALIZATION_ERROR.
func (g *GraphInfo) Dump() (string, error) {
	if !g.IsValidated() {
		return "", notDumpable("graph "+g.name, g.err)
	}
	return encodeDoc(g.toDoc())
}

// ParseVertexInfo decodes a vertex document. Malformed documents fail with
// SERIALIZATION_ERROR; a well-formed document describing an inconsistent
// schema yields an info that is not validated.
func ParseVertexInfo(data []byte) (*VertexInfo, error) {
	var doc vertexDoc
	if err := decodeDoc("vertex", data, &doc); err != nil {
		return nil, err
	}
	version, err := parseDocVersion(doc.Version)
	if err != nil {
		return nil, err
	}
	groups, err := groupsFromDocs(doc.PropertyGroups)
	if err != nil {
		return nil, err
	}
	v, err := NewVertexInfo(doc.Label, doc.ChunkSize, groups, doc.Prefix, version)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "vertex document")
	}
	return v, nil
}

// ParseEdgeInfo decodes an edge document.
func ParseEdgeInfo(data []byte) (*EdgeInfo, error) {
	var doc edgeDoc
	if err := decodeDoc("edge", data, &doc); err != nil {
		return nil, err
	}
	version, err := parseDocVersion(doc.Version)
	if err != nil {
		return nil, err
	}
	groups, err := groupsFromDocs(doc.PropertyGroups)
	if err != nil {
		return nil, err
	}
	adjLists := make([]*AdjacentList, 0, len(doc.AdjLists))
	for _, ad := range doc.AdjLists {
		t, err := AdjListTypeOf(ad.Ordered, ad.AlignedBy)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSerialization, err, "adjacency list")
		}
		ft, err := ParseFileType(ad.FileType)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSerialization, err, "adjacency list %s", t)
		}
		adjLists = append(adjLists, NewAdjacentListWithPrefix(t, ft, ad.Prefix))
	}
	e, err := NewEdgeInfo(EdgeConfig{
		Src:            doc.SrcLabel,
		Edge:           doc.EdgeLabel,
		Dst:            doc.DstLabel,
		ChunkSize:      doc.ChunkSize,
		SrcChunkSize:   doc.SrcChunkSize,
		DstChunkSize:   doc.DstChunkSize,
		Directed:       doc.Directed,
		AdjacentLists:  adjLists,
		PropertyGroups: groups,
		Prefix:         doc.Prefix,
		Version:        version,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "edge document")
	}
	return e, nil
}

// parseGraphDoc decodes the graph document itself; members are resolved by
// the loader.
func parseGraphDoc(data []byte) (graphDoc, *Version, error) {
	var doc graphDoc
	if err := decodeDoc("graph", data, &doc); err != nil {
		return graphDoc{}, nil, err
	}
	version, err := parseDocVersion(doc.Version)
	if err != nil {
		return graphDoc{}, nil, err
	}
	return doc, version, nil
}
