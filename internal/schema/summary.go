// Package schema builds serializable summaries and validation reports of
// graph infos, shared by the CLI and the HTTP server.
package schema

import (
	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
)

// Property is a summarized property.
type Property struct {
	Name      string `json:"name"`
	Type      string `json:"data_type"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// Group is a summarized property group.
type Group struct {
	Prefix     string     `json:"prefix"`
	FileType   string     `json:"file_type"`
	Properties []Property `json:"properties"`
}

// AdjList is a summarized adjacency list.
type AdjList struct {
	Type     string `json:"type"`
	Prefix   string `json:"prefix"`
	FileType string `json:"file_type"`
}

// Vertex is a summarized vertex info.
type Vertex struct {
	Label     string  `json:"label"`
	ChunkSize int64   `json:"chunk_size"`
	Prefix    string  `json:"prefix"`
	Groups    []Group `json:"property_groups"`
	Error     string  `json:"error,omitempty"`
}

// Edge is a summarized edge info.
type Edge struct {
	Src          string    `json:"src_label"`
	Edge         string    `json:"edge_label"`
	Dst          string    `json:"dst_label"`
	ChunkSize    int64     `json:"chunk_size"`
	SrcChunkSize int64     `json:"src_chunk_size"`
	DstChunkSize int64     `json:"dst_chunk_size"`
	Directed     bool      `json:"directed"`
	Prefix       string    `json:"prefix"`
	AdjLists     []AdjList `json:"adj_lists"`
	Groups       []Group   `json:"property_groups"`
	Error        string    `json:"error,omitempty"`
}

// Graph is a summarized graph info.
type Graph struct {
	Name      string   `json:"name"`
	Prefix    string   `json:"prefix"`
	Version   string   `json:"version"`
	Validated bool     `json:"validated"`
	Vertices  []Vertex `json:"vertices"`
	Edges     []Edge   `json:"edges"`
}

func summarizeGroups(groups []*info.PropertyGroup) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		props := make([]Property, 0, g.Len())
		for _, p := range g.Properties() {
			props = append(props, Property{Name: p.Name, Type: p.Type.String(), IsPrimary: p.IsPrimary})
		}
		out = append(out, Group{Prefix: g.Prefix(), FileType: g.FileType().String(), Properties: props})
	}
	return out
}

func message(err error) string {
	if err == nil {
		return ""
	}
	return errors.UserMessage(err)
}

// SummarizeVertex summarizes v.
func SummarizeVertex(v *info.VertexInfo) Vertex {
	return Vertex{
		Label:     v.Label(),
		ChunkSize: v.ChunkSize(),
		Prefix:    v.Prefix(),
		Groups:    summarizeGroups(v.PropertyGroups()),
		Error:     message(v.Validate()),
	}
}

// SummarizeEdge summarizes e.
func SummarizeEdge(e *info.EdgeInfo) Edge {
	adj := make([]AdjList, 0)
	for _, a := range e.AdjacentLists() {
		adj = append(adj, AdjList{Type: a.Type().String(), Prefix: a.Prefix(), FileType: a.FileType().String()})
	}
	return Edge{
		Src:          e.SrcLabel(),
		Edge:         e.EdgeLabel(),
		Dst:          e.DstLabel(),
		ChunkSize:    e.ChunkSize(),
		SrcChunkSize: e.SrcChunkSize(),
		DstChunkSize: e.DstChunkSize(),
		Directed:     e.IsDirected(),
		Prefix:       e.Prefix(),
		AdjLists:     adj,
		Groups:       summarizeGroups(e.PropertyGroups()),
		Error:        message(e.Validate()),
	}
}

// Summarize summarizes g. Members are listed in sorted order.
func Summarize(g *info.GraphInfo) Graph {
	out := Graph{
		Name:      g.Name(),
		Prefix:    g.Prefix(),
		Version:   g.Version().String(),
		Validated: g.IsValidated(),
		Vertices:  make([]Vertex, 0, g.VertexInfoNum()),
		Edges:     make([]Edge, 0, g.EdgeInfoNum()),
	}
	for _, v := range g.VertexInfos() {
		out.Vertices = append(out.Vertices, SummarizeVertex(v))
	}
	for _, e := range g.EdgeInfos() {
		out.Edges = append(out.Edges, SummarizeEdge(e))
	}
	return out
}
