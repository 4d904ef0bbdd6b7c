package info

import (
	"context"
	"testing"

	"github.com/matzehuels/graphar/pkg/errors"
)

var v1 = MustParseVersion("gar/v1")

func idGroup() *PropertyGroup {
	return NewPropertyGroup([]Property{NewProperty("id", Int64(), true)}, FileTypeCSV)
}

func nameGroup() *PropertyGroup {
	return NewPropertyGroup([]Property{
		NewProperty("firstName", String(), false),
		NewProperty("lastName", String(), false),
		NewProperty("gender", String(), false),
	}, FileTypeORC)
}

func creationDateGroup() *PropertyGroup {
	return NewPropertyGroup([]Property{NewProperty("creationDate", String(), false)}, FileTypeCSV)
}

func personVertex(t *testing.T) *VertexInfo {
	t.Helper()
	v, err := NewVertexInfo("person", 100, []*PropertyGroup{idGroup(), nameGroup()}, "vertex/person/", v1)
	if err != nil {
		t.Fatalf("NewVertexInfo() error: %v", err)
	}
	if err := v.Validate(); err != nil {
		t.Fatalf("person vertex not validated: %v", err)
	}
	return v
}

func knowsConfig() EdgeConfig {
	return EdgeConfig{
		Src:          "person",
		Edge:         "knows",
		Dst:          "person",
		ChunkSize:    1024,
		SrcChunkSize: 100,
		DstChunkSize: 100,
		AdjacentLists: []*AdjacentList{
			NewAdjacentList(OrderedBySource, FileTypeCSV),
			NewAdjacentList(OrderedByDest, FileTypeCSV),
		},
		PropertyGroups: []*PropertyGroup{creationDateGroup()},
		Prefix:         "edge/person_knows_person/",
		Version:        v1,
	}
}

func knowsEdge(t *testing.T) *EdgeInfo {
	t.Helper()
	e, err := NewEdgeInfo(knowsConfig())
	if err != nil {
		t.Fatalf("NewEdgeInfo() error: %v", err)
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("knows edge not validated: %v", err)
	}
	return e
}

func ldbcGraph(t *testing.T) *GraphInfo {
	t.Helper()
	g, err := NewGraphInfo("ldbc", []*VertexInfo{personVertex(t)}, []*EdgeInfo{knowsEdge(t)}, "", v1)
	if err != nil {
		t.Fatalf("NewGraphInfo() error: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("ldbc graph not validated: %v", err)
	}
	return g
}

func wantCode(t *testing.T, err error, code errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !errors.Is(err, code) {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

// mapFS is an in-memory FileReader and FileWriter.
type mapFS map[string][]byte

func (m mapFS) ReadFile(_ context.Context, name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "%s: no such file", name)
	}
	return data, nil
}

func (m mapFS) WriteFile(_ context.Context, name string, data []byte) error {
	m[name] = append([]byte(nil), data...)
	return nil
}
