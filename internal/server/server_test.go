package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/graphar/internal/schema"
	"github.com/matzehuels/graphar/pkg/info"
	"github.com/matzehuels/graphar/pkg/reader"
)

var knows = info.EdgeKey{Src: "person", Edge: "knows", Dst: "person"}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	v1 := info.MustParseVersion("gar/v1")
	person, err := info.NewVertexInfo("person", 100, []*info.PropertyGroup{
		info.NewPropertyGroup([]info.Property{info.NewProperty("id", info.Int64(), true)}, info.FileTypeCSV),
	}, "vertex/person/", v1)
	if err != nil {
		t.Fatal(err)
	}
	edge, err := info.NewEdgeInfo(info.EdgeConfig{
		Src: "person", Edge: "knows", Dst: "person",
		ChunkSize: 1024, SrcChunkSize: 100, DstChunkSize: 100,
		AdjacentLists: []*info.AdjacentList{
			info.NewAdjacentList(info.OrderedBySource, info.FileTypeCSV),
			info.NewAdjacentList(info.UnorderedByDest, info.FileTypeCSV),
		},
		PropertyGroups: []*info.PropertyGroup{
			info.NewPropertyGroup([]info.Property{info.NewProperty("creationDate", info.String(), false)}, info.FileTypeCSV),
		},
		Prefix:  "edge/person_knows_person/",
		Version: v1,
	})
	if err != nil {
		t.Fatal(err)
	}
	g, err := info.NewGraphInfo("ldbc", []*info.VertexInfo{person}, []*info.EdgeInfo{edge}, "ldbc/", v1)
	if err != nil {
		t.Fatal(err)
	}
	counts := reader.StaticCounts{
		Vertices: map[string]int64{"person": 903},
		Edges: map[reader.AdjListKey][]int64{
			{Edge: knows, Type: info.OrderedBySource}: {2048, 0, 1025},
		},
	}

	srv := httptest.NewServer(New(g, counts, log.New(io.Discard)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, v any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("GET %s: decode: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestPathEndpoints(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		path   string
		status int
		want   string // path or error code
	}{
		{"/vertices/person/properties/id/chunks/5", 200, "ldbc/vertex/person/id/chunk5"},
		{"/vertices/person/properties/age/chunks/5", 404, "NOT_FOUND"},
		{"/vertices/comment/properties/id/chunks/0", 404, "NOT_FOUND"},
		{"/vertices/person/properties/id/chunks/-1", 400, "INVALID_ARGUMENT"},
		{"/edges/person/knows/person/ordered_by_source/adj/2/1", 200, "ldbc/edge/person_knows_person/ordered_by_source/adj_list/part2/chunk1"},
		{"/edges/person/knows/person/unordered_by_source/adj/0/0", 404, "NOT_FOUND"},
		{"/edges/person/knows/person/sideways/adj/0/0", 400, "INVALID_ARGUMENT"},
		{"/edges/person/knows/person/ordered_by_source/offset/3", 200, "ldbc/edge/person_knows_person/ordered_by_source/offset/chunk3"},
		{"/edges/person/knows/person/unordered_by_dest/offset/3", 400, "INVALID_ARGUMENT"},
		{"/edges/person/knows/person/ordered_by_source/properties/creationDate/1/0", 200, "ldbc/edge/person_knows_person/ordered_by_source/creationDate/part1/chunk0"},
		{"/edges/person/likes/post/ordered_by_source/adj/0/0", 404, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var body struct {
				Path string `json:"path"`
				Code string `json:"code"`
			}
			status := get(t, srv, tt.path, &body)
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			got := body.Path
			if status != http.StatusOK {
				got = body.Code
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChunkWalkEndpoints(t *testing.T) {
	srv := testServer(t)
	const adj = "ldbc/edge/person_knows_person/ordered_by_source/adj_list/"

	tests := []struct {
		path string
		want chunksResponse
	}{
		{
			"/vertices/person/properties/id/chunks?seek=820",
			chunksResponse{ChunkNum: 10, Chunks: []reader.Chunk{
				{Index: 8, Path: "ldbc/vertex/person/id/chunk8"},
				{Index: 9, Path: "ldbc/vertex/person/id/chunk9"},
			}},
		},
		{
			"/vertices/person/properties/id/chunks?limit=1",
			chunksResponse{ChunkNum: 10, Chunks: []reader.Chunk{
				{Index: 0, Path: "ldbc/vertex/person/id/chunk0"},
			}},
		},
		{
			"/edges/person/knows/person/ordered_by_source/chunks?seek_src=100",
			chunksResponse{ChunkNum: 4, Chunks: []reader.Chunk{
				{Index: 2, Path: adj + "part2/chunk0"},
				{Index: 3, Path: adj + "part2/chunk1"},
			}},
		},
		{
			"/edges/person/knows/person/ordered_by_source/chunks?property=creationDate&limit=1",
			chunksResponse{ChunkNum: 4, Chunks: []reader.Chunk{
				{Index: 0, Path: "ldbc/edge/person_knows_person/ordered_by_source/creationDate/part0/chunk0"},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var got chunksResponse
			if status := get(t, srv, tt.path, &got); status != http.StatusOK {
				t.Fatalf("status = %d", status)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	errTests := []struct {
		path   string
		status int
	}{
		{"/vertices/person/properties/id/chunks?seek=5000", 404},
		{"/vertices/person/properties/id/chunks?seek=x", 400},
		{"/edges/person/knows/person/ordered_by_source/chunks?seek_dst=1", 400},
		{"/edges/person/knows/person/unordered_by_dest/chunks", 404},
	}
	for _, tt := range errTests {
		if status := get(t, srv, tt.path, nil); status != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.path, status, tt.status)
		}
	}
}

func TestSchemaEndpoints(t *testing.T) {
	srv := testServer(t)

	var g schema.Graph
	if status := get(t, srv, "/graph", &g); status != http.StatusOK {
		t.Fatalf("GET /graph status = %d", status)
	}
	if g.Name != "ldbc" || !g.Validated || len(g.Vertices) != 1 || len(g.Edges) != 1 {
		t.Errorf("GET /graph = %+v", g)
	}

	var v schema.Vertex
	if status := get(t, srv, "/vertices/person", &v); status != http.StatusOK || v.ChunkSize != 100 {
		t.Errorf("GET /vertices/person = %d, %+v", status, v)
	}
	var e schema.Edge
	if status := get(t, srv, "/edges/person/knows/person", &e); status != http.StatusOK || len(e.AdjLists) != 2 {
		t.Errorf("GET /edges/person/knows/person = %d, %+v", status, e)
	}

	resp, err := http.Get(srv.URL + "/graph.yml")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "name: ldbc") {
		t.Errorf("GET /graph.yml = %d\n%s", resp.StatusCode, body)
	}

	if status := get(t, srv, "/healthz", nil); status != http.StatusOK {
		t.Errorf("GET /healthz status = %d", status)
	}
	var version map[string]string
	if status := get(t, srv, "/version", &version); status != http.StatusOK || version["version"] == "" {
		t.Errorf("GET /version = %d, %v", status, version)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g, err := info.NewGraphInfo("ldbc", nil, nil, "", info.MustParseVersion("gar/v1"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New(g, reader.StaticCounts{}, log.New(io.Discard)).Run(ctx, "127.0.0.1:0", 0); err != nil {
		t.Errorf("Run() after cancel = %v, want nil", err)
	}
}
