package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
)

var v1 = info.MustParseVersion("gar/v1")

func vertex(t *testing.T, label string) *info.VertexInfo {
	t.Helper()
	v, err := info.NewVertexInfo(label, 100, []*info.PropertyGroup{
		info.NewPropertyGroup([]info.Property{info.NewProperty("id", info.Int64(), true)}, info.FileTypeCSV),
		info.NewPropertyGroup([]info.Property{info.NewProperty("name", info.String(), false)}, info.FileTypeORC),
	}, "", v1)
	if err != nil {
		t.Fatalf("NewVertexInfo(%q) error: %v", label, err)
	}
	return v
}

func edge(t *testing.T, src, label, dst string, directed bool) *info.EdgeInfo {
	t.Helper()
	e, err := info.NewEdgeInfo(info.EdgeConfig{
		Src: src, Edge: label, Dst: dst,
		ChunkSize: 1024, SrcChunkSize: 100, DstChunkSize: 100,
		Directed: directed,
		AdjacentLists: []*info.AdjacentList{
			info.NewAdjacentList(info.OrderedBySource, info.FileTypeParquet),
		},
		Version: v1,
	})
	if err != nil {
		t.Fatalf("NewEdgeInfo() error: %v", err)
	}
	return e
}

func graph(t *testing.T, vertices []*info.VertexInfo, edges []*info.EdgeInfo) *info.GraphInfo {
	t.Helper()
	g, err := info.NewGraphInfo("ldbc", vertices, edges, "", v1)
	if err != nil {
		t.Fatalf("NewGraphInfo() error: %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := graph(t,
		[]*info.VertexInfo{vertex(t, "person"), vertex(t, "post")},
		[]*info.EdgeInfo{
			edge(t, "person", "knows", "person", false),
			edge(t, "person", "likes", "post", true),
		})

	dot := ToDOT(g, Options{})
	for _, want := range []string{
		`digraph "ldbc" {`,
		`"person" [label="person"];`,
		`"post" [label="post"];`,
		`"person" -> "person" [label="knows", dir=none];`,
		`"person" -> "post" [label="likes"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, "->"); n != 2 {
		t.Errorf("ToDOT() has %d edges, want 2", n)
	}
	if dot != ToDOT(g, Options{}) {
		t.Error("ToDOT() is not deterministic")
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := graph(t,
		[]*info.VertexInfo{vertex(t, "person")},
		[]*info.EdgeInfo{edge(t, "person", "knows", "person", true)})

	dot := ToDOT(g, Options{Detailed: true})
	for _, want := range []string{
		`person\nchunk_size: 100\n[csv] id*\n[orc] name`,
		`knows\nchunk_size: 1024 (src 100, dst 100)\nordered_by_source`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT(detailed) missing %q\n%s", want, dot)
		}
	}
}

func TestToDOTMissingEndpoint(t *testing.T) {
	g := graph(t,
		[]*info.VertexInfo{vertex(t, "person")},
		[]*info.EdgeInfo{edge(t, "person", "likes", "post", true)})
	if g.IsValidated() {
		t.Fatal("graph with a dangling edge should not be validated")
	}

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"post" [label="post", style="rounded,dashed", fontcolor=grey];`) {
		t.Errorf("ToDOT() should draw a placeholder for the missing vertex\n%s", dot)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"svg", FormatSVG},
		{"PNG", FormatPNG},
		{"dot", FormatDOT},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("ParseFormat(pdf) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if !bytes.Equal(normalizeViewBox(plain), plain) {
		t.Error("normalizeViewBox() should leave an SVG without viewBox unchanged")
	}
}

func TestRender(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	ctx := context.Background()
	g := graph(t, []*info.VertexInfo{vertex(t, "person")}, []*info.EdgeInfo{edge(t, "person", "knows", "person", true)})

	dot, err := Render(ctx, g, FormatDOT, Options{})
	if err != nil || !bytes.HasPrefix(dot, []byte("digraph")) {
		t.Fatalf("Render(dot) = %.20s, %v", dot, err)
	}
	svg, err := Render(ctx, g, FormatSVG, Options{Detailed: true})
	if err != nil {
		t.Fatalf("Render(svg) error: %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("Render(svg) did not produce a normalized SVG: %.200s", svg)
	}
	if _, err := Render(ctx, g, Format("pdf"), Options{}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Render(pdf) error = %v, want INVALID_ARGUMENT", err)
	}
}
