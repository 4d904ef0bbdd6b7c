package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/graphar/internal/schema"
	"github.com/matzehuels/graphar/pkg/info"
	"github.com/matzehuels/graphar/pkg/observability"
	"github.com/matzehuels/graphar/pkg/reader"
	"github.com/matzehuels/graphar/pkg/storage"
)

const (
	adjPrefix = "edge/person_knows_person/ordered_by_source/"
	graphName = "ldbc.graph.yml"
)

// writeArchive saves an ldbc-like schema with count files to a temporary
// directory and returns the path of the graph file.
//
// person has 903 vertices (10 chunks of 100). The ordered_by_source list of
// knows has 2048 edges in partition 0, 1025 in partition 2 and none
// elsewhere, so partitions 0 and 2 hold two chunks of 1024 each.
func writeArchive(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	v1 := info.MustParseVersion("gar/v1")

	person, err := info.NewVertexInfo("person", 100, []*info.PropertyGroup{
		info.NewPropertyGroup([]info.Property{info.NewProperty("id", info.Int64(), true)}, info.FileTypeCSV),
	}, "vertex/person/", v1)
	if err != nil {
		t.Fatal(err)
	}
	knows, err := info.NewEdgeInfo(info.EdgeConfig{
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
	g, err := info.NewGraphInfo("ldbc", []*info.VertexInfo{person}, []*info.EdgeInfo{knows}, "", v1)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	fs, err := storage.NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Save(ctx, fs, graphName); err != nil {
		t.Fatal(err)
	}

	counts := map[string]int64{person.GetVerticesNumFilePath(): 903}
	vertexCount, err := knows.GetVerticesNumFilePath(info.OrderedBySource)
	if err != nil {
		t.Fatal(err)
	}
	counts[vertexCount] = 903
	for part, n := range []int64{2048, 0, 1025, 0, 0, 0, 0, 0, 0, 0} {
		p, err := knows.GetEdgesNumFilePath(int64(part), info.OrderedBySource)
		if err != nil {
			t.Fatal(err)
		}
		counts[p] = n
	}
	for name, n := range counts {
		if err := fs.WriteFile(ctx, name, reader.EncodeCount(n)); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, graphName)
}

// execute runs the root command with args and returns stdout and the log output.
func execute(t *testing.T, args ...string) (out, logs string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var stdout, stderr bytes.Buffer
	root := New(&stderr, LogInfo).RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestPathCommand(t *testing.T) {
	graph := writeArchive(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "vertex",
			args: []string{"path", "vertex", graph, "person", "id", "--chunk", "5"},
			want: "vertex/person/id/chunk5",
		},
		{
			name: "adj",
			args: []string{"path", "adj", graph, "person", "knows", "person", "--part", "2", "--chunk", "1"},
			want: adjPrefix + "adj_list/part2/chunk1",
		},
		{
			name: "offset",
			args: []string{"path", "adj", graph, "person", "knows", "person", "--offset", "--chunk", "3"},
			want: adjPrefix + "offset/chunk3",
		},
		{
			name: "edge property",
			args: []string{"path", "edge-property", graph, "person", "knows", "person", "creationDate", "--part", "1"},
			want: adjPrefix + "creationDate/part1/chunk0",
		},
		{
			name: "by dest",
			args: []string{"path", "adj", graph, "person", "knows", "person", "--type", "unordered_by_dest"},
			want: "edge/person_knows_person/unordered_by_dest/adj_list/part0/chunk0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute() error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathCommandErrors(t *testing.T) {
	graph := writeArchive(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown vertex", []string{"path", "vertex", graph, "comment", "id"}, "NOT_FOUND"},
		{"unknown property", []string{"path", "vertex", graph, "person", "age"}, "NOT_FOUND"},
		{"negative chunk", []string{"path", "vertex", graph, "person", "id", "--chunk", "-1"}, "INVALID_ARGUMENT"},
		{"unknown edge", []string{"path", "adj", graph, "person", "likes", "post"}, "NOT_FOUND"},
		{"unordered offset", []string{"path", "adj", graph, "person", "knows", "person", "--type", "unordered_by_dest", "--offset"}, "INVALID_ARGUMENT"},
		{"missing graph", []string{"path", "vertex", filepath.Join(t.TempDir(), graphName), "person", "id"}, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("execute() error = %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestChunksCommand(t *testing.T) {
	graph := writeArchive(t)
	adj := adjPrefix + "adj_list/"

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "vertex seek",
			args: []string{"chunks", "vertex", graph, "person", "id", "--seek", "820"},
			want: []string{"vertex/person/id/chunk8", "vertex/person/id/chunk9"},
		},
		{
			name: "adj walk skips empty partitions",
			args: []string{"chunks", "adj", graph, "person", "knows", "person"},
			want: []string{adj + "part0/chunk0", adj + "part0/chunk1", adj + "part2/chunk0", adj + "part2/chunk1"},
		},
		{
			name: "adj seek src",
			args: []string{"chunks", "adj", graph, "person", "knows", "person", "--seek-src", "100"},
			want: []string{adj + "part2/chunk0", adj + "part2/chunk1"},
		},
		{
			name: "edge property limit",
			args: []string{"chunks", "edge-property", graph, "person", "knows", "person", "creationDate", "--limit", "1"},
			want: []string{adjPrefix + "creationDate/part0/chunk0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute() error: %v", err)
			}
			got := strings.Fields(out)
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("chunks = %q, want %q", got, tt.want)
			}
		})
	}

	errTests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"seek past end", []string{"chunks", "vertex", graph, "person", "id", "--seek", "5000"}, "OUT_OF_RANGE"},
		{"seek wrong side", []string{"chunks", "adj", graph, "person", "knows", "person", "--seek-dst", "1"}, "INVALID_ARGUMENT"},
		{"both seeks", []string{"chunks", "adj", graph, "person", "knows", "person", "--seek-src", "1", "--seek-dst", "1"}, "mutually exclusive"},
		{"missing counts", []string{"chunks", "adj", graph, "person", "knows", "person", "--type", "unordered_by_dest"}, "NOT_FOUND"},
		{"bad type", []string{"chunks", "adj", graph, "person", "knows", "person", "--type", "sideways"}, "INVALID_ARGUMENT"},
	}
	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("execute() error = %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	graph := writeArchive(t)
	out, _, err := execute(t, "validate", graph)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if !strings.Contains(out, "ldbc is valid (1 vertices, 1 edges)") {
		t.Errorf("validate output = %q", out)
	}

	// Drop the person document from the graph so knows dangles.
	doc := "name: ldbc\nprefix: \"\"\nedges:\n  - person_knows_person.edge.yml\nversion: gar/v1\n"
	broken := filepath.Join(filepath.Dir(graph), "broken.graph.yml")
	if err := os.WriteFile(broken, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err = execute(t, "validate", broken)
	if err == nil || !strings.Contains(err.Error(), "1 schema issue(s)") {
		t.Errorf("validate(broken) error = %v", err)
	}
	if !strings.Contains(out, "graph:") || !strings.Contains(out, "NOT_FOUND") {
		t.Errorf("validate(broken) output = %q", out)
	}
}

func TestShowCommand(t *testing.T) {
	graph := writeArchive(t)

	out, _, err := execute(t, "show", graph)
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	for _, want := range []string{"ldbc", "gar/v1", "person", "id*:int64 (csv)", "person_knows_person", "1024 (100/100)", "ordered_by_source (csv)"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "show", graph, "--json")
	if err != nil {
		t.Fatalf("show --json error: %v", err)
	}
	var g schema.Graph
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("show --json output is not JSON: %v\n%s", err, out)
	}
	if g.Name != "ldbc" || !g.Validated || len(g.Vertices) != 1 || len(g.Edges) != 1 {
		t.Errorf("show --json = %+v", g)
	}
}

func TestDumpCommand(t *testing.T) {
	graph := writeArchive(t)

	tests := []struct {
		entity string
		want   string
	}{
		{"", "name: ldbc"},
		{"vertex:person", "label: person"},
		{"edge:person,knows,person", "edge_label: knows"},
	}
	for _, tt := range tests {
		t.Run(tt.entity, func(t *testing.T) {
			out, _, err := execute(t, "dump", graph, "--entity", tt.entity)
			if err != nil {
				t.Fatalf("dump error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("dump output missing %q:\n%s", tt.want, out)
			}
		})
	}

	for _, entity := range []string{"vertex:post", "edge:person,knows", "table:person"} {
		if _, _, err := execute(t, "dump", graph, "--entity", entity); err == nil {
			t.Errorf("dump --entity %s: expected error", entity)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	graph := writeArchive(t)

	out, _, err := execute(t, "render", graph, "--format", "dot", "--detailed")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.HasPrefix(out, `digraph "ldbc"`) || !strings.Contains(out, `"person" -> "person"`) {
		t.Errorf("render output = %q", out)
	}

	dst := filepath.Join(t.TempDir(), "schema.dot")
	if _, _, err := execute(t, "render", graph, "-o", dst); err != nil {
		t.Fatalf("render -o error: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("format from extension: got %q", data)
	}

	if _, _, err := execute(t, "render", graph, "--format", "pdf"); err == nil {
		t.Error("render --format pdf: expected error")
	}
}

func TestCopyCommand(t *testing.T) {
	graph := writeArchive(t)
	dst := t.TempDir()

	out, _, err := execute(t, "copy", graph, dst)
	if err != nil {
		t.Fatalf("copy error: %v", err)
	}
	for _, name := range []string{graphName, "person.vertex.yml", "person_knows_person.edge.yml"} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("copy did not write %s: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("copy output missing %s:\n%s", name, out)
		}
	}

	if _, _, err := execute(t, "validate", filepath.Join(dst, graphName)); err != nil {
		t.Errorf("validate copy: %v", err)
	}
}

func TestConfigAndStorageFlags(t *testing.T) {
	graph := writeArchive(t)
	dir := filepath.Dir(graph)

	t.Run("storage flag", func(t *testing.T) {
		out, _, err := execute(t, "--storage", "file://"+dir, "path", "vertex", graphName, "person", "id")
		if err != nil {
			t.Fatalf("execute() error: %v", err)
		}
		if got := strings.TrimSpace(out); got != "vertex/person/id/chunk0" {
			t.Errorf("path = %q", got)
		}
	})

	t.Run("config defaults", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")
		body := "[storage]\nroot = \"" + filepath.ToSlash(dir) + "\"\n\n[render]\nformat = \"dot\"\n"
		if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		out, _, err := execute(t, "--config", cfg, "render", graphName)
		if err != nil {
			t.Fatalf("execute() error: %v", err)
		}
		if !strings.HasPrefix(out, "digraph") {
			t.Errorf("render with config format dot = %q", out)
		}
	})

	t.Run("bad config", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(cfg, []byte("[render]\ncolour = \"red\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, _, err := execute(t, "--config", cfg, "validate", graph)
		if err == nil || !strings.Contains(err.Error(), "unknown keys") {
			t.Errorf("execute() error = %v, want unknown keys", err)
		}
	})

	t.Run("verbose traces storage", func(t *testing.T) {
		_, logs, err := execute(t, "-v", "validate", graph)
		if err != nil {
			t.Fatalf("execute() error: %v", err)
		}
		for _, want := range []string{"schema loaded", "person.vertex.yml"} {
			if !strings.Contains(logs, want) {
				t.Errorf("verbose logs missing %q:\n%s", want, logs)
			}
		}
	})
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"completion", "bash"}, "__complete "},
		{[]string{"completion", "bash", "--no-descriptions"}, "__completeNoDesc"},
		{[]string{"completion", "zsh", "--no-descriptions"}, "__completeNoDesc"},
		{[]string{"completion", "fish"}, "graphar"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("completion error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("completion output missing %q", tt.want)
			}
		})
	}

	if _, _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}
