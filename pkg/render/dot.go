package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
)

// Options configures schema diagram rendering.
type Options struct {
	// Detailed includes chunk sizes, property groups and adjacency list
	// types in labels. When false, only labels are shown.
	Detailed bool
}

// Format is an output format of [Render].
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidArgument, "unknown render format %q (want dot, svg or png)", s)
}

// ToDOT converts the schema of g to Graphviz DOT. Nodes and edges are
// emitted in sorted order, so equal schemas produce equal output.
func ToDOT(g *info.GraphInfo, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", g.Name())
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("\n")

	for _, v := range g.VertexInfos() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", v.Label(), vertexLabel(v, opts.Detailed))
	}
	for _, label := range missingLabels(g) {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\", fontcolor=grey];\n", label, label)
	}

	buf.WriteString("\n")
	for _, e := range g.EdgeInfos() {
		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(e, opts.Detailed))}
		if !e.IsDirected() {
			attrs = append(attrs, "dir=none")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.SrcLabel(), e.DstLabel(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexLabel(v *info.VertexInfo, detailed bool) string {
	if !detailed {
		return v.Label()
	}
	lines := []string{v.Label(), "chunk_size: " + strconv.FormatInt(v.ChunkSize(), 10)}
	for _, g := range v.PropertyGroups() {
		lines = append(lines, groupLine(g, v.IsPrimaryKey))
	}
	return strings.Join(lines, "\n")
}

func edgeLabel(e *info.EdgeInfo, detailed bool) string {
	if !detailed {
		return e.EdgeLabel()
	}
	lines := []string{
		e.EdgeLabel(),
		fmt.Sprintf("chunk_size: %d (src %d, dst %d)", e.ChunkSize(), e.SrcChunkSize(), e.DstChunkSize()),
	}
	var types []string
	for _, a := range e.AdjacentLists() {
		types = append(types, a.Type().String())
	}
	lines = append(lines, strings.Join(types, ", "))
	for _, g := range e.PropertyGroups() {
		lines = append(lines, groupLine(g, e.IsPrimaryKey))
	}
	return strings.Join(lines, "\n")
}

// groupLine renders a group as "[csv] id*, name"; primary keys carry a
// star.
func groupLine(g *info.PropertyGroup, isPrimary func(string) bool) string {
	names := make([]string, 0, g.Len())
	for _, p := range g.Properties() {
		name := p.Name
		if isPrimary(name) {
			name += "*"
		}
		names = append(names, name)
	}
	return "[" + g.FileType().String() + "] " + strings.Join(names, ", ")
}

// missingLabels returns the edge endpoints that are not vertices of g.
func missingLabels(g *info.GraphInfo) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, e := range g.EdgeInfos() {
		for _, label := range []string{e.SrcLabel(), e.DstLabel()} {
			if g.GetVertexInfo(label) == nil && !seen[label] {
				seen[label] = true
				missing = append(missing, label)
			}
		}
	}
	return missing
}

// Render draws the schema of g in format f.
func Render(ctx context.Context, g *info.GraphInfo, f Format, opts Options) ([]byte, error) {
	dot := ToDOT(g, opts)
	switch f {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		return RenderPNG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidArgument, "unknown render format %q", f)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := renderGraphviz(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraphviz(ctx, dot, graphviz.PNG)
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag with one whose viewBox
// starts at the origin and whose size matches it, so the diagram scales
// cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
