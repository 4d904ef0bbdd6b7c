// Package render draws the schema of a graph archive as a node-link
// diagram.
//
// # Overview
//
// Every vertex label becomes a box and every (src, edge, dst) triple an
// arrow from the source label to the destination label. Undirected edges
// are drawn without arrowheads. Edges whose endpoints are missing from the
// graph (an unvalidated schema) point at dashed placeholder boxes, so a
// broken schema still renders and shows what is missing.
//
// # Usage
//
// Convert a graph info to DOT, then render it with Graphviz:
//
//	dot := render.ToDOT(g, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [Render] dispatches on a [Format], which is what the CLI uses:
//
//	data, err := render.Render(ctx, g, render.FormatPNG, render.Options{})
//
// # Options
//
//   - Detailed: node labels list chunk sizes and property groups, edge
//     labels list chunk sizes and adjacency list types
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering; no Graphviz installation is needed.
package render
