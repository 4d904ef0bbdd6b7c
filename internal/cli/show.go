package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphar/internal/schema"
)

// showCommand creates the show command for summarizing a schema.
func (c *CLI) showCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <graph.yml>",
		Short: "Summarize vertices, edges and their chunk layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			summary := schema.Summarize(a.graph)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(w io.Writer, g schema.Graph) {
	printKeyValue(w, "graph", g.Name)
	printKeyValue(w, "version", g.Version)
	printKeyValue(w, "prefix", g.Prefix)
	printKeyValue(w, "entities", StyleNumber.Render(fmt.Sprintf("%d vertices, %d edges", len(g.Vertices), len(g.Edges))))
	if g.Validated {
		printKeyValue(w, "status", StyleSuccess.Render("valid"))
	} else {
		printKeyValue(w, "status", StyleWarning.Render("invalid (run validate)"))
	}

	if len(g.Vertices) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleTitle.Render("Vertices"))
		rows := make([][]string, 0, len(g.Vertices))
		for _, v := range g.Vertices {
			rows = append(rows, []string{v.Label, strconv.FormatInt(v.ChunkSize, 10), v.Prefix, formatGroups(v.Groups)})
		}
		printTable(w, []string{"Label", "Chunk", "Prefix", "Property groups"}, rows)
	}

	if len(g.Edges) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleTitle.Render("Edges"))
		rows := make([][]string, 0, len(g.Edges))
		for _, e := range g.Edges {
			adj := make([]string, len(e.AdjLists))
			for i, a := range e.AdjLists {
				adj[i] = a.Type + " (" + a.FileType + ")"
			}
			rows = append(rows, []string{
				e.Src + "_" + e.Edge + "_" + e.Dst,
				fmt.Sprintf("%d (%d/%d)", e.ChunkSize, e.SrcChunkSize, e.DstChunkSize),
				strconv.FormatBool(e.Directed),
				strings.Join(adj, "\n"),
				formatGroups(e.Groups),
			})
		}
		printTable(w, []string{"Edge", "Chunk (src/dst)", "Directed", "Adjacency lists", "Property groups"}, rows)
	}
}

// formatGroups renders one group per line as "id*:int64,name:string (csv)".
// Primary keys are starred.
func formatGroups(groups []schema.Group) string {
	lines := make([]string, len(groups))
	for i, g := range groups {
		props := make([]string, len(g.Properties))
		for j, p := range g.Properties {
			name := p.Name
			if p.IsPrimary {
				name += "*"
			}
			props[j] = name + ":" + p.Type
		}
		lines[i] = strings.Join(props, ",") + " (" + g.FileType + ")"
	}
	return strings.Join(lines, "\n")
}
