package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
)

// pathCommand creates the path command, which resolves the file path of a
// single chunk. Paths include the graph prefix.
func (c *CLI) pathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Resolve the file path of a chunk",
	}
	cmd.AddCommand(c.pathVertexCommand())
	cmd.AddCommand(c.pathAdjCommand())
	cmd.AddCommand(c.pathEdgePropertyCommand())
	return cmd
}

func (c *CLI) pathVertexCommand() *cobra.Command {
	var chunk int64

	cmd := &cobra.Command{
		Use:     "vertex <graph.yml> <label> <property>",
		Short:   "Resolve a vertex property chunk",
		Example: `  graphar path vertex ldbc.graph.yml person firstName --chunk 4`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			v, err := vertexInfo(a.graph, args[1])
			if err != nil {
				return err
			}
			group, err := v.GetPropertyGroup(args[2])
			if err != nil {
				return err
			}
			p, err := v.GetFilePath(group, chunk)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.graph.Prefix()+p)
			return nil
		},
	}

	cmd.Flags().Int64Var(&chunk, "chunk", 0, "vertex chunk index")
	return cmd
}

// edgeFlags are the flags shared by the edge path commands.
type edgeFlags struct {
	adjType string
	part    int64
	chunk   int64
}

func (f *edgeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.adjType, "type", info.OrderedBySource.String(), "adjacency list type")
	cmd.Flags().Int64Var(&f.part, "part", 0, "vertex chunk (partition) index")
	cmd.Flags().Int64Var(&f.chunk, "chunk", 0, "edge chunk index within the partition")
}

func (c *CLI) pathAdjCommand() *cobra.Command {
	var (
		flags  edgeFlags
		offset bool
	)

	cmd := &cobra.Command{
		Use:   "adj <graph.yml> <src> <edge> <dst>",
		Short: "Resolve an adjacency list or offset chunk",
		Example: `  graphar path adj ldbc.graph.yml person knows person --type ordered_by_source --part 2 --chunk 1
  graphar path adj ldbc.graph.yml person knows person --offset --chunk 3`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			e, err := edgeInfo(a.graph, args[1], args[2], args[3])
			if err != nil {
				return err
			}
			t, err := info.ParseAdjListType(flags.adjType)
			if err != nil {
				return err
			}
			var p string
			if offset {
				p, err = e.GetAdjListOffsetFilePath(flags.chunk, t)
			} else {
				p, err = e.GetAdjListFilePath(flags.part, flags.chunk, t)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.graph.Prefix()+p)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&offset, "offset", false, "resolve the offset chunk of an ordered list (--part is ignored)")
	return cmd
}

func (c *CLI) pathEdgePropertyCommand() *cobra.Command {
	var flags edgeFlags

	cmd := &cobra.Command{
		Use:     "edge-property <graph.yml> <src> <edge> <dst> <property>",
		Short:   "Resolve an edge property chunk",
		Example: `  graphar path edge-property ldbc.graph.yml person knows person creationDate --part 0 --chunk 0`,
		Args:    cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			e, err := edgeInfo(a.graph, args[1], args[2], args[3])
			if err != nil {
				return err
			}
			group, err := e.GetPropertyGroup(args[4])
			if err != nil {
				return err
			}
			t, err := info.ParseAdjListType(flags.adjType)
			if err != nil {
				return err
			}
			p, err := e.GetPropertyFilePath(group, t, flags.part, flags.chunk)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.graph.Prefix()+p)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func vertexInfo(g *info.GraphInfo, label string) (*info.VertexInfo, error) {
	v := g.GetVertexInfo(label)
	if v == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "graph %q has no vertex %q", g.Name(), label)
	}
	return v, nil
}

func edgeInfo(g *info.GraphInfo, src, edge, dst string) (*info.EdgeInfo, error) {
	e := g.GetEdgeInfo(src, edge, dst)
	if e == nil {
		k := info.EdgeKey{Src: src, Edge: edge, Dst: dst}
		return nil, errors.New(errors.ErrCodeNotFound, "graph %q has no edge %s", g.Name(), k)
	}
	return e, nil
}
