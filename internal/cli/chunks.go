package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphar/pkg/cache"
	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
	"github.com/matzehuels/graphar/pkg/reader"
)

// chunksCommand creates the chunks command, which walks a chunk info
// reader and prints the path of every visited chunk. Readers take their
// vertex and edge counts from the count files of the archive; counts of
// remote archives are cached on disk for the cache.ttl config duration.
func (c *CLI) chunksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "List the chunk files of a property or adjacency list",
	}
	cmd.AddCommand(c.chunksVertexCommand())
	cmd.AddCommand(c.chunksEdgeCommand("adj", "<graph.yml> <src> <edge> <dst>", "List adjacency list chunks", 4))
	cmd.AddCommand(c.chunksEdgeCommand("edge-property", "<graph.yml> <src> <edge> <dst> <property>", "List edge property chunks", 5))
	return cmd
}

func (c *CLI) chunksVertexCommand() *cobra.Command {
	var (
		seek    int64
		limit   int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:     "vertex <graph.yml> <label> <property>",
		Short:   "List vertex property chunks",
		Example: `  graphar chunks vertex ldbc.graph.yml person firstName --seek 820`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.openArchive(ctx, args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			counts := c.countSource(a, func() cache.Cache { return c.newCache(noCache) })
			rd, err := reader.NewVertexPropertyChunkInfoReader(ctx, counts, a.graph, args[1], args[2])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seek") {
				if err := rd.SeekID(seek); err != nil {
					return err
				}
			}
			return c.printChunks(cmd.OutOrStdout(), rd, limit)
		},
	}

	cmd.Flags().Int64Var(&seek, "seek", 0, "start at the chunk holding this vertex id")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many chunks (0 lists all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "read count files without the cache")
	return cmd
}

// edgeReader is implemented by both edge chunk info readers.
type edgeReader interface {
	reader.Cursor
	SeekSrc(id int64) error
	SeekDst(id int64) error
}

// chunksEdgeCommand builds "chunks adj" (nargs 4) and "chunks edge-property"
// (nargs 5, the last argument naming the property).
func (c *CLI) chunksEdgeCommand(use, argsUsage, short string, nargs int) *cobra.Command {
	var (
		adjType          string
		seekSrc, seekDst int64
		limit            int
		noCache          bool
	)

	cmd := &cobra.Command{
		Use:   use + " " + argsUsage,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := info.ParseAdjListType(adjType)
			if err != nil {
				return err
			}
			a, err := c.openArchive(ctx, args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			counts := c.countSource(a, func() cache.Cache { return c.newCache(noCache) })
			rd, err := newEdgeReader(ctx, counts, a.graph, args[1:], t)
			if err != nil {
				return err
			}
			switch flags := cmd.Flags(); {
			case flags.Changed("seek-src") && flags.Changed("seek-dst"):
				return errors.New(errors.ErrCodeInvalidArgument, "--seek-src and --seek-dst are mutually exclusive")
			case flags.Changed("seek-src"):
				err = rd.SeekSrc(seekSrc)
			case flags.Changed("seek-dst"):
				err = rd.SeekDst(seekDst)
			}
			if err != nil {
				return err
			}
			return c.printChunks(cmd.OutOrStdout(), rd, limit)
		},
	}

	cmd.Flags().StringVar(&adjType, "type", info.OrderedBySource.String(), "adjacency list type")
	cmd.Flags().Int64Var(&seekSrc, "seek-src", 0, "start at the partition of this source vertex id")
	cmd.Flags().Int64Var(&seekDst, "seek-dst", 0, "start at the partition of this destination vertex id")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many chunks (0 lists all)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "read count files without the cache")
	return cmd
}

// newEdgeReader opens an adjacency list reader for args (src, edge, dst),
// or an edge property reader when args also names a property.
func newEdgeReader(ctx context.Context, counts reader.CountSource, g *info.GraphInfo, args []string, t info.AdjListType) (edgeReader, error) {
	src, edge, dst := args[0], args[1], args[2]
	if len(args) == 4 {
		return reader.NewAdjListPropertyChunkInfoReader(ctx, counts, g, src, edge, dst, args[3], t)
	}
	return reader.NewAdjListChunkInfoReader(ctx, counts, g, src, edge, dst, t)
}

func (c *CLI) printChunks(w io.Writer, rd reader.Cursor, limit int) error {
	chunks, err := reader.Collect(rd, limit)
	for _, chunk := range chunks {
		fmt.Fprintln(w, chunk.Path)
	}
	if err != nil {
		return err
	}
	c.Logger.Debug("walked chunks", "listed", len(chunks), "total", rd.GetChunkNum())
	return nil
}
