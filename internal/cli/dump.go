package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphar/pkg/errors"
	"github.com/matzehuels/graphar/pkg/info"
)

// dumpCommand creates the dump command for printing canonical YAML.
func (c *CLI) dumpCommand() *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "dump <graph.yml>",
		Short: "Print the canonical YAML of a graph or one of its members",
		Example: `  graphar dump ldbc.graph.yml
  graphar dump ldbc.graph.yml --entity vertex:person
  graphar dump ldbc.graph.yml --entity edge:person,knows,person`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := dumpEntity(a.graph, entity)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), doc)
			return err
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "", "member to dump: vertex:<label> or edge:<src>,<edge>,<dst>")
	return cmd
}

// dumpEntity dumps g, or the member named by entity when it is set.
func dumpEntity(g *info.GraphInfo, entity string) (string, error) {
	if entity == "" {
		return g.Dump()
	}
	kind, name, _ := strings.Cut(entity, ":")
	switch kind {
	case "vertex":
		v, err := vertexInfo(g, name)
		if err != nil {
			return "", err
		}
		return v.Dump()
	case "edge":
		parts := strings.Split(name, ",")
		if len(parts) != 3 {
			return "", errors.New(errors.ErrCodeInvalidArgument, "edge entity must be <src>,<edge>,<dst>, got %q", name)
		}
		e, err := edgeInfo(g, parts[0], parts[1], parts[2])
		if err != nil {
			return "", err
		}
		return e.Dump()
	}
	return "", fmt.Errorf("unknown entity %q (want vertex:<label> or edge:<src>,<edge>,<dst>)", entity)
}
