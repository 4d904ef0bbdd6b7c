package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphar/internal/schema"
)

// validateCommand creates the validate command. It exits non-zero when the
// schema has any issue.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <graph.yml>",
		Short: "Check a graph schema for consistency",
		Long: `Validate loads a graph file and its member documents and reports every
schema problem: invalid vertex or edge infos, bad names or prefixes, and
edges whose endpoint vertices are missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			g := a.graph
			issues := schema.Report(g)
			if len(issues) == 0 {
				printSuccess(w, "%s is valid (%d vertices, %d edges)", g.Name(), g.VertexInfoNum(), g.EdgeInfoNum())
				return nil
			}
			for _, issue := range issues {
				printError(w, "%s: %s", issue.Entity, issue.Message)
				printDetail(w, "%s", issue.Code)
			}
			return fmt.Errorf("%s: %d schema issue(s)", g.Name(), len(issues))
		},
	}
}
