package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphar/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file; stdout when empty
	format   string // dot, svg or png
	detailed bool   // chunk sizes and groups in node labels
}

// renderCommand creates the render command for drawing schema diagrams.
//
// The format comes from --format, else the extension of --output, else the
// render.format config key.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <graph.yml>",
		Short: "Render the schema as a DOT, SVG or PNG diagram",
		Example: `  graphar render ldbc.graph.yml -o schema.svg
  graphar render ldbc.graph.yml --format dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			format, err := render.ParseFormat(c.renderFormat(opts, flags.Changed("format")))
			if err != nil {
				return err
			}
			if !flags.Changed("detailed") {
				opts.detailed = c.config.Render.Detailed
			}

			a, err := c.openArchive(ctx, args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			prog := newProgress(c.Logger)
			data, err := render.Render(ctx, a.graph, format, render.Options{Detailed: opts.detailed})
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %s", format))

			if opts.output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			w := cmd.ErrOrStderr()
			printSuccess(w, "Rendered %s", a.graph.Name())
			printFile(w, opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg or png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show chunk sizes, property groups and adjacency lists")
	return cmd
}

func (c *CLI) renderFormat(opts renderOpts, explicit bool) string {
	if explicit {
		return opts.format
	}
	if ext := strings.TrimPrefix(filepath.Ext(opts.output), "."); ext != "" {
		if _, err := render.ParseFormat(ext); err == nil {
			return ext
		}
	}
	return c.config.Render.Format
}
