package cli

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphar/pkg/info"
	"github.com/matzehuels/graphar/pkg/storage"
)

// copyCommand creates the copy command, which writes the schema documents
// of an archive to another storage backend. Chunk files are not copied.
func (c *CLI) copyCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "copy <graph.yml> <dest-uri>",
		Short: "Copy the schema documents to another storage backend",
		Example: `  graphar copy ldbc/ldbc.graph.yml gs://my-bucket/ldbc
  graphar copy ldbc/ldbc.graph.yml redis://localhost:6379/0 --name ldbc.graph.yml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.openArchive(ctx, args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			dst, err := storage.Open(ctx, args[1], c.config.StorageOptions(c.Logger)...)
			if err != nil {
				return fmt.Errorf("open destination: %w", err)
			}
			defer dst.Close()

			if name == "" {
				_, name = c.storageLocation(args[0])
				name = path.Base(name)
			}
			if err := a.graph.Save(ctx, dst, name); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Copied %s to %s (%s)", a.graph.Name(), args[1], storage.Backend(dst))
			printFile(w, name)
			dir := path.Dir(name)
			for _, v := range a.graph.VertexInfos() {
				printFile(w, path.Join(dir, info.VertexFileName(v.Label())))
			}
			for _, e := range a.graph.EdgeInfos() {
				printFile(w, path.Join(dir, info.EdgeFileName(e.Key())))
			}
			printInfo(w, "chunk files are not copied")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "graph document name at the destination (default: the source file name)")
	return cmd
}
