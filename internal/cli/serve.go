package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphar/internal/server"
	"github.com/matzehuels/graphar/pkg/cache"
)

// serveCommand creates the serve command, which runs the read-only HTTP
// API for one archive until interrupted. Counts of remote archives are
// kept in memory for the cache.ttl config duration.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		readTimeout time.Duration
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve <graph.yml>",
		Short: "Serve schema and chunk path lookups over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.config.Server.Addr
			}
			if !cmd.Flags().Changed("read-timeout") {
				readTimeout = c.config.Server.ReadTimeout
			}

			a, err := c.openArchive(ctx, args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			if !a.graph.IsValidated() {
				c.Logger.Warn("serving a schema that does not validate", "graph", a.graph.Name(), "err", a.graph.Validate())
			}

			counts := c.countSource(a, func() cache.Cache {
				if noCache {
					return cache.NewNullCache()
				}
				return cache.NewMemoryCache()
			})
			srv := server.New(a.graph, counts, c.Logger)
			return srv.Run(ctx, addr, readTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "request read timeout (default from config, 10s)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "read count files on every request")
	return cmd
}
