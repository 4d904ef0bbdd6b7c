package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphar/internal/config"
	"github.com/matzehuels/graphar/pkg/buildinfo"
)

// appName is the application name used for the binary and directories.
const appName = "graphar"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	config     config.Config
	configPath string // --config
	storageURI string // --storage
	verbose    bool   // --verbose
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "graphar inspects chunked graph archives",
		Long: `graphar reads the YAML schema of a chunked graph archive, validates it,
resolves the file path of every chunk, and renders the schema as a diagram.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/graphar/config.toml)")
	flags.StringVar(&c.storageURI, "storage", "", "storage URI graph files are read from (default: the graph file's directory)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.dumpCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.chunksCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.copyCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies it before any command runs.
// --verbose wins over the configured log level.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	registerHooks(c.Logger)

	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	} else if p, err := config.DefaultPath(); err == nil {
		if _, err := os.Stat(p); err == nil {
			c.Logger.Debug("loaded config", "path", p)
		}
	}
	return nil
}
