package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command. Scripts complete
// subcommands and flags; graph file arguments fall back to file names.
func (c *CLI) completionCommand() *cobra.Command {
	var noDesc bool

	cmd := &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate shell completion scripts",
		Example: `  source <(graphar completion bash)
  graphar completion zsh > "${fpath[1]}/_graphar"
  graphar completion fish > ~/.config/fish/completions/graphar.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, !noDesc)
			case "zsh":
				if noDesc {
					return root.GenZshCompletionNoDesc(out)
				}
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, !noDesc)
			default:
				if noDesc {
					return root.GenPowerShellCompletion(out)
				}
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}

	cmd.Flags().BoolVar(&noDesc, "no-descriptions", false, "omit command and flag descriptions from completions")
	return cmd
}
