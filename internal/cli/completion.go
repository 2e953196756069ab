package cli

import (
	"io"
	"sort"

	"github.com/spf13/cobra"
)

// completionScripts writes the completion script for one shell.
var completionScripts = map[string]func(root *cobra.Command, w io.Writer, desc bool) error{
	"bash": func(root *cobra.Command, w io.Writer, desc bool) error {
		return root.GenBashCompletionV2(w, desc)
	},
	"zsh": func(root *cobra.Command, w io.Writer, desc bool) error {
		if desc {
			return root.GenZshCompletion(w)
		}
		return root.GenZshCompletionNoDesc(w)
	},
	"fish": func(root *cobra.Command, w io.Writer, desc bool) error {
		return root.GenFishCompletion(w, desc)
	},
	"powershell": func(root *cobra.Command, w io.Writer, desc bool) error {
		if desc {
			return root.GenPowerShellCompletionWithDesc(w)
		}
		return root.GenPowerShellCompletion(w)
	},
}

func (c *CLI) completionCommand() *cobra.Command {
	var noDesc bool

	shells := make([]string, 0, len(completionScripts))
	for name := range completionScripts {
		shells = append(shells, name)
	}
	sort.Strings(shells)

	cmd := &cobra.Command{
		Use:   "completion SHELL",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bash, zsh, fish or powershell.

Presets, formats and alignments complete from their known values:

  $ source <(textsvg completion bash)
  $ textsvg completion zsh > "${fpath[1]}/_textsvg"
  $ textsvg completion fish > ~/.config/fish/completions/textsvg.fish
  PS> textsvg completion powershell | Out-String | Invoke-Expression`,
		ValidArgs: shells,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScripts[args[0]](cmd.Root(), cmd.OutOrStdout(), !noDesc)
		},
	}
	cmd.Flags().BoolVar(&noDesc, "no-descriptions", false, "omit completion descriptions")

	return cmd
}
