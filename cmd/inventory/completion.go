// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/inventory/pkg/inventory"
)

// newCompletionCommand creates the `inventory completion` command.
func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for inventory.

` + SubtitleStyle.Render("Bash:") + `
  # Add to ~/.bashrc:
  eval "$(inventory completion bash)"

` + SubtitleStyle.Render("Zsh:") + `
  # Add to ~/.zshrc:
  eval "$(inventory completion zsh)"

` + SubtitleStyle.Render("Fish:") + `
  inventory completion fish > ~/.config/fish/completions/inventory.fish

` + SubtitleStyle.Render("PowerShell:") + `
  inventory completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completionTree parses the configured inventory without logging. It returns
// nil when configuration or the file cannot be read.
func completionTree(cmd *cobra.Command, app *App) *inventory.Tree {
	s, err := app.newSession(cmd.Context())
	if err != nil {
		return nil
	}
	res, err := inventory.ParseFile(s.cfg.Inventory.Path.String(), s.cfg.Inventory.ParseOptions())
	if err != nil {
		return nil
	}
	return res.Tree
}

// completeHosts completes host names for --host.
func completeHosts(app *App) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		tree := completionTree(cmd, app)
		if tree == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return withPrefix(tree.Hosts(), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeGroups completes the single GROUP argument of graph and hosts.
func completeGroups(app *App) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		tree := completionTree(cmd, app)
		if tree == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		groups := append([]string{inventory.AllGroup}, tree.Groups()...)
		return withPrefix(groups, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func withPrefix(names []string, prefix string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}
