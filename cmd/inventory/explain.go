// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/inventory/internal/issue"
)

// newExplainCommand creates the `inventory explain` command.
func newExplainCommand(app *App) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "explain [CODE]",
		Short: "Explain a diagnostic code",
		Long: `Explain a diagnostic code printed by 'inventory validate'.
Without CODE, list every known code.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: issueCodes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, iss := range issue.Values() {
					if _, err := fmt.Fprintf(app.stdout, "%-24s %s\n", CmdStyle.Render(string(iss.Code())), iss.Summary()); err != nil {
						return err
					}
				}
				return nil
			}

			iss := issue.Get(issue.Code(args[0]))
			if iss == nil {
				return &ExitError{Code: 1, Err: issue.NewErrorContext().
					WithOperation("explain diagnostic").
					WithResource(args[0]).
					WithSuggestion("Known codes: " + strings.Join(issueCodes(), ", ")).
					Wrap(fmt.Errorf("unknown diagnostic code %q", args[0])).
					BuildError()}
			}

			rendered, err := iss.Render(style)
			if err != nil {
				return fmt.Errorf("render explanation: %w", err)
			}
			_, err = fmt.Fprint(app.stdout, rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&style, "style", "dark", "glamour style: dark, light, notty, auto or a JSON style file")
	return cmd
}

func issueCodes() []string {
	values := issue.Values()
	codes := make([]string, 0, len(values))
	for _, iss := range values {
		codes = append(codes, string(iss.Code()))
	}
	return codes
}
