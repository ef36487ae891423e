// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/invowk/inventory/internal/issue"
	"github.com/invowk/inventory/internal/render"
)

// newGraphCommand creates the `inventory graph` command.
func newGraphCommand(app *App) *cobra.Command {
	var vars bool

	cmd := &cobra.Command{
		Use:   "graph [GROUP]",
		Short: "Draw the group hierarchy",
		Long: `Draw the groups and hosts below GROUP (default "all") as a tree,
in the style of 'ansible-inventory --graph'.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeGroups(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := app.loadInventory(cmd.Context())
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}

			opts := render.GraphOptions{
				Vars:       vars,
				GroupStyle: graphGroupStyle,
				HostStyle:  graphHostStyle,
				VarStyle:   graphVarStyle,
			}
			if len(args) == 1 {
				opts.Group = args[0]
			}

			if err := render.Graph(app.stdout, res.Tree, opts); err != nil {
				var unknown *render.UnknownGroupError
				if errors.As(err, &unknown) {
					return &ExitError{Code: 1, Err: issue.NewErrorContext().
						WithOperation("draw inventory graph").
						WithResource(unknown.Group).
						WithSuggestion("Run 'inventory graph' to see every group").
						Wrap(err).
						BuildError()}
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&vars, "vars", false, "show group and host variables")
	return cmd
}
