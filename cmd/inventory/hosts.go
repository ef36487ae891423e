// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/invowk/inventory/internal/issue"
	"github.com/invowk/inventory/pkg/inventory"
)

// newHostsCommand creates the `inventory hosts` command.
func newHostsCommand(app *App) *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "hosts [GROUP]",
		Short: "List the hosts of a group",
		Long: `List the hosts of GROUP (default "all") and of all its descendant
groups, one per line, in declaration order.

` + SubtitleStyle.Render("Examples:") + `
  inventory hosts                    Every host
  inventory hosts webservers         Hosts reachable from webservers
  inventory hosts --match 'db-*'     Hosts whose name matches a glob`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeGroups(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			group := inventory.AllGroup
			if len(args) == 1 {
				group = args[0]
			}
			if match != "" && !doublestar.ValidatePattern(match) {
				return &ExitError{Code: 1, Err: issue.NewErrorContext().
					WithOperation("filter hosts").
					WithResource(match).
					WithSuggestion("Use a glob such as 'web*' or 'db-{a,b}.example.com'").
					Wrap(doublestar.ErrBadPattern).
					BuildError()}
			}

			_, res, err := app.loadInventory(cmd.Context())
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}

			hosts, err := selectHosts(res.Tree, group, match)
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			for _, h := range hosts {
				if _, err := fmt.Fprintln(app.stdout, h); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "only print hosts matching this glob")
	return cmd
}

// selectHosts resolves group and keeps the hosts matching pattern. An empty
// pattern keeps every host.
func selectHosts(tree *inventory.Tree, group, pattern string) ([]string, error) {
	hosts, ok := tree.ResolveHosts(group)
	if !ok {
		return nil, issue.NewErrorContext().
			WithOperation("list hosts").
			WithResource(group).
			WithSuggestion("Run 'inventory graph' to see every group").
			Wrap(fmt.Errorf("group %q is not defined in the inventory", group)).
			BuildError()
	}
	if pattern == "" {
		return hosts, nil
	}

	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		ok, err := doublestar.Match(pattern, h)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, h)
		}
	}
	return out, nil
}
