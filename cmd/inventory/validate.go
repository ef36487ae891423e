// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/inventory/internal/watch"
	"github.com/invowk/inventory/pkg/inventory"
)

// newValidateCommand creates the `inventory validate` command.
func newValidateCommand(app *App) *cobra.Command {
	var (
		strict    bool
		watchMode bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report problems in the inventory file",
		Long: `Parse the inventory and print every diagnostic.

Exits 1 when an error diagnostic is found, or any warning with --strict.
With --watch the file is re-checked after every change until interrupted.
Run 'inventory explain CODE' for details on a diagnostic code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}

			if watchMode {
				return runValidateWatch(cmd.Context(), app, s, strict)
			}

			failed, err := validateOnce(app, s, strict)
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			if failed {
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
				return &ExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings too")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-validate whenever the inventory file changes")
	return cmd
}

// validateOnce parses the inventory and writes its report to stdout. It
// reports whether the result fails the selected strictness.
func validateOnce(app *App, s *session, strict bool) (bool, error) {
	res, err := app.parse(s)
	if err != nil {
		return true, err
	}
	writeReport(app.stdout, s.cfg.Inventory.Path.String(), res)
	return failsValidation(res.Diagnostics, strict), nil
}

// failsValidation reports whether ds contains an error, or a warning when strict.
func failsValidation(ds inventory.Diagnostics, strict bool) bool {
	if ds.HasErrors() {
		return true
	}
	return strict && ds.Count(inventory.SeverityWarning) > 0
}

// writeReport prints one line per diagnostic followed by a summary line.
func writeReport(w io.Writer, path string, res *inventory.Result) {
	for _, d := range res.Diagnostics {
		style := severityStyles[d.Severity.String()]
		loc := path
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", path, d.Line)
		}
		_, _ = fmt.Fprintf(w, "%s: %s [%s] %s\n", loc, style.Render(d.Severity.String()), CmdStyle.Render(d.Code), d.Message)
	}

	hosts := len(res.Tree.Hosts())
	groups := len(res.Tree.Groups())
	if len(res.Diagnostics) == 0 {
		_, _ = fmt.Fprintf(w, "%s %s: %s, %s, no problems\n",
			SuccessStyle.Render("✓"), path, plural(hosts, "host"), plural(groups, "group"))
		return
	}

	counts := []string{
		plural(res.Diagnostics.Count(inventory.SeverityError), "error"),
		plural(res.Diagnostics.Count(inventory.SeverityWarning), "warning"),
		fmt.Sprintf("%d info", res.Diagnostics.Count(inventory.SeverityInfo)),
	}
	mark := WarningStyle.Render("!")
	if res.Diagnostics.HasErrors() {
		mark = ErrorStyle.Render("✗")
	}
	_, _ = fmt.Fprintf(w, "%s %s: %s, %s, %s\n",
		mark, path, plural(hosts, "host"), plural(groups, "group"), strings.Join(counts, ", "))
}

// runValidateWatch validates once, then again after every change to the
// inventory file, until ctx is cancelled.
func runValidateWatch(ctx context.Context, app *App, s *session, strict bool) error {
	path := s.cfg.Inventory.Path.String()

	revalidate := func() {
		if _, err := validateOnce(app, s, strict); err != nil {
			printError(app.stderr, err, app.flags.verbose)
		}
	}

	revalidate()
	_, _ = fmt.Fprintf(app.stdout, "\n%s Watching %s for changes (Ctrl+C to stop)...\n\n", CmdStyle.Render("→"), path)

	w, err := watch.New(watch.Config{
		Targets:     []string{path},
		Debounce:    s.cfg.Watch.Debounce.Duration(),
		ClearScreen: s.cfg.Watch.ClearScreen,
		OnChange: func(_ context.Context, changed []string) error {
			s.logger.Debug("inventory changed", "paths", changed)
			revalidate()
			return nil
		},
		Stdout: app.stdout,
		Logger: s.logger,
	})
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("failed to start watcher: %w", err)}
	}
	return w.Run(ctx)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
