// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for inventory.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/inventory/internal/issue"
	"github.com/invowk/inventory/internal/render"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the root and persistent flag values of one invocation.
type rootFlagValues struct {
	list          bool
	host          string
	inventoryPath string
	format        string
	configPath    string
	verbose       bool
	metricsFile   string
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &app.flags

	rootCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Ansible dynamic inventory from an INI hosts file",
		Long: TitleStyle.Render("inventory") + SubtitleStyle.Render(" - Ansible dynamic inventory from an INI hosts file") + `

inventory reads an INI inventory (hosts.ini by default) and prints it in
the JSON shape Ansible expects from a dynamic inventory script.

` + SubtitleStyle.Render("Examples:") + `
  inventory --list                 Print every group, host and variable
  inventory --host web1            Print the variables of web1
  inventory -i prod.ini -o yaml -l Print prod.ini as YAML
  inventory graph                  Draw the group hierarchy
  inventory validate --watch       Re-check the file on every save`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(cmd, fmt.Errorf("unknown argument %q", args[0]))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, app)
		},
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetFlagErrorFunc(usageError)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.inventoryPath, "inventory", "i", "", "inventory file (default is hosts.ini)")
	pf.StringVarP(&flags.format, "format", "o", "", "output format: "+formatNames())
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/inventory/config.cue)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus gauges to this node_exporter textfile")

	rootCmd.Flags().BoolVarP(&flags.list, "list", "l", false, "print the whole inventory")
	rootCmd.Flags().StringVarP(&flags.host, "host", "H", "", "print the variables of one host")
	rootCmd.MarkFlagsMutuallyExclusive("list", "host")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml", "toml"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("host", completeHosts(app))

	rootCmd.AddCommand(
		newGraphCommand(app),
		newHostsCommand(app),
		newValidateCommand(app),
		newExplainCommand(app),
		newConfigCommand(app),
		newCompletionCommand(),
	)

	return rootCmd
}

// runRoot implements the dynamic inventory protocol: --list or --host.
// Without either it prints help.
func runRoot(cmd *cobra.Command, app *App) error {
	flags := &app.flags
	if !flags.list && !cmd.Flags().Changed("host") {
		return cmd.Help()
	}

	s, res, err := app.loadInventory(cmd.Context())
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	opts := s.cfg.Output.RenderOptions()
	if flags.list {
		return render.List(app.stdout, res.Tree, opts)
	}
	return render.Host(app.stdout, res.Tree, flags.host, opts)
}

// usageError prints the usage of cmd to stderr and returns err with exit code 1.
func usageError(cmd *cobra.Command, err error) error {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return &ExitError{Code: 1, Err: err}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	err = fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			printError(w, err, app.flags.verbose)
		}),
	)
	os.Exit(exitCodeOf(err))
}

// printError writes err for the user. An ExitError without a cause was
// already reported by its command and prints nothing.
func printError(w io.Writer, err error, verbose bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	_, _ = fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
