// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/invowk/inventory/internal/config"
	"github.com/invowk/inventory/internal/issue"
)

// newConfigCommand creates the `inventory config` command tree.
// Subcommands that read configuration use the App's config.Provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage inventory configuration",
		Long: `Manage inventory configuration.

Configuration is read from the first file found of:
  - the --config flag
  - Linux: ~/.config/inventory/config.cue
    macOS: ~/Library/Application Support/inventory/config.cue
    Windows: %APPDATA%\inventory\config.cue
  - ./inventory.cue

Environment variables ` + config.EnvInventoryFile + `, ` + config.EnvFormat + ` and ` + config.EnvLogLevel + `
override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				renderConfigIssue(app.stderr)
				return &ExitError{Code: 1, Err: err}
			}
			path, _ := app.Config.Path(app.loadOptions())
			showConfig(app.stdout, path, s.cfg)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			_, err = fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long: `Write the default configuration to the --config path, or to the
platform configuration directory. An existing file is kept unless --force
is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configPath}
}

func renderConfigIssue(w io.Writer) {
	if rendered, err := issue.Get(issue.ConfigInvalidCode).Render("dark"); err == nil {
		_, _ = fmt.Fprint(w, rendered)
	}
}

func showConfig(w io.Writer, path string, cfg *config.Config) {
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	line := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }
	value := func(key string, v any) {
		line("  %s: %s\n", key, valueStyle.Render(fmt.Sprint(v)))
	}

	line("%s\n\n", headerStyle.Render("Current Configuration"))
	if path != "" {
		line("%s: %s\n\n", keyStyle.Render("Config file"), path)
	} else {
		line("%s: %s\n\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	line("%s:\n", keyStyle.Render("inventory"))
	value("path", cfg.Inventory.Path)
	value("strip_comments", cfg.Inventory.StripComments)
	value("unknown_subsection", cfg.Inventory.UnknownSubsection)
	value("max_line_bytes", cfg.Inventory.MaxLineBytes)

	line("\n%s:\n", keyStyle.Render("output"))
	value("format", cfg.Output.Format)
	value("indent", cfg.Output.Indent)

	line("\n%s:\n", keyStyle.Render("log"))
	value("level", cfg.Log.Level)

	line("\n%s:\n", keyStyle.Render("metrics"))
	if cfg.Metrics.Textfile == "" {
		line("  textfile: %s\n", SubtitleStyle.Render("(disabled)"))
	} else {
		value("textfile", cfg.Metrics.Textfile)
	}

	line("\n%s:\n", keyStyle.Render("watch"))
	value("debounce", cfg.Watch.Debounce)
	value("clear_screen", cfg.Watch.ClearScreen)
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	defaultPath, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	_, _ = fmt.Fprintf(app.stdout, "Default config file: %s\n", defaultPath)

	active, err := app.Config.Path(app.loadOptions())
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if active == "" {
		active = "(none, using defaults)"
	}
	_, _ = fmt.Fprintf(app.stdout, "Active config file: %s\n", active)
	return nil
}

func initConfig(app *App, force bool) error {
	path := app.flags.configPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	written, err := config.WriteFile(path, config.DefaultConfig(), force)
	if err != nil {
		return &ExitError{Code: 1, Err: issue.NewErrorContext().
			WithOperation("create configuration file").
			WithResource(path).
			WithSuggestion("Check that the directory is writable").
			Wrap(err).
			BuildError()}
	}
	if !written {
		_, _ = fmt.Fprintf(app.stdout, "%s Configuration already exists at %s (use --force to overwrite)\n", WarningStyle.Render("!"), path)
		return nil
	}

	_, _ = fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
