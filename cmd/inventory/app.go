// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/invowk/inventory/internal/config"
	"github.com/invowk/inventory/internal/issue"
	"github.com/invowk/inventory/internal/metrics"
	"github.com/invowk/inventory/internal/render"
	"github.com/invowk/inventory/pkg/inventory"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra handler receives an App and reaches configuration,
	// the parser and the output streams through it.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
		now    func() time.Time
		flags  rootFlagValues
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
		// Now stamps parse timings; nil means time.Now.
		Now func() time.Time
	}

	// session is one invocation's configuration with command-line overrides
	// applied, plus the logger and metrics built from it.
	session struct {
		cfg     *config.Config
		logger  *log.Logger
		metrics *metrics.Collector
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		now:    deps.Now,
	}, nil
}

// newSession loads configuration and applies the global flags on top of it.
func (a *App) newSession(ctx context.Context) (*session, error) {
	flags := &a.flags
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, err
	}

	if flags.inventoryPath != "" {
		cfg.Inventory.Path = config.InventoryPath(flags.inventoryPath)
	}
	if flags.format != "" {
		format := render.Format(flags.format)
		if ok, errs := format.IsValid(); !ok {
			return nil, issue.NewErrorContext().
				WithOperation("select output format").
				WithResource(flags.format).
				WithSuggestion("Use one of: " + formatNames()).
				Wrap(errors.Join(errs...)).
				BuildError()
		}
		cfg.Output.Format = format
	}
	if flags.metricsFile != "" {
		cfg.Metrics.Textfile = flags.metricsFile
	}

	s := &session{
		cfg:    cfg,
		logger: a.newLogger(cfg.Log.Level, flags.verbose),
	}
	if cfg.Metrics.Textfile != "" {
		s.metrics = metrics.NewCollector(nil)
	}
	return s, nil
}

// newLogger writes to stderr at the configured level; verbose forces debug.
func (a *App) newLogger(level config.LogLevel, verbose bool) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
	})

	lvl, err := log.ParseLevel(level.String())
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// loadInventory builds a session and parses its inventory file.
func (a *App) loadInventory(ctx context.Context) (*session, *inventory.Result, error) {
	s, err := a.newSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := a.parse(s)
	return s, res, err
}

// parse reads the session's inventory, logs its diagnostics and refreshes the
// metrics textfile. The result is never nil.
func (a *App) parse(s *session) (*inventory.Result, error) {
	path := s.cfg.Inventory.Path.String()

	start := a.now()
	res, err := inventory.ParseFile(path, s.cfg.Inventory.ParseOptions())
	took := a.now().Sub(start)

	s.logger.Debug("parsed inventory",
		"path", path,
		"hosts", len(res.Tree.Hosts()),
		"groups", len(res.Tree.Groups()),
		"diagnostics", len(res.Diagnostics),
		"took", took)

	if s.metrics != nil {
		s.metrics.Record(res, took, start)
		if werr := s.metrics.WriteTextfile(s.cfg.Metrics.Textfile); werr != nil {
			s.logger.Warn("metrics textfile not written", "path", s.cfg.Metrics.Textfile, "err", werr)
		}
	}

	if err != nil {
		return res, issue.NewErrorContext().
			WithOperation("read inventory").
			WithResource(path).
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion(fmt.Sprintf("Pass another file with --inventory or set %s", config.EnvInventoryFile)).
			WithExplain(inventory.CodeSourceUnavailable).
			Wrap(err).
			BuildError()
	}

	s.logDiagnostics(res.Diagnostics)
	return res, nil
}

// logDiagnostics reports each diagnostic at the logger level matching its severity.
func (s *session) logDiagnostics(ds inventory.Diagnostics) {
	for _, d := range ds {
		kv := []any{"line", d.Line, "code", d.Code}
		switch d.Severity {
		case inventory.SeverityError:
			s.logger.Error(d.Message, kv...)
		case inventory.SeverityWarning:
			s.logger.Warn(d.Message, kv...)
		default:
			s.logger.Info(d.Message, kv...)
		}
	}
}

func formatNames() string {
	names := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
