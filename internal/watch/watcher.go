// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when inventory sources change.
//
// Targets are file paths or doublestar globs. Their parent directories are
// watched rather than the files themselves, so editors that save by writing
// a temporary file and renaming it over the original are still observed.
// Events within the debounce window are coalesced into one callback.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoTargets is returned by New when Config.Targets is empty.
var ErrNoTargets = errors.New("watch: no targets")

// defaultIgnores are editor artifacts written next to the watched files.
var defaultIgnores = []string{
	"**/*.swp",
	"**/*.swx",
	"**/*~",
	"**/.#*",
	"**/4913",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Targets are inventory files or doublestar patterns such as
		// "inventories/**/*.ini". Relative targets resolve against the
		// working directory.
		Targets []string

		// Ignore are additional doublestar patterns, matched against
		// slash-separated absolute paths, that never trigger callbacks.
		Ignore []string

		// Debounce is the quiet period after the last event before the
		// callback fires.
		Debounce time.Duration

		// ClearScreen writes an ANSI clear sequence to Stdout before each
		// callback.
		ClearScreen bool

		// OnChange receives the sorted, deduplicated absolute paths that
		// changed. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Stdout receives the clear-screen sequence; nil means os.Stdout.
		Stdout io.Writer
		// Logger receives watcher warnings; nil means log.Default().
		Logger *log.Logger
	}

	// Watcher monitors inventory targets. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		patterns []string
		ignores  []string
		dirs     []string
		stdout   io.Writer
		logger   *log.Logger
		debounce time.Duration
		started  atomic.Bool
	}
)

// New validates the targets and registers their directories with fsnotify.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Targets) == 0 {
		return nil, ErrNoTargets
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	patterns := make([]string, 0, len(cfg.Targets))
	dirs := make(map[string]bool)
	for _, target := range cfg.Targets {
		pattern, dir, recursive, err := resolveTarget(target)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
		if existing, ok := dirs[dir]; !ok || (recursive && !existing) {
			dirs[dir] = recursive
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: patterns,
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		stdout:   cfg.Stdout,
		logger:   cfg.Logger,
		debounce: cfg.Debounce,
	}
	if w.stdout == nil {
		w.stdout = os.Stdout
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	for _, dir := range slices.Sorted(maps.Keys(dirs)) {
		if err := w.addDir(dir, dirs[dir]); err != nil {
			fsw.Close() //nolint:errcheck // best-effort cleanup
			return nil, err
		}
	}

	return w, nil
}

// Dirs returns the directories registered with fsnotify.
func (w *Watcher) Dirs() []string { return slices.Clone(w.dirs) }

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire runs on the timer goroutine; a run still in progress defers the
	// pending set to the next tick instead of overlapping.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Warn("previous run still in progress, retrying")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.ClearScreen {
			fmt.Fprint(w.stdout, "\033[2J\033[H")
		}
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("callback failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Clean(evt.Name)
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(name)
			}
			if w.isIgnored(name) || !w.matches(name) {
				continue
			}

			mu.Lock()
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// resolveTarget returns the absolute slash-separated match pattern, the
// directory to watch, and whether the directory must be watched recursively.
func resolveTarget(target string) (pattern, dir string, recursive bool, err error) {
	if strings.TrimSpace(target) == "" {
		return "", "", false, errors.New("watch: empty target")
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", "", false, fmt.Errorf("watch: resolve %q: %w", target, err)
	}
	pattern = filepath.ToSlash(abs)
	if !doublestar.ValidatePattern(pattern) {
		return "", "", false, fmt.Errorf("watch: invalid target pattern %q: %w", target, doublestar.ErrBadPattern)
	}

	base, rest := doublestar.SplitPattern(pattern)
	if rest == "" || rest == filepath.Base(abs) && !hasMeta(rest) {
		// Plain file path: watch its directory.
		return pattern, filepath.Dir(abs), false, nil
	}
	return pattern, filepath.FromSlash(base), strings.Contains(rest, "/"), nil
}

func hasMeta(s string) bool { return strings.ContainsAny(s, "*?[{\\") }

// addDir registers dir, and its subdirectories when recursive.
func (w *Watcher) addDir(dir string, recursive bool) error {
	if !recursive {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", dir, err)
		}
		w.dirs = append(w.dirs, dir)
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "err", err)
			return nil //nolint:nilerr // skip unreadable subtrees
		}
		if !d.IsDir() {
			return nil
		}
		if w.isIgnored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		w.dirs = append(w.dirs, path)
		return nil
	})
}

// maybeAddDir extends recursive watches to directories created after New.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.isIgnored(path) {
		return
	}
	for _, dir := range w.dirs {
		if dir == path {
			return
		}
	}
	if !slices.ContainsFunc(w.patterns, func(p string) bool {
		base, rest := doublestar.SplitPattern(p)
		return strings.Contains(rest, "**") && strings.HasPrefix(filepath.ToSlash(path), base)
	}) {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("add new directory", "path", path, "err", err)
		return
	}
	w.dirs = append(w.dirs, path)
}

func (w *Watcher) matches(path string) bool {
	return matchAny(w.patterns, filepath.ToSlash(path))
}

func (w *Watcher) isIgnored(path string) bool {
	return matchAny(w.ignores, filepath.ToSlash(path))
}

func matchAny(patterns []string, path string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, path); err == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string { return slices.Clone(defaultIgnores) }

func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}
