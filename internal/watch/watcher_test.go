// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger { return log.New(&bytes.Buffer{}) }

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// startWatcher runs w until the test ends and returns a channel of callbacks.
func startWatcher(t *testing.T, cfg Config) <-chan []string {
	t.Helper()

	calls := make(chan []string, 16)
	cfg.Logger = quietLogger()
	cfg.Stdout = &bytes.Buffer{}
	cfg.OnChange = func(_ context.Context, changed []string) error {
		calls <- changed
		return nil
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Run() error: %v", err)
		}
	})
	return calls
}

func TestWatcherDebouncesInventoryWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inv := filepath.Join(dir, "hosts.ini")
	writeFile(t, inv, "web1\n")

	calls := startWatcher(t, Config{Targets: []string{inv}, Debounce: 100 * time.Millisecond})

	for _, content := range []string{"web1\nweb2\n", "web1\nweb2\nweb3\n", "[web]\nweb1\n"} {
		writeFile(t, inv, content)
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case changed := <-calls:
		if !slices.Equal(changed, []string{inv}) {
			t.Errorf("changed = %v, want [%s]", changed, inv)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	select {
	case extra := <-calls:
		t.Errorf("expected a single debounced callback, got another: %v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inv := filepath.Join(dir, "hosts.ini")
	writeFile(t, inv, "web1\n")

	calls := startWatcher(t, Config{Targets: []string{inv}, Debounce: 50 * time.Millisecond})

	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")
	writeFile(t, filepath.Join(dir, "hosts.ini.swp"), "swap")

	select {
	case changed := <-calls:
		t.Errorf("unrelated files triggered a callback: %v", changed)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherGlobTargets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "prod")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	calls := startWatcher(t, Config{
		Targets:  []string{filepath.Join(dir, "**", "*.ini")},
		Ignore:   []string{"**/skip.ini"},
		Debounce: 50 * time.Millisecond,
	})

	writeFile(t, filepath.Join(dir, "skip.ini"), "ignored")
	want := filepath.Join(sub, "db.ini")
	writeFile(t, want, "[db]\ndb1\n")

	select {
	case changed := <-calls:
		if !slices.Contains(changed, want) {
			t.Errorf("changed = %v, want it to contain %s", changed, want)
		}
		if slices.Contains(changed, filepath.Join(dir, "skip.ini")) {
			t.Errorf("ignored file reported: %v", changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func TestWatcherCallbackErrorKeepsRunning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inv := filepath.Join(dir, "hosts.ini")
	writeFile(t, inv, "")

	var (
		mu    sync.Mutex
		calls int
	)
	fired := make(chan struct{}, 4)
	logs := &bytes.Buffer{}
	w, err := New(Config{
		Targets:  []string{inv},
		Debounce: 30 * time.Millisecond,
		Logger:   log.New(logs),
		OnChange: func(context.Context, []string) error {
			mu.Lock()
			calls++
			mu.Unlock()
			fired <- struct{}{}
			return errors.New("parse failed")
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	for range 2 {
		writeFile(t, inv, time.Now().String())
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for callback")
		}
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestWatcherRunTwice(t *testing.T) {
	t.Parallel()

	w, err := New(Config{Targets: []string{filepath.Join(t.TempDir(), "hosts.ini")}, Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("first Run() = %v", err)
	}
	if err := w.Run(ctx); err == nil {
		t.Error("second Run() should fail")
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}); !errors.Is(err, ErrNoTargets) {
		t.Errorf("New(no targets) = %v, want ErrNoTargets", err)
	}
	if _, err := New(Config{Targets: []string{" "}}); err == nil {
		t.Error("New(blank target) should fail")
	}
	if _, err := New(Config{Targets: []string{"hosts.ini"}, Ignore: []string{"[unclosed"}}); err == nil {
		t.Error("New(bad ignore pattern) should fail")
	}
	if _, err := New(Config{Targets: []string{filepath.Join(t.TempDir(), "missing", "hosts.ini")}}); err == nil {
		t.Error("New() with a missing directory should fail")
	}
}

func TestResolveTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		target        string
		wantDir       string
		wantRecursive bool
	}{
		{filepath.Join(dir, "hosts.ini"), dir, false},
		{filepath.Join(dir, "*.ini"), dir, false},
		{filepath.Join(dir, "**", "*.ini"), dir, true},
	}
	for _, tt := range tests {
		_, gotDir, gotRecursive, err := resolveTarget(tt.target)
		if err != nil {
			t.Errorf("resolveTarget(%q) error: %v", tt.target, err)
			continue
		}
		if filepath.Clean(gotDir) != filepath.Clean(tt.wantDir) || gotRecursive != tt.wantRecursive {
			t.Errorf("resolveTarget(%q) = %q, %v; want %q, %v", tt.target, gotDir, gotRecursive, tt.wantDir, tt.wantRecursive)
		}
	}
}

func TestDefaultIgnores(t *testing.T) {
	t.Parallel()

	got := DefaultIgnores()
	got[0] = "mutated"
	if DefaultIgnores()[0] == "mutated" {
		t.Error("DefaultIgnores() must return a copy")
	}
	for _, path := range []string{"/inv/hosts.ini.swp", "/inv/hosts.ini~", "/inv/.#hosts.ini", "/inv/4913"} {
		if !matchAny(defaultIgnores, path) {
			t.Errorf("%s should be ignored by default", path)
		}
	}
	if matchAny(defaultIgnores, "/inv/hosts.ini") {
		t.Error("hosts.ini must not be ignored")
	}
}
