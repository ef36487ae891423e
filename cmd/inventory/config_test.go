// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/inventory/internal/config"
	"github.com/invowk/inventory/internal/testutil"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, nil, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"(using defaults)", "path: hosts.ini", "format: json", "debounce: 300ms", "textfile: (disabled)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = runCLI(t, staticProvider{path: "/etc/inventory/config.cue"}, "config", "show", "-o", "yaml")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"/etc/inventory/config.cue", "format: yaml"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, nil, "config", "dump", "-i", "prod.ini")
	if err != nil {
		t.Fatalf("config dump error = %v", err)
	}
	if !strings.Contains(stdout, `"prod.ini"`) || !strings.Contains(stdout, "output: {") {
		t.Errorf("config dump output:\n%s", stdout)
	}
}

func TestConfigInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "config.cue")

	stdout, _, err := runCLI(t, nil, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(stdout, "Created default configuration") {
		t.Errorf("config init output: %q", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("config init wrote:\n%s", data)
	}

	if err := os.WriteFile(path, []byte("// mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stdout, _, err = runCLI(t, nil, "--config", path, "config", "init")
	if err != nil || !strings.Contains(stdout, "already exists") {
		t.Errorf("second config init = %q, %v", stdout, err)
	}

	if _, _, err := runCLI(t, nil, "--config", path, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force error = %v", err)
	}
	if data, _ := os.ReadFile(path); strings.HasPrefix(string(data), "// mine") {
		t.Error("--force did not overwrite the file")
	}
}

func TestConfigPath(t *testing.T) {
	// Not parallel: mutates the package-level config directory override.
	dir := t.TempDir()
	t.Cleanup(config.SetConfigDirOverride(dir))

	stdout, _, err := runCLI(t, nil, "config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	for _, want := range []string{
		"Config directory: " + dir,
		"Default config file: " + filepath.Join(dir, "config.cue"),
		"Active config file: (none, using defaults)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config path missing %q:\n%s", want, stdout)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			t.Parallel()
			stdout, _, err := runCLI(t, nil, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if !strings.Contains(stdout, "inventory") {
				t.Errorf("completion %s output does not mention the binary", shell)
			}
		})
	}

	if _, _, err := runCLI(t, nil, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestRoot_FileProviderEnvironment(t *testing.T) {
	// Not parallel: changes the working directory, environment and config
	// directory override.
	work := t.TempDir()
	testutil.WriteInventory(t, work, "cwd1\n")
	testutil.MustWriteFile(t, filepath.Join(work, "other.ini"), "env1 role=db\n")
	t.Cleanup(testutil.MustChdir(t, work))
	t.Cleanup(testutil.SetHomeDir(t, work))
	t.Cleanup(config.SetConfigDirOverride(filepath.Join(work, ".config", config.AppName)))
	for _, key := range []string{config.EnvInventoryFile, config.EnvFormat, config.EnvLogLevel} {
		t.Cleanup(testutil.MustUnsetenv(t, key))
	}

	stdout, _, err := runCLI(t, config.NewProvider(), "--list")
	if err != nil {
		t.Fatalf("--list error = %v", err)
	}
	if !strings.Contains(stdout, `"cwd1"`) {
		t.Errorf("--list without INVENTORY_FILE must read ./hosts.ini:\n%s", stdout)
	}

	t.Cleanup(testutil.MustSetenv(t, config.EnvInventoryFile, "other.ini"))
	t.Cleanup(testutil.MustSetenv(t, config.EnvFormat, "yaml"))
	stdout, _, err = runCLI(t, config.NewProvider(), "--host", "env1")
	if err != nil {
		t.Fatalf("--host error = %v", err)
	}
	if strings.TrimSpace(stdout) != "role: db" {
		t.Errorf("--host env1 with %s=yaml = %q, want %q", config.EnvFormat, stdout, "role: db")
	}
}
