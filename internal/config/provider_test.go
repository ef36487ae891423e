// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"testing"
)

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       LoadOptions
		wantErrors int
	}{
		{"all empty", LoadOptions{}, 0},
		{"all valid", LoadOptions{ConfigFilePath: "/tmp/config.cue", ConfigDirPath: "/tmp/config"}, 0},
		{"blank file", LoadOptions{ConfigFilePath: "   "}, 1},
		{"blank dir", LoadOptions{ConfigDirPath: "\t"}, 1},
		{"both blank", LoadOptions{ConfigFilePath: " ", ConfigDirPath: "\t"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErrors == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidLoadOptions) {
				t.Fatalf("Validate() = %v, want ErrInvalidLoadOptions", err)
			}
			var loadErr *InvalidLoadOptionsError
			if !errors.As(err, &loadErr) || len(loadErr.FieldErrors) != tt.wantErrors {
				t.Errorf("field errors = %v, want %d", err, tt.wantErrors)
			}
		})
	}
}

func TestProvider(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewProvider()

	path, err := p.Path(LoadOptions{ConfigDirPath: dir})
	if err != nil || path != "" {
		t.Errorf("Path() without file = %q, %v; want \"\", nil", path, err)
	}

	want := writeConfig(t, dir, `log: level: "error"`)
	path, err = p.Path(LoadOptions{ConfigDirPath: dir})
	if err != nil || path != want {
		t.Errorf("Path() = %q, %v; want %q", path, err, want)
	}

	cfg, err := p.Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != LogLevelError {
		t.Errorf("log.level = %q, want error", cfg.Log.Level)
	}

	if _, err := p.Load(context.Background(), LoadOptions{ConfigFilePath: "  "}); !errors.Is(err, ErrInvalidLoadOptions) {
		t.Errorf("Load(blank) = %v, want ErrInvalidLoadOptions", err)
	}
}
