// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"testing"
)

func TestSetHomeDir(t *testing.T) {
	key := HomeEnvVar()
	before, wasSet := os.LookupEnv(key)

	dir := t.TempDir()
	restore := SetHomeDir(t, dir)
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error: %v", err)
	}
	if home != dir {
		t.Errorf("UserHomeDir() = %q, want %q", home, dir)
	}

	restore()
	after, isSet := os.LookupEnv(key)
	if isSet != wasSet || after != before {
		t.Errorf("%s after restore = %q (set=%v), want %q (set=%v)", key, after, isSet, before, wasSet)
	}
}

func TestSetHomeDir_Cleanup(t *testing.T) {
	key := HomeEnvVar()
	before := os.Getenv(key)
	dir := t.TempDir()

	t.Run("scoped", func(t *testing.T) {
		t.Cleanup(SetHomeDir(t, dir))
		if got := os.Getenv(key); got != dir {
			t.Errorf("%s = %q, want %q", key, got, dir)
		}
	})

	if got := os.Getenv(key); got != before {
		t.Errorf("%s after subtest = %q, want %q", key, got, before)
	}
}
