// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteInventory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path := WriteInventory(t, dir, "web1\n")

	if filepath.Base(path) != InventoryFileName {
		t.Errorf("WriteInventory() path = %q, want base %q", path, InventoryFileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "web1\n" {
		t.Errorf("content = %q, want %q", data, "web1\n")
	}
}

func TestMustSetenv(t *testing.T) {
	const key = "INVENTORY_TESTUTIL_SETENV"

	restore := MustUnsetenv(t, key)
	defer restore()

	cleanup := MustSetenv(t, key, "value")
	if got := os.Getenv(key); got != "value" {
		t.Errorf("%s = %q, want %q", key, got, "value")
	}
	cleanup()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after cleanup", key)
	}
}

func TestMustChdir(t *testing.T) {
	dir := t.TempDir()
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	restore := MustChdir(t, dir)
	got, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	if got, _ = filepath.EvalSymlinks(got); got != want {
		t.Errorf("Getwd() = %q, want %q", got, want)
	}

	restore()
	if after, _ := os.Getwd(); after != before {
		t.Errorf("after restore Getwd() = %q, want %q", after, before)
	}
}
