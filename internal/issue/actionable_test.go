// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "read inventory"},
			expected: "failed to read inventory",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "read inventory", Resource: "hosts.ini"},
			expected: "failed to read inventory: hosts.ini",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "read inventory",
				Resource:  "hosts.ini",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to read inventory: hosts.ini: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("permission denied")
	err := NewErrorContext().
		WithOperation("read inventory").
		WithResource("hosts.ini").
		WithSuggestion("Check file permissions").
		WithSuggestion("Pass --inventory to read another file").
		Wrap(root).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "  • Check file permissions") || !strings.Contains(plain, "  • Pass --inventory") {
		t.Errorf("Format(false) missing suggestions:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Errorf("Format(false) must not include the error chain:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. permission denied") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}

	if !errors.Is(err, root) {
		t.Error("ActionableError must unwrap to its cause")
	}
	if !err.HasSuggestions() {
		t.Error("HasSuggestions() = false, want true")
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "x") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
	err := WrapWithOperation(errors.New("boom"), "render inventory")
	if err.Error() != "failed to render inventory: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestErrorContext_WithExplain(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Check the CUE syntax").
		WithExplain(ConfigInvalidCode).
		Build()

	got := err.Format(false)
	want := "failed to load configuration\n\n  • Check the CUE syntax\n  • Run 'inventory explain config_invalid' for details"
	if got != want {
		t.Errorf("Format(false) = %q, want %q", got, want)
	}
	if len(err.Suggestions) != 1 {
		t.Errorf("Suggestions = %v, explain hint must not be stored as a suggestion", err.Suggestions)
	}
}
