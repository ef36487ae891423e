// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"

	"github.com/invowk/inventory/pkg/inventory"
)

func TestCatalogCoversDiagnosticCodes(t *testing.T) {
	t.Parallel()

	codes := []string{
		inventory.CodeSourceUnavailable,
		inventory.CodeMalformedHeader,
		inventory.CodeUnknownSubsection,
		inventory.CodeLineDiscarded,
		inventory.CodeInvalidHostRange,
		inventory.CodeVarsEmptyKey,
		inventory.CodeVarsExtraTokens,
		inventory.CodeChildExtraTokens,
		inventory.CodeChildCycle,
		inventory.CodeChildAll,
		inventory.CodeReservedGroup,
	}
	for _, code := range codes {
		i := Get(Code(code))
		if i == nil {
			t.Errorf("Get(%q) = nil, every diagnostic code needs an explanation", code)
			continue
		}
		if i.Code() != Code(code) {
			t.Errorf("Get(%q).Code() = %q", code, i.Code())
		}
		if i.Summary() == "" || !strings.HasPrefix(strings.TrimSpace(string(i.MarkdownMsg())), "# ") {
			t.Errorf("issue %q needs a summary and a markdown title", code)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	t.Parallel()

	if Get("nope") != nil {
		t.Error("Get(nope) should be nil")
	}
}

func TestValuesSorted(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Code() >= values[i].Code() {
			t.Errorf("Values() not sorted: %q before %q", values[i-1].Code(), values[i].Code())
		}
	}
}

func TestIssueRender(t *testing.T) {
	t.Parallel()

	out, err := Get(inventory.CodeMalformedHeader).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Malformed group header") {
		t.Errorf("Render() output missing title:\n%s", out)
	}
	if strings.Contains(out, "~~~") {
		t.Errorf("Render() left fence markers in output:\n%s", out)
	}
}
