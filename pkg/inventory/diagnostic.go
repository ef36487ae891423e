// SPDX-License-Identifier: MPL-2.0

package inventory

import "fmt"

const (
	// SeverityInfo marks input that was ignored on purpose.
	SeverityInfo Severity = iota
	// SeverityWarning marks input that was skipped or reinterpreted.
	SeverityWarning
	// SeverityError marks input that could not be parsed at all.
	SeverityError
)

// Diagnostic codes.
const (
	CodeSourceUnavailable = "source_unavailable"
	CodeMalformedHeader   = "malformed_header"
	CodeUnknownSubsection = "unknown_subsection"
	CodeLineDiscarded     = "line_discarded"
	CodeInvalidHostRange  = "invalid_host_range"
	CodeVarsEmptyKey      = "vars_empty_key"
	CodeVarsExtraTokens   = "vars_extra_tokens"
	CodeChildExtraTokens  = "children_extra_tokens"
	CodeChildCycle        = "child_cycle"
	CodeChildAll          = "child_all"
	CodeReservedGroup     = "reserved_group"
)

type (
	// Severity orders diagnostics from informational to error.
	Severity int

	// Diagnostic describes a non-fatal problem found while parsing. It is
	// returned to callers rather than written anywhere so the CLI layer
	// decides how to render it.
	Diagnostic struct {
		Severity Severity
		// Code is a machine-readable identifier such as "malformed_header".
		Code string
		// Message is the human-readable description.
		Message string
		// Line is the 1-based input line number (0 when not tied to a line).
		Line int
		// Text is the offending input line.
		Text string
	}

	// Diagnostics is an ordered list of diagnostics.
	Diagnostics []Diagnostic
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// String formats the diagnostic as "line N: [code] message".
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: [%s] %s", d.Line, d.Code, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Code, d.Message)
}

// HasErrors reports whether any diagnostic has error severity.
func (ds Diagnostics) HasErrors() bool {
	return ds.Count(SeverityError) > 0
}

// Count returns the number of diagnostics with exactly the given severity.
func (ds Diagnostics) Count(s Severity) int {
	n := 0
	for _, d := range ds {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// Filter returns the diagnostics at or above min.
func (ds Diagnostics) Filter(minSeverity Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity >= minSeverity {
			out = append(out, d)
		}
	}
	return out
}
