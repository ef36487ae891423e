// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing failure: what was attempted, on what,
	// why it failed and what to try next.
	//
	//	return issue.NewErrorContext().
	//		WithOperation("read inventory").
	//		WithResource(path).
	//		WithSuggestion("Pass another file with --inventory").
	//		Wrap(err).
	//		BuildError()
	ActionableError struct {
		Operation   string
		Resource    string
		Suggestions []string
		// Explain names the issue code to point at with 'inventory explain'.
		Explain Code
		Cause   error
	}

	// ErrorContext accumulates the parts of an ActionableError.
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext starts an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithOperation attaches op to err. A nil err stays nil.
func WrapWithOperation(err error, op string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: op, Cause: err}
}

// Error renders "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error { return e.Cause }

// HasSuggestions reports whether any suggestion was recorded.
func (e *ActionableError) HasSuggestions() bool { return len(e.Suggestions) > 0 }

// Format renders Error followed by a bullet per suggestion. Verbose output
// appends the numbered chain of wrapped causes.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	hints := e.hints()
	if len(hints) > 0 {
		b.WriteString("\n")
	}
	for _, h := range hints {
		b.WriteString("\n  • ")
		b.WriteString(h)
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for i, cause := 1, e.Cause; cause != nil; i, cause = i+1, errors.Unwrap(cause) {
			fmt.Fprintf(&b, "\n  %d. %s", i, cause)
		}
	}
	return b.String()
}

func (e *ActionableError) hints() []string {
	if e.Explain == "" {
		return e.Suggestions
	}
	return append(append([]string(nil), e.Suggestions...), fmt.Sprintf("Run 'inventory explain %s' for details", e.Explain))
}

// WithOperation sets the verb phrase of the failed step, e.g. "read inventory".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource names the file or entity involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends one fix hint.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sug)
	return c
}

// WithExplain links the error to a catalog entry.
func (c *ErrorContext) WithExplain(code Code) *ErrorContext {
	c.err.Explain = code
	return c
}

// Wrap records the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns the error, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	ae.Suggestions = append([]string(nil), c.err.Suggestions...)
	return &ae
}

// BuildError is Build typed as error, keeping a nil result untyped.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
