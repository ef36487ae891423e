// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable is returned when the inventory source cannot be
	// opened or read. The accompanying Result still carries an empty tree.
	ErrSourceUnavailable = errors.New("inventory source unavailable")
	// ErrMalformedHeader is the sentinel error wrapped by MalformedHeaderError.
	ErrMalformedHeader = errors.New("malformed group header")
	// ErrInvalidHostRange is the sentinel error wrapped by InvalidHostRangeError.
	ErrInvalidHostRange = errors.New("invalid host range")
	// ErrInvalidSubsectionPolicy is returned when a SubsectionPolicy value is not recognized.
	ErrInvalidSubsectionPolicy = errors.New("invalid unknown-subsection policy")
)

type (
	// SourceUnavailableError reports an open or read failure.
	// It wraps ErrSourceUnavailable for errors.Is() compatibility.
	SourceUnavailableError struct {
		Path string
		Err  error
	}

	// MalformedHeaderError is returned by DecodeHeader.
	MalformedHeaderError struct {
		Raw    string
		Reason string
	}

	// InvalidHostRangeError is returned by ExpandHostPattern.
	InvalidHostRangeError struct {
		Pattern string
		Reason  string
	}

	// InvalidSubsectionPolicyError is returned when a SubsectionPolicy value is not recognized.
	InvalidSubsectionPolicyError struct {
		Value SubsectionPolicy
	}
)

// Error implements the error interface.
func (e *SourceUnavailableError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read inventory: %v", e.Err)
	}
	return fmt.Sprintf("read inventory %s: %v", e.Path, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause, so errors.Is
// matches ErrSourceUnavailable as well as e.g. fs.ErrNotExist.
func (e *SourceUnavailableError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}

// Error implements the error interface.
func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed group header %q: %s", e.Raw, e.Reason)
}

// Unwrap returns ErrMalformedHeader for errors.Is() compatibility.
func (e *MalformedHeaderError) Unwrap() error { return ErrMalformedHeader }

// Error implements the error interface.
func (e *InvalidHostRangeError) Error() string {
	return fmt.Sprintf("invalid host range in %q: %s", e.Pattern, e.Reason)
}

// Unwrap returns ErrInvalidHostRange for errors.Is() compatibility.
func (e *InvalidHostRangeError) Unwrap() error { return ErrInvalidHostRange }

// Error implements the error interface.
func (e *InvalidSubsectionPolicyError) Error() string {
	return fmt.Sprintf("invalid unknown-subsection policy %q (valid: discard, hosts)", e.Value)
}

// Unwrap returns ErrInvalidSubsectionPolicy for errors.Is() compatibility.
func (e *InvalidSubsectionPolicyError) Unwrap() error { return ErrInvalidSubsectionPolicy }
