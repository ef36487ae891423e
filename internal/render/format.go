// SPDX-License-Identifier: MPL-2.0

package render

import (
	"errors"
	"fmt"
)

const (
	// FormatJSON is the dynamic-inventory JSON document.
	FormatJSON Format = "json"
	// FormatYAML renders the same document as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML renders the same document as TOML.
	FormatTOML Format = "toml"
)

// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Format selects the serialization of List and Host.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	// It wraps ErrInvalidFormat for errors.Is() compatibility.
	InvalidFormatError struct {
		Value Format
	}

	// Options configures List and Host.
	Options struct {
		// Format defaults to FormatJSON when empty.
		Format Format
		// Indent is the number of spaces per nesting level. Zero renders
		// compact JSON.
		Indent int
	}
)

// Formats returns every supported format.
func Formats() []Format { return []Format{FormatJSON, FormatYAML, FormatTOML} }

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid returns whether the Format is one of the supported formats.
// The empty value is valid and means FormatJSON.
func (f Format) IsValid() (bool, []error) {
	switch f {
	case "", FormatJSON, FormatYAML, FormatTOML:
		return true, nil
	default:
		return false, []error{&InvalidFormatError{Value: f}}
	}
}

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: json, yaml, toml)", e.Value)
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

func (o Options) format() (Format, error) {
	if ok, errs := o.Format.IsValid(); !ok {
		return "", errs[0]
	}
	if o.Format == "" {
		return FormatJSON, nil
	}
	return o.Format, nil
}
