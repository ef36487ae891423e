// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invowk/inventory/internal/render"
	"github.com/invowk/inventory/pkg/inventory"
)

const (
	// LogLevelDebug logs every diagnostic and internal step.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational diagnostics and above.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"

	// MinMaxLineBytes is the smallest accepted inventory.max_line_bytes.
	MinMaxLineBytes = 64
	// MaxIndent is the largest accepted output.indent.
	MaxIndent = 8
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidDebounce is returned when a DebounceDuration is not a positive duration.
	ErrInvalidDebounce = errors.New("invalid watch debounce")
	// ErrInvalidInventoryPath is returned when an InventoryPath is empty or whitespace-only.
	ErrInvalidInventoryPath = errors.New("invalid inventory path")
	// ErrInvalidInventoryConfig is the sentinel error wrapped by InvalidInventoryConfigError.
	ErrInvalidInventoryConfig = errors.New("invalid inventory config")
	// ErrInvalidOutputConfig is the sentinel error wrapped by InvalidOutputConfigError.
	ErrInvalidOutputConfig = errors.New("invalid output config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// DebounceDuration is a Go duration string such as "300ms".
	DebounceDuration string

	// InvalidDebounceError is returned when a DebounceDuration cannot be parsed
	// or is not positive.
	InvalidDebounceError struct {
		Value DebounceDuration
	}

	// InventoryPath is the path of the inventory file.
	InventoryPath string

	// InvalidInventoryPathError is returned when an InventoryPath is blank.
	InvalidInventoryPathError struct {
		Value InventoryPath
	}

	// InvalidInventoryConfigError collects field errors of an InventoryConfig.
	InvalidInventoryConfigError struct {
		FieldErrors []error
	}

	// InvalidOutputConfigError collects field errors of an OutputConfig.
	InvalidOutputConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// errors.Is matches ErrInvalidConfig and every collected field error.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Inventory InventoryConfig `json:"inventory" mapstructure:"inventory"`
		Output    OutputConfig    `json:"output" mapstructure:"output"`
		Log       LogConfig       `json:"log" mapstructure:"log"`
		Metrics   MetricsConfig   `json:"metrics" mapstructure:"metrics"`
		Watch     WatchConfig     `json:"watch" mapstructure:"watch"`
	}

	// InventoryConfig controls how the inventory source is read.
	InventoryConfig struct {
		// Path is read when --inventory is not given.
		Path InventoryPath `json:"path" mapstructure:"path"`
		// StripComments skips '#' and ';' comments.
		StripComments bool `json:"strip_comments" mapstructure:"strip_comments"`
		// UnknownSubsection selects the handling of [group:other] sections.
		UnknownSubsection inventory.SubsectionPolicy `json:"unknown_subsection" mapstructure:"unknown_subsection"`
		// MaxLineBytes bounds a single input line.
		MaxLineBytes int `json:"max_line_bytes" mapstructure:"max_line_bytes"`
	}

	// OutputConfig controls document rendering.
	OutputConfig struct {
		Format render.Format `json:"format" mapstructure:"format"`
		Indent int           `json:"indent" mapstructure:"indent"`
	}

	// LogConfig controls the stderr logger.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// MetricsConfig controls the Prometheus textfile.
	MetricsConfig struct {
		// Textfile is written after each parse when non-empty.
		Textfile string `json:"textfile" mapstructure:"textfile"`
	}

	// WatchConfig controls `validate --watch`.
	WatchConfig struct {
		Debounce    DebounceDuration `json:"debounce" mapstructure:"debounce"`
		ClearScreen bool             `json:"clear_screen" mapstructure:"clear_screen"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Inventory: InventoryConfig{
			Path:              inventory.DefaultFileName,
			StripComments:     true,
			UnknownSubsection: inventory.PolicyDiscard,
			MaxLineBytes:      inventory.DefaultMaxLineBytes,
		},
		Output: OutputConfig{
			Format: render.FormatJSON,
			Indent: 2,
		},
		Log: LogConfig{
			Level: LogLevelWarn,
		},
		Watch: WatchConfig{
			Debounce: "300ms",
		},
	}
}

// ParseOptions converts the inventory section into parser options.
func (c InventoryConfig) ParseOptions() inventory.Options {
	return inventory.Options{
		StripComments:     c.StripComments,
		UnknownSubsection: c.UnknownSubsection,
		MaxLineBytes:      c.MaxLineBytes,
	}
}

// RenderOptions converts the output section into renderer options.
func (c OutputConfig) RenderOptions() render.Options {
	return render.Options{Format: c.Format, Indent: c.Indent}
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Inventory.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Watch.Debounce.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid returns whether the InventoryConfig has valid fields.
func (c InventoryConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Path.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UnknownSubsection.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.MaxLineBytes < MinMaxLineBytes {
		errs = append(errs, fmt.Errorf("max_line_bytes %d is below the minimum of %d", c.MaxLineBytes, MinMaxLineBytes))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidInventoryConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInventoryConfigError.
func (e *InvalidInventoryConfigError) Error() string {
	return fmt.Sprintf("invalid inventory config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidInventoryConfig followed by the field errors.
func (e *InvalidInventoryConfigError) Unwrap() []error {
	return append([]error{ErrInvalidInventoryConfig}, e.FieldErrors...)
}

// IsValid returns whether the OutputConfig has valid fields.
func (c OutputConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Indent < 0 || c.Indent > MaxIndent {
		errs = append(errs, fmt.Errorf("indent %d is outside 0..%d", c.Indent, MaxIndent))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidOutputConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputConfigError.
func (e *InvalidOutputConfigError) Error() string {
	return fmt.Sprintf("invalid output config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidOutputConfig followed by the field errors.
func (e *InvalidOutputConfigError) Unwrap() []error {
	return append([]error{ErrInvalidOutputConfig}, e.FieldErrors...)
}

// String returns the string representation of the InventoryPath.
func (p InventoryPath) String() string { return string(p) }

// IsValid returns whether the InventoryPath is non-blank.
func (p InventoryPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidInventoryPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInventoryPathError.
func (e *InvalidInventoryPathError) Error() string {
	return fmt.Sprintf("invalid inventory path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidInventoryPath for errors.Is() compatibility.
func (e *InvalidInventoryPathError) Unwrap() error { return ErrInvalidInventoryPath }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the DebounceDuration.
func (d DebounceDuration) String() string { return string(d) }

// Duration parses the value. Invalid values yield zero.
func (d DebounceDuration) Duration() time.Duration {
	v, err := time.ParseDuration(string(d))
	if err != nil {
		return 0
	}
	return v
}

// IsValid returns whether the value parses as a positive duration.
func (d DebounceDuration) IsValid() (bool, []error) {
	v, err := time.ParseDuration(string(d))
	if err != nil || v <= 0 {
		return false, []error{&InvalidDebounceError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDebounceError.
func (e *InvalidDebounceError) Error() string {
	return fmt.Sprintf("invalid watch debounce %q: must be a positive duration such as \"300ms\"", e.Value)
}

// Unwrap returns ErrInvalidDebounce for errors.Is() compatibility.
func (e *InvalidDebounceError) Unwrap() error { return ErrInvalidDebounce }
