// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// formatCUEError reports every CUE error under its field path:
//
//	config.cue: output.format: 3 errors in empty disjunction
func formatCUEError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var lines []string
	for _, e := range cueerrors.Errors(err) {
		lines = append(lines, cueErrorLine(e))
	}

	switch len(lines) {
	case 0:
		return fmt.Errorf("%s: %w", filePath, err)
	case 1:
		return fmt.Errorf("%s: %s", filePath, lines[0])
	default:
		return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
	}
}

// cueErrorLine renders "path: message", dropping a path CUE already put in
// the message.
func cueErrorLine(e cueerrors.Error) string {
	path := strings.Join(cueerrors.Path(e), ".")
	msg := e.Error()
	if path == "" {
		return msg
	}
	if rest, ok := strings.CutPrefix(msg, path); ok {
		msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	}
	return path + ": " + msg
}
