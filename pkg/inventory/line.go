// SPDX-License-Identifier: MPL-2.0

package inventory

import "strings"

const (
	// LineBlank is an empty or whitespace-only line.
	LineBlank LineKind = iota
	// LineGroupHeader is a line whose first non-space character is '['.
	LineGroupHeader
	// LineData is any other line: a host, a variable or a child group name.
	LineData
)

type (
	// LineKind tags a single logical input line.
	LineKind int

	// Line is a classified input line. Raw keeps the text exactly as read.
	Line struct {
		Kind LineKind
		Raw  string
	}
)

// String returns a human-readable name for the kind.
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineGroupHeader:
		return "group-header"
	case LineData:
		return "data"
	default:
		return "unknown"
	}
}

// ClassifyLine tags a line that has already been stripped of its terminator.
func ClassifyLine(line string) Line {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Line{Kind: LineBlank, Raw: line}
	case trimmed[0] == '[':
		return Line{Kind: LineGroupHeader, Raw: line}
	default:
		return Line{Kind: LineData, Raw: line}
	}
}

// isCommentLine reports whether the line is a full-line '#' or ';' comment.
func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";")
}

// stripTrailingComment removes a " #..." or " ;..." suffix. The marker must be
// preceded by whitespace so values such as "url=http://h/#frag" survive.
func stripTrailingComment(line string) string {
	for i := 1; i < len(line); i++ {
		if (line[i] == '#' || line[i] == ';') && (line[i-1] == ' ' || line[i-1] == '\t') {
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
