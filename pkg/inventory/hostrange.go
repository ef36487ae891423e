// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxRangeExpansion caps the number of identifiers a single pattern may
// expand to.
const MaxRangeExpansion = 65536

// maxRangeBoundDigits keeps numeric bounds and their arithmetic within int.
const maxRangeBoundDigits = 15

// ExpandHostPattern expands bracketed ranges in a host identifier:
//
//	www[01:03].example.com   -> www01, www02, www03 (.example.com)
//	www[1:6:2]               -> www1, www3, www5
//	db-[a:c]                 -> db-a, db-b, db-c
//
// Several ranges expand as a cartesian product, leftmost range outermost.
// Identifiers without a range are returned as a single element.
func ExpandHostPattern(pattern string) ([]string, error) {
	lo, hi, ok := findRange(pattern)
	if !ok {
		return []string{pattern}, nil
	}

	items, err := expandRange(pattern, pattern[lo+1:hi])
	if err != nil {
		return nil, err
	}

	head, tail := pattern[:lo], pattern[hi+1:]
	rest, err := ExpandHostPattern(tail)
	if err != nil {
		return nil, err
	}
	if len(items)*len(rest) > MaxRangeExpansion {
		return nil, &InvalidHostRangeError{
			Pattern: pattern,
			Reason:  fmt.Sprintf("expands to more than %d hosts", MaxRangeExpansion),
		}
	}

	out := make([]string, 0, len(items)*len(rest))
	for _, item := range items {
		for _, suffix := range rest {
			out = append(out, head+item+suffix)
		}
	}
	return out, nil
}

// findRange locates the first "[...:...]" span.
func findRange(pattern string) (lo, hi int, ok bool) {
	lo = strings.IndexByte(pattern, '[')
	if lo < 0 {
		return 0, 0, false
	}
	rel := strings.IndexByte(pattern[lo:], ']')
	if rel < 0 {
		return 0, 0, false
	}
	hi = lo + rel
	if !strings.Contains(pattern[lo:hi], ":") {
		return 0, 0, false
	}
	return lo, hi, true
}

func expandRange(pattern, spec string) ([]string, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, &InvalidHostRangeError{Pattern: pattern, Reason: "expected [start:end] or [start:end:step]"}
	}

	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return nil, &InvalidHostRangeError{Pattern: pattern, Reason: "range bounds must not be empty"}
	}

	step := 1
	if len(parts) == 3 {
		n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || n <= 0 {
			return nil, &InvalidHostRangeError{Pattern: pattern, Reason: fmt.Sprintf("step %q must be a positive integer", parts[2])}
		}
		step = n
	}

	if isDigits(start) && isDigits(end) {
		return expandNumeric(pattern, start, end, step)
	}
	if isLetter(start) && isLetter(end) {
		return expandAlpha(pattern, start[0], end[0], step)
	}
	return nil, &InvalidHostRangeError{Pattern: pattern, Reason: "bounds must both be numbers or both be single letters"}
}

func expandNumeric(pattern, start, end string, step int) ([]string, error) {
	width := 0
	if len(start) > 1 && start[0] == '0' {
		width = len(start)
		if len(end) != width {
			return nil, &InvalidHostRangeError{Pattern: pattern, Reason: "zero-padded bounds must have the same width"}
		}
	}

	if len(end) > maxRangeBoundDigits {
		return nil, &InvalidHostRangeError{Pattern: pattern, Reason: fmt.Sprintf("bounds longer than %d digits", maxRangeBoundDigits)}
	}

	from, err := strconv.Atoi(start)
	if err != nil {
		return nil, &InvalidHostRangeError{Pattern: pattern, Reason: err.Error()}
	}
	to, err := strconv.Atoi(end)
	if err != nil {
		return nil, &InvalidHostRangeError{Pattern: pattern, Reason: err.Error()}
	}
	if to < from {
		return nil, &InvalidHostRangeError{Pattern: pattern, Reason: "range end is before range start"}
	}
	count := (to-from)/step + 1
	if count > MaxRangeExpansion {
		return nil, &InvalidHostRangeError{
			Pattern: pattern,
			Reason:  fmt.Sprintf("expands to more than %d hosts", MaxRangeExpansion),
		}
	}

	out := make([]string, count)
	for i := range count {
		out[i] = fmt.Sprintf("%0*d", width, from+i*step)
	}
	return out, nil
}

func expandAlpha(pattern string, from, to byte, step int) ([]string, error) {
	if isLower(from) != isLower(to) {
		return nil, &InvalidHostRangeError{Pattern: pattern, Reason: "letter bounds must have the same case"}
	}
	if to < from {
		return nil, &InvalidHostRangeError{Pattern: pattern, Reason: "range end is before range start"}
	}

	count := int(to-from)/step + 1
	out := make([]string, count)
	for i := range count {
		out[i] = string(rune(int(from) + i*step))
	}
	return out, nil
}

func isDigits(s string) bool {
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isLetter(s string) bool {
	return len(s) == 1 && (isLower(s[0]) || (s[0] >= 'A' && s[0] <= 'Z'))
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
