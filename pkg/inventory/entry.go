// SPDX-License-Identifier: MPL-2.0

package inventory

import "strings"

// Entry is a decoded data line: an identifier followed by inline variables.
type Entry struct {
	// ID is the first whitespace-separated token (a host, variable key or
	// child group name depending on the section).
	ID string
	// Vars holds the remaining tokens. "key=value" tokens keep everything
	// after the first '='; a bare "key" maps to "".
	Vars Vars
	// Extra counts tokens after the identifier.
	Extra int
}

// DecodeEntry splits a data line into its identifier and ordered attributes.
// Duplicate keys on one line resolve last-write-wins. A line holding only an
// identifier yields an empty attribute set.
func DecodeEntry(raw string) Entry {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Entry{}
	}

	entry := Entry{ID: fields[0], Extra: len(fields) - 1}
	for _, token := range fields[1:] {
		key, value, _ := strings.Cut(token, "=")
		entry.Vars.Set(key, value)
	}
	return entry
}

// decodeVarLine decodes a line of a [group:vars] section. Text before the
// first '=' is the key and everything after it is the value, so values may
// contain whitespace. A line without '=' sets its first token to "".
func decodeVarLine(raw string) (key, value string, extra int) {
	if k, v, found := strings.Cut(raw, "="); found {
		return strings.TrimSpace(k), strings.TrimSpace(v), 0
	}
	entry := DecodeEntry(raw)
	return entry.ID, "", entry.Extra
}
