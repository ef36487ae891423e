// SPDX-License-Identifier: MPL-2.0

package inventory

import "strings"

const (
	// SectionHosts is a plain `[name]` host list.
	SectionHosts Section = iota
	// SectionVars is a `[name:vars]` block of group variables.
	SectionVars
	// SectionChildren is a `[name:children]` list of child groups.
	SectionChildren
	// SectionUnknown is any other `[name:xxx]` subsection. It is accepted
	// syntactically; the builder reports it.
	SectionUnknown
)

type (
	// Section is the subsection kind named by a group header.
	Section int

	// Header is a decoded group header line.
	Header struct {
		// Group is the trimmed group name, case-sensitive.
		Group string
		// Section is the decoded subsection kind.
		Section Section
		// RawSection is the subsection text as written ("" for host lists).
		RawSection string
	}
)

// String returns the subsection keyword ("" for host lists).
func (s Section) String() string {
	switch s {
	case SectionHosts:
		return ""
	case SectionVars:
		return "vars"
	case SectionChildren:
		return "children"
	default:
		return "unknown"
	}
}

// DecodeHeader decodes `[name]` or `[name:subsection]`. Whitespace around
// the brackets and inside them is trimmed. Errors wrap ErrMalformedHeader.
func DecodeHeader(raw string) (Header, error) {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "[") {
		return Header{}, &MalformedHeaderError{Raw: raw, Reason: "missing opening bracket"}
	}

	end := strings.IndexByte(text, ']')
	if end < 0 {
		return Header{}, &MalformedHeaderError{Raw: raw, Reason: "missing closing bracket"}
	}
	if rest := strings.TrimSpace(text[end+1:]); rest != "" {
		return Header{}, &MalformedHeaderError{Raw: raw, Reason: "unexpected text after closing bracket"}
	}

	inner := text[1:end]
	name, sub, hasSub := strings.Cut(inner, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Header{}, &MalformedHeaderError{Raw: raw, Reason: "empty group name"}
	}

	header := Header{Group: name, Section: SectionHosts}
	if !hasSub {
		return header, nil
	}

	header.RawSection = strings.TrimSpace(sub)
	switch header.RawSection {
	case "vars":
		header.Section = SectionVars
	case "children":
		header.Section = SectionChildren
	default:
		header.Section = SectionUnknown
	}
	return header, nil
}
