// SPDX-License-Identifier: MPL-2.0

package inventory

import "fmt"

const (
	// StateUngrouped is the initial state: data lines declare ungrouped hosts.
	StateUngrouped State = iota
	// StateGroupSection is entered on the first header line and never left.
	// The format has no way to return to the ungrouped preamble.
	StateGroupSection
)

const (
	// PolicyDiscard drops data lines under an unrecognized subsection.
	PolicyDiscard SubsectionPolicy = "discard"
	// PolicyHosts reads data lines under an unrecognized subsection as hosts.
	PolicyHosts SubsectionPolicy = "hosts"

	// DefaultMaxLineBytes is the longest line DefaultOptions accepts.
	DefaultMaxLineBytes = 1 << 20
)

const (
	modeHosts sectionMode = iota
	modeVars
	modeChildren
	modeDiscard
)

type (
	// State is the builder's position in the document.
	State int

	// SubsectionPolicy selects what happens to lines below `[group:other]`.
	SubsectionPolicy string

	// Options tunes a parse. The zero value applies the bare line contract:
	// no comment handling, unknown subsections discarded, 1 MiB lines.
	Options struct {
		// StripComments skips full-line '#' and ';' comments and removes
		// whitespace-preceded trailing comments.
		StripComments bool
		// UnknownSubsection defaults to PolicyDiscard when empty.
		UnknownSubsection SubsectionPolicy
		// MaxLineBytes bounds a single line; <= 0 means DefaultMaxLineBytes.
		MaxLineBytes int
	}

	sectionMode int

	// Builder folds input lines into an inventory tree. A Builder owns all
	// state of one parse and is not safe for concurrent use.
	Builder struct {
		opts  Options
		tree  *Tree
		diags Diagnostics
		state State
		group string
		mode  sectionMode
		line  int
	}
)

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		StripComments:     true,
		UnknownSubsection: PolicyDiscard,
		MaxLineBytes:      DefaultMaxLineBytes,
	}
}

// String returns the string representation of the SubsectionPolicy.
func (p SubsectionPolicy) String() string { return string(p) }

// IsValid returns whether the policy is recognized. The empty value is valid
// and means PolicyDiscard.
func (p SubsectionPolicy) IsValid() (bool, []error) {
	switch p {
	case "", PolicyDiscard, PolicyHosts:
		return true, nil
	default:
		return false, []error{&InvalidSubsectionPolicyError{Value: p}}
	}
}

// String returns a human-readable state name.
func (s State) String() string {
	if s == StateUngrouped {
		return "ungrouped"
	}
	return "group-section"
}

// NewBuilder creates a builder in StateUngrouped.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:  opts,
		tree:  NewTree(),
		state: StateUngrouped,
	}
}

// State returns the current state.
func (b *Builder) State() State { return b.state }

// Tree materializes a snapshot of everything fed so far.
func (b *Builder) Tree() *Tree { return b.tree.clone() }

// Diagnostics returns a copy of the diagnostics collected so far.
func (b *Builder) Diagnostics() Diagnostics {
	return append(Diagnostics(nil), b.diags...)
}

// Feed consumes one line, already stripped of its terminator.
func (b *Builder) Feed(line string) {
	b.line++
	if b.opts.StripComments {
		if isCommentLine(line) {
			return
		}
		line = stripTrailingComment(line)
	}

	l := ClassifyLine(line)
	switch l.Kind {
	case LineBlank:
	case LineGroupHeader:
		b.header(l.Raw)
	case LineData:
		b.data(l.Raw)
	}
}

func (b *Builder) header(raw string) {
	b.state = StateGroupSection

	h, err := DecodeHeader(raw)
	if err != nil {
		b.report(SeverityError, CodeMalformedHeader, raw, err.Error())
		b.group, b.mode = "", modeDiscard
		return
	}

	if h.Group == MetaKey {
		b.report(SeverityWarning, CodeReservedGroup, raw, fmt.Sprintf("group name %q is reserved; discarding its lines", MetaKey))
		b.group, b.mode = "", modeDiscard
		return
	}

	b.tree.ensureGroup(h.Group)
	b.group = h.Group

	switch h.Section {
	case SectionHosts:
		b.mode = modeHosts
	case SectionVars:
		b.mode = modeVars
	case SectionChildren:
		b.mode = modeChildren
	default:
		if b.opts.UnknownSubsection == PolicyHosts {
			b.mode = modeHosts
			b.report(SeverityWarning, CodeUnknownSubsection, raw,
				fmt.Sprintf("unrecognized subsection %q of group %q; reading lines as hosts", h.RawSection, h.Group))
			return
		}
		b.mode = modeDiscard
		b.report(SeverityWarning, CodeUnknownSubsection, raw,
			fmt.Sprintf("unrecognized subsection %q of group %q; discarding its lines", h.RawSection, h.Group))
	}
}

func (b *Builder) data(raw string) {
	if b.state == StateUngrouped {
		b.addHosts(UngroupedGroup, raw)
		return
	}

	switch b.mode {
	case modeHosts:
		b.addHosts(b.group, raw)
	case modeVars:
		b.addGroupVar(raw)
	case modeChildren:
		b.addChild(raw)
	case modeDiscard:
		b.report(SeverityInfo, CodeLineDiscarded, raw, "line is not attributable to any group section")
	}
}

func (b *Builder) addHosts(group, raw string) {
	entry := DecodeEntry(raw)
	hosts, err := ExpandHostPattern(entry.ID)
	if err != nil {
		b.report(SeverityWarning, CodeInvalidHostRange, raw, err.Error())
		return
	}
	for _, host := range hosts {
		b.tree.addHost(group, host, entry.Vars)
	}
}

func (b *Builder) addGroupVar(raw string) {
	key, value, extra := decodeVarLine(raw)
	if key == "" {
		b.report(SeverityWarning, CodeVarsEmptyKey, raw, fmt.Sprintf("variable without a key in group %q", b.group))
		return
	}
	if extra > 0 {
		b.report(SeverityInfo, CodeVarsExtraTokens, raw, fmt.Sprintf("ignoring %d token(s) after variable %q", extra, key))
	}
	b.tree.ensureGroup(b.group).vars.Set(key, value)
}

func (b *Builder) addChild(raw string) {
	entry := DecodeEntry(raw)
	child := entry.ID
	if entry.Extra > 0 {
		b.report(SeverityInfo, CodeChildExtraTokens, raw, fmt.Sprintf("ignoring %d token(s) after child group %q", entry.Extra, child))
	}

	switch {
	case child == AllGroup:
		b.report(SeverityWarning, CodeChildAll, raw, fmt.Sprintf("group %q cannot have %q as a child", b.group, AllGroup))
		return
	case child == MetaKey:
		b.report(SeverityWarning, CodeReservedGroup, raw, fmt.Sprintf("group name %q is reserved", MetaKey))
		return
	case b.tree.reaches(child, b.group):
		b.report(SeverityWarning, CodeChildCycle, raw, fmt.Sprintf("adding %q under %q would create a cycle", child, b.group))
		return
	}

	b.tree.ensureGroup(child)
	b.tree.ensureGroup(b.group).addChild(child)
}

func (b *Builder) report(sev Severity, code, text, msg string) {
	b.diags = append(b.diags, Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Line:     b.line,
		Text:     text,
	})
}
