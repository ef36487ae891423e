// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/invowk/inventory/pkg/inventory"
)

// ConfigInvalidCode explains configuration load and validation failures.
const ConfigInvalidCode Code = "config_invalid"

type (
	// Code identifies an explainable issue. Inventory diagnostic codes are
	// valid Codes.
	Code string

	// MarkdownMsg is the markdown body of an issue.
	MarkdownMsg string

	// Issue is a catalog entry explaining one diagnostic code.
	Issue struct {
		code    Code
		summary string
		mdMsg   MarkdownMsg
	}
)

var (
	render = glamour.Render

	issues = map[Code]*Issue{
		inventory.CodeSourceUnavailable: {
			code:    inventory.CodeSourceUnavailable,
			summary: "the inventory file could not be opened or read",
			mdMsg: `
# Inventory source unavailable

The inventory file could not be opened or read to the end. An empty inventory
was produced instead.

## Things you can try
- Check the path, or pass it explicitly:
~~~
$ inventory --inventory ./hosts.ini --list
~~~
- Set ` + "`INVENTORY_FILE`" + ` or ` + "`inventory.path`" + ` in the config file.
- Lines longer than ` + "`inventory.max_line_bytes`" + ` also abort the read.`,
		},
		inventory.CodeMalformedHeader: {
			code:    inventory.CodeMalformedHeader,
			summary: "a line starting with '[' is not a valid group header",
			mdMsg: `
# Malformed group header

A line starting with ` + "`[`" + ` is not a well-formed ` + "`[name]`" + ` or
` + "`[name:subsection]`" + ` header. The lines that follow it are discarded until
the next valid header, so they are never attributed to the previous group.

## Example
~~~ini
[webservers      # missing ']'
web1
~~~

## Fix
~~~ini
[webservers]
web1
~~~`,
		},
		inventory.CodeUnknownSubsection: {
			code:    inventory.CodeUnknownSubsection,
			summary: "a header uses a subsection other than vars or children",
			mdMsg: `
# Unknown subsection

Only ` + "`[name:vars]`" + ` and ` + "`[name:children]`" + ` are understood. The group
itself is still created. Its lines are discarded unless
` + "`inventory.unknown_subsection`" + ` is set to ` + "`hosts`" + `.`,
		},
		inventory.CodeLineDiscarded: {
			code:    inventory.CodeLineDiscarded,
			summary: "a data line was dropped because it belongs to no usable section",
			mdMsg: `
# Line discarded

The line follows a malformed header or an unknown subsection and was not added
to the inventory. Fix the header above it to keep the line.`,
		},
		inventory.CodeInvalidHostRange: {
			code:    inventory.CodeInvalidHostRange,
			summary: "a host range pattern could not be expanded",
			mdMsg: `
# Invalid host range

Host patterns expand ` + "`[start:end]`" + ` or ` + "`[start:end:step]`" + `.

- Numeric bounds: ` + "`www[01:50].example.com`" + `; zero-padded bounds must have the same width.
- Letter bounds: ` + "`db-[a:f]`" + `; both letters must share a case.
- The end may not be before the start and the step must be positive.

The whole line is skipped.`,
		},
		inventory.CodeVarsEmptyKey: {
			code:    inventory.CodeVarsEmptyKey,
			summary: "a vars line has no key before '='",
			mdMsg: `
# Variable without a key

Lines in a ` + "`[group:vars]`" + ` section take the form ` + "`key=value`" + `. A line
starting with ` + "`=`" + ` has no key and is ignored.`,
		},
		inventory.CodeVarsExtraTokens: {
			code:    inventory.CodeVarsExtraTokens,
			summary: "a vars line without '=' has more than one token",
			mdMsg: `
# Extra tokens on a variable line

A vars line without ` + "`=`" + ` sets its first token to an empty value. The
remaining tokens were ignored. Write ` + "`key=value with spaces`" + ` to keep them.`,
		},
		inventory.CodeChildExtraTokens: {
			code:    inventory.CodeChildExtraTokens,
			summary: "a children line has tokens after the group name",
			mdMsg: `
# Extra tokens on a children line

Each line in a ` + "`[group:children]`" + ` section names one child group. Tokens
after the name were ignored.`,
		},
		inventory.CodeChildCycle: {
			code:    inventory.CodeChildCycle,
			summary: "a children entry would make a group its own ancestor",
			mdMsg: `
# Child group cycle

Adding the child would make the group reachable from itself. The entry was
ignored so host resolution always terminates.`,
		},
		inventory.CodeChildAll: {
			code:    inventory.CodeChildAll,
			summary: "the implicit all group was listed as a child",
			mdMsg: `
# "all" as a child group

` + "`all`" + ` is the root of every inventory and cannot be the child of another
group. The entry was ignored.`,
		},
		inventory.CodeReservedGroup: {
			code:    inventory.CodeReservedGroup,
			summary: "a group used the reserved name _meta",
			mdMsg: `
# Reserved group name

` + "`_meta`" + ` is the output key that carries host variables, so no group can
use it. A ` + "`[_meta]`" + ` section is discarded along with its lines, and
` + "`_meta`" + ` listed under ` + "`:children`" + ` is ignored.

## Things you can try
- Rename the group, for example to ` + "`meta`" + `.`,
		},
		ConfigInvalidCode: {
			code:    ConfigInvalidCode,
			summary: "the configuration file failed to load or validate",
			mdMsg: `
# Invalid configuration

The configuration file is not valid CUE or does not match the schema.

## Things you can try
- Print the effective configuration and the file in use:
~~~
$ inventory config show
$ inventory config path
~~~
- Write a fresh file with every default:
~~~
$ inventory config init --force
~~~`,
		},
	}
)

// Code returns the issue code.
func (i *Issue) Code() Code { return i.code }

// Summary returns a one-line description.
func (i *Issue) Summary() string { return i.summary }

// MarkdownMsg returns the markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render renders the markdown with glamour using the given style
// ("dark", "light", "notty", "auto" or a JSON style path).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(strings.TrimSpace(string(i.mdMsg)), stylePath)
}

// Values returns every issue sorted by code.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.code, b.code) })
	return out
}

// Get returns the issue for code, or nil.
func Get(code Code) *Issue {
	return issues[code]
}
