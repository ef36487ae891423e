// SPDX-License-Identifier: MPL-2.0

package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/invowk/inventory/pkg/inventory"
)

// ErrUnknownGroup is the sentinel wrapped by UnknownGroupError.
var ErrUnknownGroup = errors.New("unknown group")

type (
	// GraphOptions configures Graph.
	GraphOptions struct {
		// Group is the root of the graph; empty means "all".
		Group string
		// Vars lists group and host variables under their owner.
		Vars bool
		// GroupStyle, HostStyle and VarStyle style the node labels.
		GroupStyle lipgloss.Style
		HostStyle  lipgloss.Style
		VarStyle   lipgloss.Style
	}

	// UnknownGroupError is returned by Graph for a group that does not exist.
	UnknownGroupError struct {
		Group string
	}
)

// Error implements the error interface.
func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("group %q is not defined in the inventory", e.Group)
}

// Unwrap returns ErrUnknownGroup for errors.Is.
func (e *UnknownGroupError) Unwrap() error { return ErrUnknownGroup }

// Graph draws the group hierarchy rooted at opts.Group: groups are written as
// "@name:", hosts as their names. Each group is expanded the first time it
// is reached; later occurrences are a bare "@name:" leaf.
func Graph(w io.Writer, t *inventory.Tree, opts GraphOptions) error {
	root := opts.Group
	if root == "" {
		root = inventory.AllGroup
	}
	if _, ok := t.Group(root); !ok {
		return &UnknownGroupError{Group: root}
	}

	node := graphGroup(t, root, opts, map[string]bool{})
	_, err := fmt.Fprintln(w, node.String())
	return err
}

func graphGroup(t *inventory.Tree, name string, opts GraphOptions, drawn map[string]bool) *tree.Tree {
	node := tree.Root(opts.GroupStyle.Render("@" + name + ":"))
	if drawn[name] {
		return node
	}
	drawn[name] = true

	g, _ := t.Group(name)
	for _, child := range g.Children {
		if name == inventory.AllGroup && child == inventory.UngroupedGroup {
			if ung, _ := t.Group(child); len(ung.Hosts) == 0 && len(ung.Children) == 0 {
				continue
			}
		}
		node.Child(graphGroup(t, child, opts, drawn))
	}
	for _, host := range g.Hosts {
		node.Child(graphHost(t, host, opts))
	}
	if opts.Vars {
		for _, line := range varLines(g.Vars) {
			node.Child(opts.VarStyle.Render(line))
		}
	}
	return node
}

func graphHost(t *inventory.Tree, host string, opts GraphOptions) any {
	label := opts.HostStyle.Render(host)
	if !opts.Vars {
		return label
	}
	vars, ok := t.HostVars(host)
	if !ok {
		return label
	}
	node := tree.Root(label)
	for _, line := range varLines(vars) {
		node.Child(opts.VarStyle.Render(line))
	}
	return node
}

func varLines(v inventory.Vars) []string {
	lines := make([]string, 0, v.Len())
	for _, key := range v.Keys() {
		value, _ := v.Get(key)
		lines = append(lines, fmt.Sprintf("{%s = %s}", key, value))
	}
	return lines
}
