// SPDX-License-Identifier: MPL-2.0

package inventory

import "slices"

const (
	// AllGroup is the implicit root group. Its children list every other group.
	AllGroup = "all"
	// UngroupedGroup holds hosts declared before any section header.
	UngroupedGroup = "ungrouped"
	// MetaKey is the top-level output key carrying host variables. No group
	// may take this name.
	MetaKey = "_meta"
)

type (
	// Group is a read-only view of one inventory group. Slices and Vars are
	// copies; mutating them does not affect the Tree.
	Group struct {
		Name string
		// Hosts are the hosts assigned directly, in first-declaration order.
		Hosts []string
		// Children are child group names, in first-declaration order.
		Children []string
		// Vars are the group-scoped variables.
		Vars Vars
	}

	// Tree is the materialized inventory. A Tree returned by Builder.Tree or
	// Parse is a snapshot and is not modified afterwards.
	Tree struct {
		groups       map[string]*groupState
		hostOrder    []string
		hostSeen     map[string]struct{}
		hostVars     map[string]*Vars
		hostVarOrder []string
	}

	groupState struct {
		name     string
		hosts    []string
		hostSet  map[string]struct{}
		children []string
		childSet map[string]struct{}
		vars     Vars
	}
)

// NewTree returns the canonical empty inventory: no host variables, an "all"
// group whose only child is "ungrouped", and an empty "ungrouped" group.
func NewTree() *Tree {
	t := &Tree{
		groups:   make(map[string]*groupState),
		hostSeen: make(map[string]struct{}),
		hostVars: make(map[string]*Vars),
	}
	t.groups[AllGroup] = newGroupState(AllGroup)
	t.groups[UngroupedGroup] = newGroupState(UngroupedGroup)
	t.groups[AllGroup].addChild(UngroupedGroup)
	return t
}

func newGroupState(name string) *groupState {
	return &groupState{
		name:     name,
		hostSet:  make(map[string]struct{}),
		childSet: make(map[string]struct{}),
	}
}

func (g *groupState) addHost(host string) {
	if _, ok := g.hostSet[host]; ok {
		return
	}
	g.hostSet[host] = struct{}{}
	g.hosts = append(g.hosts, host)
}

func (g *groupState) addChild(child string) {
	if _, ok := g.childSet[child]; ok {
		return
	}
	g.childSet[child] = struct{}{}
	g.children = append(g.children, child)
}

func (g *groupState) view() Group {
	return Group{
		Name:     g.name,
		Hosts:    nonNil(slices.Clone(g.hosts)),
		Children: nonNil(slices.Clone(g.children)),
		Vars:     g.vars.Clone(),
	}
}

func (g *groupState) clone() *groupState {
	c := newGroupState(g.name)
	for _, h := range g.hosts {
		c.addHost(h)
	}
	for _, ch := range g.children {
		c.addChild(ch)
	}
	c.vars = g.vars.Clone()
	return c
}

// ensureGroup creates the group on first sight and lists it under "all".
func (t *Tree) ensureGroup(name string) *groupState {
	if g, ok := t.groups[name]; ok {
		return g
	}
	g := newGroupState(name)
	t.groups[name] = g
	t.groups[AllGroup].addChild(name)
	return g
}

// addHost assigns host to group and merges vars into its host variables.
func (t *Tree) addHost(group, host string, vars Vars) {
	t.ensureGroup(group).addHost(host)
	if _, ok := t.hostSeen[host]; !ok {
		t.hostSeen[host] = struct{}{}
		t.hostOrder = append(t.hostOrder, host)
	}
	if vars.Len() == 0 {
		return
	}
	hv, ok := t.hostVars[host]
	if !ok {
		hv = &Vars{}
		t.hostVars[host] = hv
		t.hostVarOrder = append(t.hostVarOrder, host)
	}
	hv.Merge(vars)
}

// reaches reports whether to is from itself or one of its descendants.
func (t *Tree) reaches(from, to string) bool {
	seen := make(map[string]struct{})
	var walk func(string) bool
	walk = func(name string) bool {
		if name == to {
			return true
		}
		if _, ok := seen[name]; ok {
			return false
		}
		seen[name] = struct{}{}
		g, ok := t.groups[name]
		if !ok {
			return false
		}
		return slices.ContainsFunc(g.children, walk)
	}
	return walk(from)
}

func (t *Tree) clone() *Tree {
	c := &Tree{
		groups:       make(map[string]*groupState, len(t.groups)),
		hostOrder:    slices.Clone(t.hostOrder),
		hostSeen:     make(map[string]struct{}, len(t.hostSeen)),
		hostVars:     make(map[string]*Vars, len(t.hostVars)),
		hostVarOrder: slices.Clone(t.hostVarOrder),
	}
	for name, g := range t.groups {
		c.groups[name] = g.clone()
	}
	for h := range t.hostSeen {
		c.hostSeen[h] = struct{}{}
	}
	for h, v := range t.hostVars {
		vc := v.Clone()
		c.hostVars[h] = &vc
	}
	return c
}

// Groups returns the children of "all": "ungrouped" followed by every other
// group in first-declaration order.
func (t *Tree) Groups() []string {
	return slices.Clone(t.groups[AllGroup].children)
}

// Group returns the named group, including the implicit "all" and "ungrouped".
func (t *Tree) Group(name string) (Group, bool) {
	g, ok := t.groups[name]
	if !ok {
		return Group{}, false
	}
	return g.view(), true
}

// All returns the implicit root group.
func (t *Tree) All() Group { return t.groups[AllGroup].view() }

// Ungrouped returns the implicit group of hosts declared before any header.
func (t *Tree) Ungrouped() Group { return t.groups[UngroupedGroup].view() }

// HostVars returns the merged inline variables of host. The boolean is false
// for hosts that never carried an inline variable.
func (t *Tree) HostVars(host string) (Vars, bool) {
	v, ok := t.hostVars[host]
	if !ok {
		return Vars{}, false
	}
	return v.Clone(), true
}

// HostVarsHosts returns the hosts that carry variables, in the order their
// first variable was declared.
func (t *Tree) HostVarsHosts() []string { return slices.Clone(t.hostVarOrder) }

// Hosts returns every distinct host in first-declaration order.
func (t *Tree) Hosts() []string { return slices.Clone(t.hostOrder) }

// ResolveHosts returns the hosts of group and of all its descendants,
// deduplicated, depth first in declaration order. Cycles are visited once.
func (t *Tree) ResolveHosts(group string) ([]string, bool) {
	if _, ok := t.groups[group]; !ok {
		return nil, false
	}

	var (
		out       = []string{}
		seenHost  = make(map[string]struct{})
		seenGroup = make(map[string]struct{})
		walk      func(string)
	)
	walk = func(name string) {
		if _, ok := seenGroup[name]; ok {
			return
		}
		seenGroup[name] = struct{}{}
		g, ok := t.groups[name]
		if !ok {
			return
		}
		for _, h := range g.hosts {
			if _, dup := seenHost[h]; !dup {
				seenHost[h] = struct{}{}
				out = append(out, h)
			}
		}
		for _, child := range g.children {
			walk(child)
		}
	}
	walk(group)
	return out, true
}

// Equal reports whether both trees hold the same groups, memberships, host
// variables and orderings.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.groups) != len(other.groups) ||
		!slices.Equal(t.hostOrder, other.hostOrder) ||
		!slices.Equal(t.hostVarOrder, other.hostVarOrder) {
		return false
	}
	for name, g := range t.groups {
		o, ok := other.groups[name]
		if !ok ||
			!slices.Equal(g.hosts, o.hosts) ||
			!slices.Equal(g.children, o.children) ||
			!g.vars.Equal(o.vars) {
			return false
		}
	}
	for _, h := range t.hostVarOrder {
		if !t.hostVars[h].Equal(*other.hostVars[h]) {
			return false
		}
	}
	return true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
