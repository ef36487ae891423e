// SPDX-License-Identifier: MPL-2.0

package render

import (
	"io"

	"github.com/invowk/inventory/pkg/inventory"
)

// MetaKey is the top-level key carrying per-host variables.
const MetaKey = inventory.MetaKey

// List writes the full inventory document: "_meta", "all", "ungrouped",
// then every other group in declaration order.
func List(w io.Writer, tree *inventory.Tree, opts Options) error {
	format, err := opts.format()
	if err != nil {
		return err
	}
	return encode(w, listDocument(tree), format, opts.Indent)
}

// Host writes the variables of one host. Unknown hosts yield an empty object.
func Host(w io.Writer, tree *inventory.Tree, name string, opts Options) error {
	format, err := opts.format()
	if err != nil {
		return err
	}
	vars, _ := tree.HostVars(name)
	return encode(w, varsObject(vars), format, opts.Indent)
}

func listDocument(tree *inventory.Tree) object {
	var hostvars object
	for _, host := range tree.HostVarsHosts() {
		vars, _ := tree.HostVars(host)
		hostvars.set(host, varsObject(vars))
	}
	if hostvars == nil {
		hostvars = object{}
	}

	var doc object
	doc.set(MetaKey, object{{key: "hostvars", value: hostvars}})
	doc.set(inventory.AllGroup, allObject(tree.All()))
	for _, name := range tree.Groups() {
		g, ok := tree.Group(name)
		if !ok {
			continue
		}
		doc.set(name, groupObject(g))
	}
	return doc
}

func allObject(g inventory.Group) object {
	o := object{{key: "children", value: g.Children}}
	if len(g.Hosts) > 0 {
		o.set("hosts", g.Hosts)
	}
	if g.Vars.Len() > 0 {
		o.set("vars", varsObject(g.Vars))
	}
	return o
}

func groupObject(g inventory.Group) object {
	o := object{{key: "hosts", value: g.Hosts}}
	if g.Vars.Len() > 0 {
		o.set("vars", varsObject(g.Vars))
	}
	if len(g.Children) > 0 {
		o.set("children", g.Children)
	}
	return o
}

func varsObject(v inventory.Vars) object {
	o := object{}
	for _, key := range v.Keys() {
		value, _ := v.Get(key)
		o.set(key, value)
	}
	return o
}
