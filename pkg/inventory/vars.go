// SPDX-License-Identifier: MPL-2.0

package inventory

import "slices"

// Vars is an insertion-ordered string map. Setting an existing key replaces
// its value but keeps its original position, so serialized output follows
// first-declaration order while values follow last-write-wins.
//
// The zero value is an empty, ready to use map.
type Vars struct {
	keys   []string
	values map[string]string
}

// NewVars returns Vars populated from alternating key, value pairs.
// A trailing key without a value is set to "".
func NewVars(pairs ...string) Vars {
	var v Vars
	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		v.Set(pairs[i], value)
	}
	return v
}

// Set assigns value to key.
func (v *Vars) Set(key, value string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get returns the value for key and whether it is present.
func (v Vars) Get(key string) (string, bool) {
	value, ok := v.values[key]
	return value, ok
}

// Keys returns the keys in first-declaration order.
func (v Vars) Keys() []string { return slices.Clone(v.keys) }

// Len returns the number of keys.
func (v Vars) Len() int { return len(v.keys) }

// Merge copies every key of other into v, overriding values on collision.
func (v *Vars) Merge(other Vars) {
	for _, key := range other.keys {
		v.Set(key, other.values[key])
	}
}

// Clone returns a deep copy of v.
func (v Vars) Clone() Vars {
	var out Vars
	out.Merge(v)
	return out
}

// Map returns the contents as a plain map. The map is never nil.
func (v Vars) Map() map[string]string {
	out := make(map[string]string, len(v.keys))
	for _, key := range v.keys {
		out[key] = v.values[key]
	}
	return out
}

// Equal reports whether both maps hold the same keys, in the same order,
// with the same values.
func (v Vars) Equal(other Vars) bool {
	if !slices.Equal(v.keys, other.keys) {
		return false
	}
	for _, key := range v.keys {
		if v.values[key] != other.values[key] {
			return false
		}
	}
	return true
}
