// SPDX-License-Identifier: MPL-2.0

// Package render serializes a materialized inventory tree.
//
// List and Host produce the dynamic-inventory documents consumed by
// automation tools (JSON by default, YAML and TOML on request). Graph draws
// the group hierarchy as a terminal tree.
package render
