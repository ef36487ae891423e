// SPDX-License-Identifier: MPL-2.0

// Package inventory parses INI-style host inventories into a normalized tree.
//
// The input format is line oriented. Lines before the first section header
// declare ungrouped hosts; `[name]` starts a host list, `[name:vars]` a block of
// group variables and `[name:children]` a list of child groups:
//
//	web1 env=prod
//
//	[webservers]
//	web2
//	web-[01:10:2].example.com env=staging
//
//	[webservers:vars]
//	port=80
//
// Parsing is split into small pure steps (ClassifyLine, DecodeEntry,
// DecodeHeader, ExpandHostPattern) driven by a Builder, which owns all mutable
// state for a single parse and materializes an immutable Tree. Malformed
// input never aborts a parse; it is reported through Diagnostics.
//
// Every parse is independent. Callers that parse several sources in parallel
// use one Builder (or one Parse call) per source.
package inventory
