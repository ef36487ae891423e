// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error types for user-facing messages and
// a catalog of markdown explanations for every inventory diagnostic code.
package issue
