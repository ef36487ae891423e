// SPDX-License-Identifier: MPL-2.0

// Package testutil holds test helpers that fail the test instead of returning
// errors: environment and home directory overrides, the working directory and
// inventory fixture files.
package testutil
