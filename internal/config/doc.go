// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the file named by --config, else from
// $XDG_CONFIG_HOME/inventory/config.cue (~/Library/Application Support on
// macOS, %APPDATA% on Windows), else from ./inventory.cue. Every key has a
// default, so running without a file is the common case. INVENTORY_FILE,
// INVENTORY_FORMAT and INVENTORY_LOG_LEVEL override the matching keys.
//
// Files are validated against the embedded CUE schema (config_schema.cue)
// before they are merged over the defaults.
package config
