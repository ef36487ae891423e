// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces ConfigDir when set. Tests use it because
// os.UserHomeDir ignores HOME on some platforms.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir until the returned func runs.
//
//	t.Cleanup(config.SetConfigDirOverride(t.TempDir()))
func SetConfigDirOverride(dir string) (restore func()) {
	prev := configDirOverride
	configDirOverride = dir
	return func() { configDirOverride = prev }
}
