// SPDX-License-Identifier: MPL-2.0

package watch

import "errors"

// isFatalFsnotifyError reports whether err carries one of the platform's
// fatalErrnos. Run stops on such errors instead of logging them.
func isFatalFsnotifyError(err error) bool {
	for _, errno := range fatalErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
