// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// fatalErrnos are the Win32 codes that leave ReadDirectoryChangesW unusable:
// handle exhaustion, an invalidated directory handle and a failed
// notification buffer allocation.
var fatalErrnos = []syscall.Errno{
	syscall.Errno(4), // ERROR_TOO_MANY_OPEN_FILES
	syscall.Errno(6), // ERROR_INVALID_HANDLE
	syscall.Errno(8), // ERROR_NOT_ENOUGH_MEMORY
}
