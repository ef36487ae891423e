// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import "syscall"

// fatalErrnos exhaust inotify watches or file descriptors. The watcher
// cannot recover from them.
var fatalErrnos = []syscall.Errno{
	syscall.ENOSPC,
	syscall.EMFILE,
	syscall.ENFILE,
}
