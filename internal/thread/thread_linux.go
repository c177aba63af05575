// SPDX-License-Identifier: Unlicense OR MIT

package thread

import "golang.org/x/sys/unix"

// ID returns the id of the calling OS thread.
func ID() int {
	return unix.Gettid()
}
