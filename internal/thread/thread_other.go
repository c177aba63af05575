// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux

package thread

// ID returns 0; thread ids are only reported on Linux.
func ID() int {
	return 0
}
