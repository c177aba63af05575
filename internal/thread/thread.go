// SPDX-License-Identifier: Unlicense OR MIT

// Package thread identifies OS threads for diagnostics.
package thread
