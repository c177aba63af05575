// SPDX-License-Identifier: Unlicense OR MIT

package eglview

import (
	"log/slog"

	"gioui.org/eglview/internal/log"
)

// SetLogger sets the logger of eglview and its sub-packages. A nil
// logger restores the default, which discards everything.
//
// Levels used:
//   - [slog.LevelDebug]: handle creation and destruction, current bindings
//   - [slog.LevelInfo]: the selected EGL configuration
//   - [slog.LevelWarn]: degraded configurations, swap failures
//   - [slog.LevelError]: context failures reported as booleans
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	log.Set(l)
}
