// SPDX-License-Identifier: Unlicense OR MIT

//go:build !(((linux || freebsd || openbsd) && cgo) || windows)

// Package egl binds the platform libEGL to driver.Driver.
package egl

import (
	"runtime"

	"github.com/pkg/errors"

	"gioui.org/eglview/driver"
)

// Open fails on platforms without EGL.
func Open() (driver.Driver, error) {
	return nil, errors.Errorf("egl: not supported on %s/%s", runtime.GOOS, runtime.GOARCH)
}
