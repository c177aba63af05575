// SPDX-License-Identifier: Unlicense OR MIT

//go:build ((linux || freebsd || openbsd) && cgo) || windows

// Package egl binds the platform libEGL to driver.Driver.
package egl

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"gioui.org/eglview/driver"
	"gioui.org/eglview/internal/log"
)

// EGL is the platform libEGL.
type EGL struct{}

const (
	_EGL_VENDOR  = 0x3053
	_EGL_VERSION = 0x3054
)

// Open loads libEGL.
func Open() (driver.Driver, error) {
	if err := loadEGL(); err != nil {
		return nil, err
	}
	return EGL{}, nil
}

func (EGL) Display(nd driver.NativeDisplay) (driver.Display, error) {
	disp := eglGetDisplay(nd)
	if disp == driver.NoDisplay {
		return driver.NoDisplay, errors.Errorf("egl: eglGetDisplay(0x%x) failed: %v", uintptr(nd), eglGetError())
	}
	major, minor, ok := eglInitialize(disp)
	if !ok {
		return driver.NoDisplay, errors.Wrap(eglGetError(), "egl: eglInitialize")
	}
	log.L().Debug("initialized EGL display", "major", major, "minor", minor,
		"vendor", eglQueryString(disp, _EGL_VENDOR), "version", eglQueryString(disp, _EGL_VERSION))
	return disp, nil
}

func (EGL) Configs(d driver.Display) ([]driver.Config, error) {
	cfgs, ok := eglGetConfigs(d)
	if !ok {
		return nil, errors.Wrap(eglGetError(), "egl: eglGetConfigs")
	}
	return cfgs, nil
}

func (EGL) ConfigAttrib(d driver.Display, c driver.Config, attr int32) (int32, bool) {
	return eglGetConfigAttrib(d, c, attr)
}

func (EGL) CreateContext(d driver.Display, c driver.Config, share driver.Context, attribs []int32) driver.Context {
	return eglCreateContext(d, c, share, terminated(attribs))
}

func (EGL) DestroyContext(d driver.Display, ctx driver.Context) bool {
	return eglDestroyContext(d, ctx)
}

func (EGL) CreateWindowSurface(d driver.Display, c driver.Config, win driver.NativeWindow, attribs []int32) driver.Surface {
	return eglCreateWindowSurface(d, c, win, terminated(attribs))
}

func (EGL) CreatePbufferSurface(d driver.Display, c driver.Config, attribs []int32) driver.Surface {
	return eglCreatePbufferSurface(d, c, terminated(attribs))
}

func (EGL) DestroySurface(d driver.Display, s driver.Surface) bool {
	return eglDestroySurface(d, s)
}

func (EGL) MakeCurrent(d driver.Display, draw, read driver.Surface, ctx driver.Context) bool {
	return eglMakeCurrent(d, draw, read, ctx)
}

func (EGL) SwapBuffers(d driver.Display, s driver.Surface) bool {
	return eglSwapBuffers(d, s)
}

func (EGL) Error() driver.ErrorCode {
	return eglGetError()
}

func (EGL) ReleaseThread() bool {
	return eglReleaseThread()
}

// Extensions returns the extensions supported by d.
func (EGL) Extensions(d driver.Display) []string {
	return strings.Fields(eglQueryString(d, driver.Extensions))
}

// HasExtension reports whether d supports ext.
func (e EGL) HasExtension(d driver.Display, ext string) bool {
	return slices.Contains(e.Extensions(d), ext)
}

// terminated returns attribs with a trailing EGL_NONE, so the native
// call never reads past the slice.
func terminated(attribs []int32) []int32 {
	if n := len(attribs); n > 0 && attribs[n-1] == driver.None {
		return attribs
	}
	return append(slices.Clip(attribs), driver.None)
}
