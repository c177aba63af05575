// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux || freebsd || openbsd) && cgo

package egl

/*
#cgo linux,!android  pkg-config: egl
#cgo freebsd openbsd android LDFLAGS: -lEGL
#cgo freebsd CFLAGS: -I/usr/local/include
#cgo freebsd LDFLAGS: -L/usr/local/lib
#cgo openbsd CFLAGS: -I/usr/X11R6/include
#cgo openbsd LDFLAGS: -L/usr/X11R6/lib

#define EGL_NO_X11
#define MESA_EGL_NO_X11_HEADERS

#include <stdint.h>
#include <stdlib.h>
#include <EGL/egl.h>

// Handles cross into Go as uintptr_t; EGLNativeWindowType is a
// pointer on Android and an integer elsewhere.
#define H(t, v) ((t)(uintptr_t)(v))

static uintptr_t eglview_getDisplay(uintptr_t nd) {
	return (uintptr_t)eglGetDisplay(H(EGLNativeDisplayType, nd));
}

static EGLBoolean eglview_initialize(uintptr_t d, EGLint *major, EGLint *minor) {
	return eglInitialize(H(EGLDisplay, d), major, minor);
}

static EGLBoolean eglview_getConfigs(uintptr_t d, uintptr_t *out, EGLint size, EGLint *n) {
	EGLConfig *cfgs = NULL;
	if (out != NULL && size > 0) {
		cfgs = malloc(sizeof(EGLConfig) * size);
		if (cfgs == NULL) {
			return EGL_FALSE;
		}
	}
	EGLBoolean ok = eglGetConfigs(H(EGLDisplay, d), cfgs, size, n);
	for (EGLint i = 0; ok && cfgs != NULL && i < *n; i++) {
		out[i] = (uintptr_t)cfgs[i];
	}
	free(cfgs);
	return ok;
}

static EGLBoolean eglview_getConfigAttrib(uintptr_t d, uintptr_t c, EGLint attr, EGLint *val) {
	return eglGetConfigAttrib(H(EGLDisplay, d), H(EGLConfig, c), attr, val);
}

static uintptr_t eglview_createContext(uintptr_t d, uintptr_t c, uintptr_t share, const EGLint *attribs) {
	return (uintptr_t)eglCreateContext(H(EGLDisplay, d), H(EGLConfig, c), H(EGLContext, share), attribs);
}

static EGLBoolean eglview_destroyContext(uintptr_t d, uintptr_t ctx) {
	return eglDestroyContext(H(EGLDisplay, d), H(EGLContext, ctx));
}

static uintptr_t eglview_createWindowSurface(uintptr_t d, uintptr_t c, uintptr_t win, const EGLint *attribs) {
	return (uintptr_t)eglCreateWindowSurface(H(EGLDisplay, d), H(EGLConfig, c), H(EGLNativeWindowType, win), attribs);
}

static uintptr_t eglview_createPbufferSurface(uintptr_t d, uintptr_t c, const EGLint *attribs) {
	return (uintptr_t)eglCreatePbufferSurface(H(EGLDisplay, d), H(EGLConfig, c), attribs);
}

static EGLBoolean eglview_destroySurface(uintptr_t d, uintptr_t s) {
	return eglDestroySurface(H(EGLDisplay, d), H(EGLSurface, s));
}

static EGLBoolean eglview_makeCurrent(uintptr_t d, uintptr_t draw, uintptr_t read, uintptr_t ctx) {
	return eglMakeCurrent(H(EGLDisplay, d), H(EGLSurface, draw), H(EGLSurface, read), H(EGLContext, ctx));
}

static EGLBoolean eglview_swapBuffers(uintptr_t d, uintptr_t s) {
	return eglSwapBuffers(H(EGLDisplay, d), H(EGLSurface, s));
}

static const char *eglview_queryString(uintptr_t d, EGLint name) {
	return eglQueryString(H(EGLDisplay, d), name);
}
*/
import "C"

import (
	"unsafe"

	"gioui.org/eglview/driver"
)

func loadEGL() error {
	return nil
}

func attribPtr(attribs []int32) *C.EGLint {
	return (*C.EGLint)(unsafe.Pointer(&attribs[0]))
}

func eglGetDisplay(nd driver.NativeDisplay) driver.Display {
	return driver.Display(C.eglview_getDisplay(C.uintptr_t(nd)))
}

func eglInitialize(d driver.Display) (int32, int32, bool) {
	var major, minor C.EGLint
	ok := C.eglview_initialize(C.uintptr_t(d), &major, &minor) == C.EGL_TRUE
	return int32(major), int32(minor), ok
}

func eglGetConfigs(d driver.Display) ([]driver.Config, bool) {
	var n C.EGLint
	if C.eglview_getConfigs(C.uintptr_t(d), nil, 0, &n) != C.EGL_TRUE {
		return nil, false
	}
	if n == 0 {
		return nil, true
	}
	cfgs := make([]driver.Config, n)
	if C.eglview_getConfigs(C.uintptr_t(d), (*C.uintptr_t)(unsafe.Pointer(&cfgs[0])), n, &n) != C.EGL_TRUE {
		return nil, false
	}
	return cfgs[:n], true
}

func eglGetConfigAttrib(d driver.Display, c driver.Config, attr int32) (int32, bool) {
	var val C.EGLint
	ok := C.eglview_getConfigAttrib(C.uintptr_t(d), C.uintptr_t(c), C.EGLint(attr), &val) == C.EGL_TRUE
	return int32(val), ok
}

func eglCreateContext(d driver.Display, c driver.Config, share driver.Context, attribs []int32) driver.Context {
	return driver.Context(C.eglview_createContext(C.uintptr_t(d), C.uintptr_t(c), C.uintptr_t(share), attribPtr(attribs)))
}

func eglDestroyContext(d driver.Display, ctx driver.Context) bool {
	return C.eglview_destroyContext(C.uintptr_t(d), C.uintptr_t(ctx)) == C.EGL_TRUE
}

func eglCreateWindowSurface(d driver.Display, c driver.Config, win driver.NativeWindow, attribs []int32) driver.Surface {
	return driver.Surface(C.eglview_createWindowSurface(C.uintptr_t(d), C.uintptr_t(c), C.uintptr_t(win), attribPtr(attribs)))
}

func eglCreatePbufferSurface(d driver.Display, c driver.Config, attribs []int32) driver.Surface {
	return driver.Surface(C.eglview_createPbufferSurface(C.uintptr_t(d), C.uintptr_t(c), attribPtr(attribs)))
}

func eglDestroySurface(d driver.Display, s driver.Surface) bool {
	return C.eglview_destroySurface(C.uintptr_t(d), C.uintptr_t(s)) == C.EGL_TRUE
}

func eglMakeCurrent(d driver.Display, draw, read driver.Surface, ctx driver.Context) bool {
	return C.eglview_makeCurrent(C.uintptr_t(d), C.uintptr_t(draw), C.uintptr_t(read), C.uintptr_t(ctx)) == C.EGL_TRUE
}

func eglSwapBuffers(d driver.Display, s driver.Surface) bool {
	return C.eglview_swapBuffers(C.uintptr_t(d), C.uintptr_t(s)) == C.EGL_TRUE
}

func eglGetError() driver.ErrorCode {
	return driver.ErrorCode(C.eglGetError())
}

func eglReleaseThread() bool {
	return C.eglReleaseThread() == C.EGL_TRUE
}

func eglQueryString(d driver.Display, name int32) string {
	s := C.eglview_queryString(C.uintptr_t(d), C.EGLint(name))
	if s == nil {
		return ""
	}
	return C.GoString(s)
}
