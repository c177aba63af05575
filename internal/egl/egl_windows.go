// SPDX-License-Identifier: Unlicense OR MIT

package egl

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	syscall "golang.org/x/sys/windows"

	"gioui.org/eglview/driver"
)

// On Windows, libEGL is provided by ANGLE.
var (
	libEGL                   = syscall.DLL{}
	_eglCreateContext        *syscall.Proc
	_eglCreatePbufferSurface *syscall.Proc
	_eglCreateWindowSurface  *syscall.Proc
	_eglDestroyContext       *syscall.Proc
	_eglDestroySurface       *syscall.Proc
	_eglGetConfigAttrib      *syscall.Proc
	_eglGetConfigs           *syscall.Proc
	_eglGetDisplay           *syscall.Proc
	_eglGetError             *syscall.Proc
	_eglInitialize           *syscall.Proc
	_eglMakeCurrent          *syscall.Proc
	_eglReleaseThread        *syscall.Proc
	_eglSwapBuffers          *syscall.Proc
	_eglQueryString          *syscall.Proc
)

var (
	loadOnce sync.Once
	loadErr  error
)

func loadEGL() error {
	loadOnce.Do(func() {
		loadErr = loadDLLs()
	})
	return loadErr
}

func loadDLLs() error {
	if err := loadDLL(&libEGL, "libEGL.dll"); err != nil {
		return err
	}
	procs := map[string]**syscall.Proc{
		"eglCreateContext":        &_eglCreateContext,
		"eglCreatePbufferSurface": &_eglCreatePbufferSurface,
		"eglCreateWindowSurface":  &_eglCreateWindowSurface,
		"eglDestroyContext":       &_eglDestroyContext,
		"eglDestroySurface":       &_eglDestroySurface,
		"eglGetConfigAttrib":      &_eglGetConfigAttrib,
		"eglGetConfigs":           &_eglGetConfigs,
		"eglGetDisplay":           &_eglGetDisplay,
		"eglGetError":             &_eglGetError,
		"eglInitialize":           &_eglInitialize,
		"eglMakeCurrent":          &_eglMakeCurrent,
		"eglReleaseThread":        &_eglReleaseThread,
		"eglSwapBuffers":          &_eglSwapBuffers,
		"eglQueryString":          &_eglQueryString,
	}
	for name, proc := range procs {
		p, err := libEGL.FindProc(name)
		if err != nil {
			return errors.Wrapf(err, "egl: failed to locate %s in %s", name, libEGL.Name)
		}
		*proc = p
	}
	return nil
}

func loadDLL(dll *syscall.DLL, name string) error {
	handle, err := syscall.LoadLibraryEx(name, 0, syscall.LOAD_LIBRARY_SEARCH_DEFAULT_DIRS)
	if err != nil {
		return errors.Wrapf(err, "egl: failed to load %s", name)
	}
	dll.Handle = handle
	dll.Name = name
	return nil
}

func eglGetDisplay(nd driver.NativeDisplay) driver.Display {
	d, _, _ := _eglGetDisplay.Call(uintptr(nd))
	return driver.Display(d)
}

func eglInitialize(d driver.Display) (int32, int32, bool) {
	var maj, min int32
	r, _, _ := _eglInitialize.Call(uintptr(d), uintptr(unsafe.Pointer(&maj)), uintptr(unsafe.Pointer(&min)))
	return maj, min, r != 0
}

func eglGetConfigs(d driver.Display) ([]driver.Config, bool) {
	var n int32
	r, _, _ := _eglGetConfigs.Call(uintptr(d), 0, 0, uintptr(unsafe.Pointer(&n)))
	if r == 0 {
		return nil, false
	}
	if n == 0 {
		return nil, true
	}
	cfgs := make([]driver.Config, n)
	r, _, _ = _eglGetConfigs.Call(uintptr(d), uintptr(unsafe.Pointer(&cfgs[0])), uintptr(n), uintptr(unsafe.Pointer(&n)))
	runtime.KeepAlive(cfgs)
	if r == 0 {
		return nil, false
	}
	return cfgs[:n], true
}

func eglGetConfigAttrib(d driver.Display, c driver.Config, attr int32) (int32, bool) {
	var val int32
	r, _, _ := _eglGetConfigAttrib.Call(uintptr(d), uintptr(c), uintptr(attr), uintptr(unsafe.Pointer(&val)))
	return val, r != 0
}

func eglCreateContext(d driver.Display, c driver.Config, share driver.Context, attribs []int32) driver.Context {
	a := &attribs[0]
	ctx, _, _ := _eglCreateContext.Call(uintptr(d), uintptr(c), uintptr(share), uintptr(unsafe.Pointer(a)))
	issue34474KeepAlive(a)
	return driver.Context(ctx)
}

func eglDestroyContext(d driver.Display, ctx driver.Context) bool {
	r, _, _ := _eglDestroyContext.Call(uintptr(d), uintptr(ctx))
	return r != 0
}

func eglCreateWindowSurface(d driver.Display, c driver.Config, win driver.NativeWindow, attribs []int32) driver.Surface {
	a := &attribs[0]
	s, _, _ := _eglCreateWindowSurface.Call(uintptr(d), uintptr(c), uintptr(win), uintptr(unsafe.Pointer(a)))
	issue34474KeepAlive(a)
	return driver.Surface(s)
}

func eglCreatePbufferSurface(d driver.Display, c driver.Config, attribs []int32) driver.Surface {
	a := &attribs[0]
	s, _, _ := _eglCreatePbufferSurface.Call(uintptr(d), uintptr(c), uintptr(unsafe.Pointer(a)))
	issue34474KeepAlive(a)
	return driver.Surface(s)
}

func eglDestroySurface(d driver.Display, s driver.Surface) bool {
	r, _, _ := _eglDestroySurface.Call(uintptr(d), uintptr(s))
	return r != 0
}

func eglMakeCurrent(d driver.Display, draw, read driver.Surface, ctx driver.Context) bool {
	r, _, _ := _eglMakeCurrent.Call(uintptr(d), uintptr(draw), uintptr(read), uintptr(ctx))
	return r != 0
}

func eglSwapBuffers(d driver.Display, s driver.Surface) bool {
	r, _, _ := _eglSwapBuffers.Call(uintptr(d), uintptr(s))
	return r != 0
}

func eglGetError() driver.ErrorCode {
	e, _, _ := _eglGetError.Call()
	return driver.ErrorCode(e)
}

func eglReleaseThread() bool {
	r, _, _ := _eglReleaseThread.Call()
	return r != 0
}

func eglQueryString(d driver.Display, name int32) string {
	r, _, _ := _eglQueryString.Call(uintptr(d), uintptr(name))
	if r == 0 {
		return ""
	}
	return syscall.BytePtrToString((*byte)(unsafe.Pointer(r)))
}

// issue34474KeepAlive calls runtime.KeepAlive as a
// workaround for golang.org/issue/34474.
func issue34474KeepAlive(v any) {
	runtime.KeepAlive(v)
}
