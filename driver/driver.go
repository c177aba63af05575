// SPDX-License-Identifier: Unlicense OR MIT

// Package driver defines the EGL calls the view needs from a platform
// binding, and the opaque handles passed through them.
package driver

// Opaque EGL handles. The zero value of each is the corresponding
// EGL_NO_* constant.
type (
	NativeDisplay uintptr
	NativeWindow  uintptr
	Display       uintptr
	Config        uintptr
	Context       uintptr
	Surface       uintptr
)

const (
	DefaultDisplay NativeDisplay = 0
	NoDisplay      Display       = 0
	NoContext      Context       = 0
	NoSurface      Surface       = 0
)

// Driver is the subset of EGL used to negotiate configurations and
// manage contexts and surfaces. Handle-returning methods return the
// zero handle on failure; Error reports the cause.
//
// Implementations must be safe for use from multiple OS threads, as
// EGL itself is.
type Driver interface {
	// Display returns an initialized display for the native display.
	Display(nd NativeDisplay) (Display, error)
	// Configs returns every configuration the display supports.
	Configs(d Display) ([]Config, error)
	ConfigAttrib(d Display, c Config, attr int32) (int32, bool)
	// CreateContext creates a context. Attribs is an EGL attribute list,
	// terminated by None.
	CreateContext(d Display, c Config, share Context, attribs []int32) Context
	DestroyContext(d Display, ctx Context) bool
	CreateWindowSurface(d Display, c Config, win NativeWindow, attribs []int32) Surface
	CreatePbufferSurface(d Display, c Config, attribs []int32) Surface
	DestroySurface(d Display, s Surface) bool
	// MakeCurrent binds ctx and surfaces to the calling OS thread.
	MakeCurrent(d Display, draw, read Surface, ctx Context) bool
	SwapBuffers(d Display, s Surface) bool
	// Error returns and clears the last error of the calling thread.
	Error() ErrorCode
	// ReleaseThread releases per-thread state of the calling thread.
	ReleaseThread() bool
}

const (
	AlphaSize            = 0x3021
	BlueSize             = 0x3022
	GreenSize            = 0x3023
	RedSize              = 0x3024
	DepthSize            = 0x3025
	StencilSize          = 0x3026
	ConfigCaveat         = 0x3027
	ConfigID             = 0x3028
	Samples              = 0x3031
	SurfaceType          = 0x3033
	None                 = 0x3038
	RenderableType       = 0x3040
	Height               = 0x3056
	Width                = 0x3057
	NativeVisualID       = 0x302e
	Extensions           = 0x3055
	ContextClientVersion = 0x3098

	// EGL_KHR_create_context.
	ContextMinorVersion = 0x30fb
	ContextFlags        = 0x30fc

	ContextOpenGLDebugBit = 0x1

	PbufferBit = 0x1
	WindowBit  = 0x4

	OpenGLES2Bit = 0x4
	OpenGLES3Bit = 0x40
)

// ExtensionQuerier is implemented by drivers that can report display
// extensions.
type ExtensionQuerier interface {
	HasExtension(d Display, ext string) bool
}

// SurfacelessExtension allows contexts to be made current without a
// surface.
const SurfacelessExtension = "EGL_KHR_surfaceless_context"
