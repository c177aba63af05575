// SPDX-License-Identifier: Unlicense OR MIT

package eglview

import (
	"github.com/pkg/errors"
	mobile "golang.org/x/mobile/event/lifecycle"

	"gioui.org/eglview/backend"
	"gioui.org/eglview/chooser"
	"gioui.org/eglview/driver"
	"gioui.org/eglview/internal/log"
	"gioui.org/eglview/internal/loop"
	"gioui.org/eglview/lifecycle"
	"gioui.org/eglview/offscreen"
)

// Host is the windowing host of a View.
type Host interface {
	// SetTranslucent requests a translucent surface format, drawn on
	// top of other views.
	SetTranslucent()
	// NativeDisplay returns the native display connection.
	NativeDisplay() driver.NativeDisplay
	// DefaultKey and DefaultGenericMotion handle events the input
	// handler didn't consume. They report whether the event was
	// consumed.
	DefaultKey(e KeyEvent) bool
	DefaultGenericMotion(e MotionEvent) bool
}

// Renderer draws frames. Every method is called on the render thread
// with the primary context current.
type Renderer interface {
	lifecycle.Renderer
	// OnSurfaceCreated is called after the primary context is created
	// and first made current, including after a context loss.
	OnSurfaceCreated()
	OnSurfaceChanged(width, height int)
	OnDrawFrame()
}

// Engine is the engine runtime.
type Engine interface {
	lifecycle.Engine
	OnBackPressed()
}

// RenderMode controls when frames are drawn.
type RenderMode uint8

const (
	// RenderContinuously draws frames back to back while the view is
	// active and has a surface.
	RenderContinuously RenderMode = iota
	// RenderWhenDirty draws a frame only after RequestRender or a
	// surface change.
	RenderWhenDirty
)

// Config configures a View. Host, Driver, Renderer and Engine are
// required.
type Config struct {
	Host     Host
	Driver   driver.Driver
	Renderer Renderer
	Engine   Engine
	Input    Input
	Gestures GestureDetector
	Options  backend.Options
	Mode     RenderMode
}

// View is a rendering surface. Its methods may be called from any
// goroutine; the offscreen methods follow the rules of package
// offscreen.
type View struct {
	cfg       Config
	drv       driver.Driver
	disp      driver.Display
	backend   *backend.Backend
	loop      *loop.Loop
	bridge    *lifecycle.Bridge
	offscreen *offscreen.Manager
	// sel is set before New returns and never changes.
	sel chooser.Selection

	// Fields below are owned by the render thread.
	ctx           driver.Context
	surf          driver.Surface
	win           driver.NativeWindow
	width, height int
	created       bool
	resized       bool
	paused        bool
	dirty         bool
}

// New creates a view and starts its render thread. Failing to find
// any configuration or to create the primary context is fatal.
func New(cfg Config) (*View, error) {
	if cfg.Host == nil || cfg.Driver == nil || cfg.Renderer == nil || cfg.Engine == nil {
		return nil, errors.New("eglview: Host, Driver, Renderer and Engine are required")
	}
	b, err := backend.New(cfg.Driver, cfg.Options)
	if err != nil {
		return nil, err
	}
	if cfg.Options.Variant == backend.Regular && cfg.Options.Translucent {
		cfg.Host.SetTranslucent()
	}
	disp, err := cfg.Driver.Display(cfg.Host.NativeDisplay())
	if err != nil {
		return nil, err
	}
	v := &View{
		cfg:     cfg,
		drv:     cfg.Driver,
		disp:    disp,
		backend: b,
	}
	v.loop, err = loop.New(v.init, v.frame)
	if err != nil {
		return nil, errors.Wrap(err, "eglview: render thread")
	}
	v.bridge = lifecycle.New(v.loop, cfg.Renderer, cfg.Engine)
	v.bridge.Hook = v.transition
	v.offscreen = offscreen.New(v.drv, disp, b)
	return v, nil
}

func (v *View) init() error {
	sel, err := v.backend.ChooseConfig(v.disp)
	if err != nil {
		return err
	}
	v.sel = sel
	return v.createContext()
}

// Selection returns the configuration shared by the primary and
// offscreen contexts.
func (v *View) Selection() chooser.Selection {
	return v.sel
}

// Options returns the options the view was created with.
func (v *View) Options() backend.Options {
	return v.cfg.Options
}

// State returns the lifecycle state.
func (v *View) State() lifecycle.State {
	return v.bridge.State()
}

// SurfaceCreated attaches the native window.
func (v *View) SurfaceCreated(win driver.NativeWindow, width, height int) {
	v.loop.Queue(func() {
		v.destroySurface()
		v.win = win
		v.setSize(width, height)
		v.ensureSurface()
	})
}

// SurfaceChanged reports a new native window size.
func (v *View) SurfaceChanged(width, height int) {
	v.loop.Queue(func() {
		v.setSize(width, height)
		v.ensureSurface()
	})
}

// SurfaceDestroyed detaches the native window. It returns after the
// render thread has released its surface.
func (v *View) SurfaceDestroyed() {
	v.loop.Do(func() error {
		v.destroySurface()
		v.win = 0
		return nil
	})
}

// OnPause stops drawing, then pauses engine focus and the renderer.
// The primary context is preserved.
func (v *View) OnPause() {
	v.bridge.OnPause()
}

// OnResume resumes the renderer and engine focus, then restarts
// drawing.
func (v *View) OnResume() {
	v.bridge.OnResume()
}

// transition runs on the render thread together with the lifecycle
// notifications, so no frame falls between them.
func (v *View) transition(s lifecycle.State) {
	v.paused = s == lifecycle.Paused
	if !v.paused {
		v.dirty = true
	}
}

// HandleLifecycle maps a golang.org/x/mobile lifecycle event to
// OnPause or OnResume. It reports whether e caused a transition.
func (v *View) HandleLifecycle(e mobile.Event) bool {
	return lifecycle.Dispatch(e, v)
}

// RequestRender schedules a frame in RenderWhenDirty mode.
func (v *View) RequestRender() {
	v.loop.Queue(func() {
		v.dirty = true
	})
}

// Queue runs f on the render thread before the next frame.
func (v *View) Queue(f func()) {
	v.loop.Queue(f)
}

// CreateOffscreenGL creates the offscreen context. It reports false if
// the context couldn't be created or already exists.
func (v *View) CreateOffscreenGL() bool {
	if err := v.offscreen.Create(); err != nil {
		log.L().Error("offscreen context unavailable", "err", err)
		return false
	}
	return true
}

// SetOffscreenGLCurrent binds the offscreen context to the calling
// thread without a surface, or unbinds it. Binding without an
// offscreen context fails with offscreen.ErrNoContext.
func (v *View) SetOffscreenGLCurrent(current bool) error {
	return v.offscreen.SetCurrent(current)
}

// DestroyOffscreenGL destroys the offscreen context, if any.
func (v *View) DestroyOffscreenGL() {
	if err := v.offscreen.Destroy(); err != nil {
		log.L().Warn("destroying offscreen context", "err", err)
	}
}

// Offscreen returns the offscreen context manager.
func (v *View) Offscreen() *offscreen.Manager {
	return v.offscreen
}

// Release destroys the offscreen context, stops the render thread and
// destroys the primary context. The view must not be used afterwards.
func (v *View) Release() {
	v.DestroyOffscreenGL()
	v.loop.Release(func() {
		v.destroySurface()
		v.destroyContext()
		v.drv.ReleaseThread()
	})
}
