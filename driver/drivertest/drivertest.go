// SPDX-License-Identifier: Unlicense OR MIT

// Package drivertest provides a simulated EGL driver for tests.
package drivertest

import (
	"sync"

	"golang.org/x/exp/slices"

	"gioui.org/eglview/driver"
)

// Config describes a simulated configuration.
type Config struct {
	Red, Green, Blue, Alpha int32
	Depth, Stencil          int32
	Samples                 int32
	// Renderable defaults to OpenGLES2Bit|OpenGLES3Bit if zero.
	Renderable int32
	// Surface defaults to WindowBit|PbufferBit if zero.
	Surface int32
}

// RGBA returns an ES2/ES3 renderable config with the given bit depths.
func RGBA(r, g, b, a, depth, stencil int32) Config {
	return Config{Red: r, Green: g, Blue: b, Alpha: a, Depth: depth, Stencil: stencil}
}

// ContextCall records the arguments of a CreateContext call.
type ContextCall struct {
	Config  driver.Config
	Share   driver.Context
	Attribs []int32
}

// Driver is an in-memory driver.Driver. The zero value has no
// configurations; fields may be set before first use.
type Driver struct {
	Formats []Config
	// Extensions lists the display extensions.
	Extensions []string

	// FailContext makes CreateContext return NoContext.
	FailContext bool
	// FailSurface makes surface creation return NoSurface.
	FailSurface bool

	mu       sync.Mutex
	next     uintptr
	err      driver.ErrorCode
	contexts map[driver.Context]bool
	surfaces map[driver.Surface]bool
	current  driver.Context
	calls    []string
	ctxCalls []ContextCall
	pbuffers [][]int32
	swaps    int
	// failSwaps is the number of upcoming SwapBuffers calls that fail
	// with swapErr.
	failSwaps int
	swapErr   driver.ErrorCode
}

const display = driver.Display(0xd1)

// New returns a driver exposing cfgs, in order.
func New(cfgs ...Config) *Driver {
	return &Driver{Formats: cfgs}
}

func (d *Driver) record(call string) {
	d.calls = append(d.calls, call)
}

func (d *Driver) handle() uintptr {
	d.next++
	return 0x100 + d.next
}

func (d *Driver) Display(nd driver.NativeDisplay) (driver.Display, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Display")
	return display, nil
}

func (d *Driver) Configs(disp driver.Display) ([]driver.Config, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if disp != display {
		return nil, driver.BadDisplay
	}
	cfgs := make([]driver.Config, len(d.Formats))
	for i := range d.Formats {
		cfgs[i] = driver.Config(i + 1)
	}
	return cfgs, nil
}

func (d *Driver) ConfigAttrib(disp driver.Display, c driver.Config, attr int32) (int32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := int(c) - 1
	if disp != display || i < 0 || i >= len(d.Formats) {
		d.err = driver.BadConfig
		return 0, false
	}
	cfg := d.Formats[i]
	switch attr {
	case driver.RedSize:
		return cfg.Red, true
	case driver.GreenSize:
		return cfg.Green, true
	case driver.BlueSize:
		return cfg.Blue, true
	case driver.AlphaSize:
		return cfg.Alpha, true
	case driver.DepthSize:
		return cfg.Depth, true
	case driver.StencilSize:
		return cfg.Stencil, true
	case driver.Samples:
		return cfg.Samples, true
	case driver.ConfigID:
		return int32(c), true
	case driver.RenderableType:
		if cfg.Renderable == 0 {
			return driver.OpenGLES2Bit | driver.OpenGLES3Bit, true
		}
		return cfg.Renderable, true
	case driver.SurfaceType:
		if cfg.Surface == 0 {
			return driver.WindowBit | driver.PbufferBit, true
		}
		return cfg.Surface, true
	}
	d.err = driver.BadAttribute
	return 0, false
}

func (d *Driver) CreateContext(disp driver.Display, c driver.Config, share driver.Context, attribs []int32) driver.Context {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("CreateContext")
	d.ctxCalls = append(d.ctxCalls, ContextCall{Config: c, Share: share, Attribs: slices.Clone(attribs)})
	if d.FailContext {
		d.err = driver.BadMatch
		return driver.NoContext
	}
	ctx := driver.Context(d.handle())
	if d.contexts == nil {
		d.contexts = make(map[driver.Context]bool)
	}
	d.contexts[ctx] = true
	return ctx
}

func (d *Driver) DestroyContext(disp driver.Display, ctx driver.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DestroyContext")
	if !d.contexts[ctx] {
		d.err = driver.BadContext
		return false
	}
	delete(d.contexts, ctx)
	if d.current == ctx {
		d.current = driver.NoContext
	}
	return true
}

func (d *Driver) newSurface() driver.Surface {
	if d.FailSurface {
		d.err = driver.BadNativeWindow
		return driver.NoSurface
	}
	s := driver.Surface(d.handle())
	if d.surfaces == nil {
		d.surfaces = make(map[driver.Surface]bool)
	}
	d.surfaces[s] = true
	return s
}

func (d *Driver) CreateWindowSurface(disp driver.Display, c driver.Config, win driver.NativeWindow, attribs []int32) driver.Surface {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("CreateWindowSurface")
	return d.newSurface()
}

func (d *Driver) CreatePbufferSurface(disp driver.Display, c driver.Config, attribs []int32) driver.Surface {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("CreatePbufferSurface")
	d.pbuffers = append(d.pbuffers, slices.Clone(attribs))
	return d.newSurface()
}

func (d *Driver) DestroySurface(disp driver.Display, s driver.Surface) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DestroySurface")
	if !d.surfaces[s] {
		d.err = driver.BadSurface
		return false
	}
	delete(d.surfaces, s)
	return true
}

func (d *Driver) MakeCurrent(disp driver.Display, draw, read driver.Surface, ctx driver.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case ctx == driver.NoContext:
		d.record("MakeCurrent(none)")
	case draw == driver.NoSurface:
		d.record("MakeCurrent(surfaceless)")
	default:
		d.record("MakeCurrent")
	}
	if ctx != driver.NoContext && !d.contexts[ctx] {
		d.err = driver.BadContext
		return false
	}
	d.current = ctx
	return true
}

func (d *Driver) SwapBuffers(disp driver.Display, s driver.Surface) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failSwaps > 0 {
		d.failSwaps--
		d.err = d.swapErr
		return false
	}
	d.swaps++
	return true
}

func (d *Driver) Error() driver.ErrorCode {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.err
	d.err = driver.Success
	if err == 0 {
		return driver.Success
	}
	return err
}

func (d *Driver) HasExtension(disp driver.Display, ext string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Contains(d.Extensions, ext)
}

func (d *Driver) ReleaseThread() bool {
	return true
}

// Calls returns the recorded driver calls, in order.
func (d *Driver) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.calls)
}

// ContextCalls returns the arguments of every CreateContext call.
func (d *Driver) ContextCalls() []ContextCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.ctxCalls)
}

// PbufferAttribs returns the attribute lists of every
// CreatePbufferSurface call.
func (d *Driver) PbufferAttribs() [][]int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.pbuffers)
}

// LiveContexts returns the number of contexts not yet destroyed.
func (d *Driver) LiveContexts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.contexts)
}

// LiveSurfaces returns the number of surfaces not yet destroyed.
func (d *Driver) LiveSurfaces() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.surfaces)
}

// Current returns the most recently bound context.
func (d *Driver) Current() driver.Context {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Swaps returns the number of successful SwapBuffers calls.
func (d *Driver) Swaps() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.swaps
}

// SetFailContext toggles context creation failure.
func (d *Driver) SetFailContext(fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.FailContext = fail
}

// FailSwaps makes the next n SwapBuffers calls fail with err.
func (d *Driver) FailSwaps(n int, err driver.ErrorCode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failSwaps = n
	d.swapErr = err
}
