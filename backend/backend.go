// SPDX-License-Identifier: Unlicense OR MIT

// Package backend implements the configuration chain, context factory
// and surface factory of each rendering backend variant.
package backend

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"gioui.org/eglview/chooser"
	"gioui.org/eglview/driver"
	"gioui.org/eglview/internal/log"
)

// Variant selects the rendering pipeline a view is configured for.
type Variant uint8

const (
	// Regular is the standard 2D/3D pipeline.
	Regular Variant = iota
	// StereoLegacy is the vendor stereo pipeline that predates OpenXR.
	StereoLegacy
	// StereoOpenXR is the OpenXR stereo pipeline.
	StereoOpenXR
)

// Options is the construction-time configuration of a view.
type Options struct {
	Variant Variant
	// HigherGLProfile requests an OpenGL ES 3 context and configuration.
	HigherGLProfile bool
	// DebugContext requests a debug context.
	DebugContext bool
	// Translucent requests an alpha-capable surface. The request is
	// best effort; see chooser.Selection.AlphaDropped.
	Translucent bool
}

var (
	ErrContextCreation = errors.New("backend: context creation failed")
	ErrSurfaceCreation = errors.New("backend: surface creation failed")
)

// stereoPbufferSize is the size of the placeholder surface of the
// stereo variants. The XR compositor presents from its own swapchain.
const stereoPbufferSize = 16

// Backend creates contexts and surfaces for one Variant. It is
// immutable and safe for concurrent use.
type Backend struct {
	drv   driver.Driver
	opts  Options
	chain chooser.Chain
}

func (v Variant) String() string {
	switch v {
	case Regular:
		return "regular"
	case StereoLegacy:
		return "stereo-legacy"
	case StereoOpenXR:
		return "stereo-openxr"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// Stereo reports whether v is one of the stereo variants.
func (v Variant) Stereo() bool {
	return v == StereoLegacy || v == StereoOpenXR
}

// ParseVariant parses the String form of a Variant.
func ParseVariant(s string) (Variant, error) {
	for _, v := range []Variant{Regular, StereoLegacy, StereoOpenXR} {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}
	return 0, errors.Errorf("backend: unknown variant %q", s)
}

// New returns the backend selected by opts.Variant.
func New(drv driver.Driver, opts Options) (*Backend, error) {
	b := &Backend{drv: drv, opts: opts}
	switch opts.Variant {
	case Regular:
		b.chain = regularChain(opts)
	case StereoLegacy, StereoOpenXR:
		b.chain = stereoChain()
	default:
		return nil, errors.Errorf("backend: unknown variant %d", opts.Variant)
	}
	return b, nil
}

func regularChain(opts Options) chooser.Chain {
	renderable := int32(driver.OpenGLES2Bit)
	if opts.HigherGLProfile {
		renderable = driver.OpenGLES3Bit
	}
	// Exact matching compares colors only, so the 16-bit depth link
	// never selects: the first link already takes every RGBA8888
	// config, ranked by depth. A shallow pick is reported by
	// Selection.Degraded.
	return chooser.Chain{
		Links: []chooser.PixelFormat{
			{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24},
			{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 16},
			// Last resort: translucency is lost, but rendering works.
			{Red: 5, Green: 6, Blue: 5, Depth: 16},
		},
		Filter:      chooser.Filter{Renderable: renderable},
		Translucent: opts.Translucent,
	}
}

func stereoChain() chooser.Chain {
	return chooser.Chain{
		// The compositor needs alpha; depth lives in the XR swapchain.
		Links: []chooser.PixelFormat{{Red: 8, Green: 8, Blue: 8, Alpha: 8}},
		Filter: chooser.Filter{
			Renderable: driver.OpenGLES3Bit,
			Surface:    driver.WindowBit | driver.PbufferBit,
		},
	}
}

func (b *Backend) Options() Options {
	return b.opts
}

// Chain returns the configuration chain of the backend.
func (b *Backend) Chain() chooser.Chain {
	return b.chain
}

// ChooseConfig selects the configuration shared by every context the
// backend creates on disp.
func (b *Backend) ChooseConfig(disp driver.Display) (chooser.Selection, error) {
	return b.chain.ChooseConfig(b.drv, disp)
}

// ContextAttribs returns the attribute list passed to eglCreateContext.
func (b *Backend) ContextAttribs() []int32 {
	var attribs []int32
	switch b.opts.Variant {
	case Regular:
		version := int32(2)
		if b.opts.HigherGLProfile {
			version = 3
		}
		attribs = append(attribs, driver.ContextClientVersion, version)
	case StereoLegacy:
		attribs = append(attribs, driver.ContextClientVersion, 3)
	case StereoOpenXR:
		attribs = append(attribs,
			driver.ContextClientVersion, 3,
			driver.ContextMinorVersion, 1,
		)
	}
	if b.opts.DebugContext {
		attribs = append(attribs, driver.ContextFlags, driver.ContextOpenGLDebugBit)
	}
	return append(attribs, driver.None)
}

// CreateContext creates a context for cfg. A driver failure is
// reported as ErrContextCreation wrapping the EGL error.
func (b *Backend) CreateContext(disp driver.Display, cfg driver.Config) (driver.Context, error) {
	ctx := b.drv.CreateContext(disp, cfg, driver.NoContext, b.ContextAttribs())
	if ctx == driver.NoContext {
		return driver.NoContext, errors.Wrapf(ErrContextCreation, "%s: %v", b.opts.Variant, b.drv.Error())
	}
	log.L().Debug("created context", "variant", b.opts.Variant.String(), "context", uintptr(ctx))
	return ctx, nil
}

// DestroyContext destroys ctx. It must be called once per successful
// CreateContext.
func (b *Backend) DestroyContext(disp driver.Display, ctx driver.Context) error {
	if !b.drv.DestroyContext(disp, ctx) {
		return errors.Wrap(b.drv.Error(), "backend: eglDestroyContext")
	}
	log.L().Debug("destroyed context", "variant", b.opts.Variant.String(), "context", uintptr(ctx))
	return nil
}

// CreateSurface creates the on-screen surface for win. The regular
// variant creates a window surface; the stereo variants create a
// small pbuffer and ignore win.
func (b *Backend) CreateSurface(disp driver.Display, cfg driver.Config, win driver.NativeWindow) (driver.Surface, error) {
	var surf driver.Surface
	if b.opts.Variant.Stereo() {
		surf = b.drv.CreatePbufferSurface(disp, cfg, []int32{
			driver.Width, stereoPbufferSize,
			driver.Height, stereoPbufferSize,
			driver.None,
		})
	} else {
		surf = b.drv.CreateWindowSurface(disp, cfg, win, []int32{driver.None})
	}
	if surf == driver.NoSurface {
		return driver.NoSurface, errors.Wrapf(ErrSurfaceCreation, "%s: %v", b.opts.Variant, b.drv.Error())
	}
	return surf, nil
}

func (b *Backend) DestroySurface(disp driver.Display, surf driver.Surface) error {
	if !b.drv.DestroySurface(disp, surf) {
		return errors.Wrap(b.drv.Error(), "backend: eglDestroySurface")
	}
	return nil
}
