// SPDX-License-Identifier: Unlicense OR MIT

// Package chooser selects an EGL configuration from an ordered chain of
// preferred pixel formats.
//
// The links of a Chain are tried in order and the first one with an
// exact red/green/blue/alpha match among the usable configurations wins.
// When no link matches exactly, the last link picks the closest
// configuration instead, so choosing only fails when the display
// reports no configuration at all. Callers of a translucent chain must
// check Selection.AlphaDropped before relying on translucency.
package chooser

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"gioui.org/eglview/driver"
	"gioui.org/eglview/internal/log"
)

// PixelFormat is a requested or reported framebuffer format, in bits
// per channel.
type PixelFormat struct {
	Red, Green, Blue, Alpha int
	Depth, Stencil          int
}

// Filter lists attribute bits a configuration must have to be
// considered at all.
type Filter struct {
	// Renderable is the required EGL_RENDERABLE_TYPE mask.
	Renderable int32
	// Surface is the required EGL_SURFACE_TYPE mask.
	Surface int32
}

// Chain is an ordered list of pixel formats, most preferred first.
type Chain struct {
	Links  []PixelFormat
	Filter Filter
	// Translucent records that the caller needs an alpha channel.
	Translucent bool
}

// Candidate is a configuration reported by the driver together with
// its attributes.
type Candidate struct {
	Config     driver.Config
	ID         int
	Format     PixelFormat
	Samples    int
	Renderable int32
	Surface    int32
}

// Selection is the outcome of choosing from a Chain.
type Selection struct {
	Candidate
	// Link is the index of the chain link that selected the candidate.
	Link int
	// Exact reports whether the candidate's color channels match
	// Link exactly.
	Exact bool
	// Requested is the format of the first link.
	Requested PixelFormat
	// Wanted is the format of the selecting link.
	Wanted PixelFormat
	// Translucent is copied from the chain.
	Translucent bool
}

// ErrNoConfig is returned when the display reports no configuration.
var ErrNoConfig = errors.New("chooser: no EGL configuration available")

// depthWeight scales depth buffer mismatches in the closest-match
// distance.
const depthWeight = 2

func (f PixelFormat) String() string {
	return fmt.Sprintf("%d/%d/%d/%d/%d/%d", f.Red, f.Green, f.Blue, f.Alpha, f.Depth, f.Stencil)
}

func (f PixelFormat) sameColor(o PixelFormat) bool {
	return f.Red == o.Red && f.Green == o.Green && f.Blue == o.Blue && f.Alpha == o.Alpha
}

// covers reports whether f has at least the depth and stencil bits
// of want.
func (f PixelFormat) covers(want PixelFormat) bool {
	return f.Depth >= want.Depth && f.Stencil >= want.Stencil
}

// Distance measures how far f is from want. Depth mismatches count
// double.
func (f PixelFormat) Distance(want PixelFormat) int {
	return abs(f.Red-want.Red) + abs(f.Green-want.Green) + abs(f.Blue-want.Blue) +
		abs(f.Alpha-want.Alpha) + depthWeight*abs(f.Depth-want.Depth) + abs(f.Stencil-want.Stencil)
}

// Degraded reports whether the selection is anything but an exact
// match for the first link with enough depth and stencil bits.
func (s Selection) Degraded() bool {
	return s.Link > 0 || !s.Exact || !s.Format.covers(s.Wanted)
}

// AlphaDropped reports whether translucency was requested but the
// selected configuration has no alpha channel.
func (s Selection) AlphaDropped() bool {
	return s.Translucent && s.Format.Alpha == 0
}

func (f Filter) accepts(c Candidate) bool {
	return c.Renderable&f.Renderable == f.Renderable && c.Surface&f.Surface == f.Surface
}

// Enumerate returns every configuration of disp with its attributes.
func Enumerate(drv driver.Driver, disp driver.Display) ([]Candidate, error) {
	cfgs, err := drv.Configs(disp)
	if err != nil {
		return nil, errors.Wrap(err, "chooser: eglGetConfigs")
	}
	cands := make([]Candidate, 0, len(cfgs))
	for _, cfg := range cfgs {
		c := Candidate{Config: cfg}
		attrs := []struct {
			attr int32
			dst  *int
		}{
			{driver.RedSize, &c.Format.Red},
			{driver.GreenSize, &c.Format.Green},
			{driver.BlueSize, &c.Format.Blue},
			{driver.AlphaSize, &c.Format.Alpha},
			{driver.DepthSize, &c.Format.Depth},
			{driver.StencilSize, &c.Format.Stencil},
			{driver.Samples, &c.Samples},
			{driver.ConfigID, &c.ID},
		}
		ok := true
		for _, a := range attrs {
			v, found := drv.ConfigAttrib(disp, cfg, a.attr)
			if !found {
				ok = false
				break
			}
			*a.dst = int(v)
		}
		if !ok {
			log.L().Debug("skipping unreadable config", "config", uintptr(cfg), "err", drv.Error())
			continue
		}
		c.Renderable, _ = drv.ConfigAttrib(disp, cfg, driver.RenderableType)
		c.Surface, _ = drv.ConfigAttrib(disp, cfg, driver.SurfaceType)
		cands = append(cands, c)
	}
	return cands, nil
}

// Choose selects a candidate. It fails only if cands is empty or the
// chain has no links.
func (ch Chain) Choose(cands []Candidate) (Selection, error) {
	if len(ch.Links) == 0 {
		return Selection{}, errors.New("chooser: empty chain")
	}
	var usable []Candidate
	for _, c := range cands {
		if ch.Filter.accepts(c) {
			usable = append(usable, c)
		}
	}
	for i, want := range ch.Links {
		var exact []Candidate
		for _, c := range usable {
			if c.Format.sameColor(want) {
				exact = append(exact, c)
			}
		}
		if len(exact) == 0 {
			continue
		}
		return ch.selection(closest(exact, want), i, true), nil
	}
	last := len(ch.Links) - 1
	pool := usable
	if len(pool) == 0 {
		pool = cands
	}
	if len(pool) == 0 {
		return Selection{}, ErrNoConfig
	}
	return ch.selection(closest(pool, ch.Links[last]), last, false), nil
}

func (ch Chain) selection(c Candidate, link int, exact bool) Selection {
	return Selection{
		Candidate:   c,
		Link:        link,
		Exact:       exact,
		Requested:   ch.Links[0],
		Wanted:      ch.Links[link],
		Translucent: ch.Translucent,
	}
}

// closest returns the candidate nearest to want, preferring those
// with enough depth and stencil bits. Ties keep driver order.
func closest(cands []Candidate, want PixelFormat) Candidate {
	ranked := slices.Clone(cands)
	slices.SortStableFunc(ranked, func(a, b Candidate) int {
		ac, bc := a.Format.covers(want), b.Format.covers(want)
		if ac != bc {
			if ac {
				return -1
			}
			return 1
		}
		return a.Format.Distance(want) - b.Format.Distance(want)
	})
	return ranked[0]
}

// ChooseConfig enumerates the configurations of disp and chooses one.
func (ch Chain) ChooseConfig(drv driver.Driver, disp driver.Display) (Selection, error) {
	cands, err := Enumerate(drv, disp)
	if err != nil {
		return Selection{}, err
	}
	sel, err := ch.Choose(cands)
	if err != nil {
		return Selection{}, err
	}
	l := log.L()
	l.Info("selected EGL config", "id", sel.ID, "format", sel.Format.String(), "link", sel.Link, "candidates", len(cands))
	if sel.Degraded() {
		l.Warn("EGL config degraded", "requested", sel.Requested.String(), "got", sel.Format.String(), "alphaDropped", sel.AlphaDropped())
	}
	return sel, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
