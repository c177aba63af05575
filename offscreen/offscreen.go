// SPDX-License-Identifier: Unlicense OR MIT

// Package offscreen manages a secondary, surfaceless rendering context
// for preparing GPU resources away from the render thread.
//
// The secondary context uses the same configuration chain as the
// primary context, so the two are format compatible. A context can be
// current on at most one thread: the thread that last called
// SetCurrent(true) owns it until it calls SetCurrent(false). Manager
// does no locking of its own; use a Worker or synchronize externally.
// Destroying the context while another thread has it current is
// undefined.
package offscreen

import (
	"github.com/pkg/errors"

	"gioui.org/eglview/chooser"
	"gioui.org/eglview/driver"
	"gioui.org/eglview/internal/log"
	"gioui.org/eglview/internal/thread"
)

// Factory chooses configurations and creates contexts. It is
// implemented by *backend.Backend.
type Factory interface {
	ChooseConfig(disp driver.Display) (chooser.Selection, error)
	CreateContext(disp driver.Display, cfg driver.Config) (driver.Context, error)
	DestroyContext(disp driver.Display, ctx driver.Context) error
}

var (
	// ErrNoContext is returned by SetCurrent(true) when no context
	// exists. It indicates a programming error.
	ErrNoContext = errors.New("offscreen: no offscreen context")
	// ErrContextExists is returned by Create when a context already
	// exists.
	ErrContextExists = errors.New("offscreen: offscreen context already exists")
)

// Manager owns at most one offscreen context.
type Manager struct {
	drv     driver.Driver
	disp    driver.Display
	factory Factory

	ctx driver.Context
	// gen counts created contexts, for diagnostics.
	gen uint64
}

func New(drv driver.Driver, disp driver.Display, f Factory) *Manager {
	return &Manager{drv: drv, disp: disp, factory: f}
}

// Exists reports whether an offscreen context exists.
func (m *Manager) Exists() bool {
	return m.ctx != driver.NoContext
}

// Create chooses a configuration and creates the offscreen context.
// It fails with ErrContextExists if a context exists, and leaves no
// context behind on any failure.
func (m *Manager) Create() error {
	if m.Exists() {
		return ErrContextExists
	}
	sel, err := m.factory.ChooseConfig(m.disp)
	if err != nil {
		return err
	}
	ctx, err := m.factory.CreateContext(m.disp, sel.Config)
	if err != nil {
		m.ctx = driver.NoContext
		return err
	}
	if q, ok := m.drv.(driver.ExtensionQuerier); ok && !q.HasExtension(m.disp, driver.SurfacelessExtension) {
		log.L().Warn("display lacks surfaceless contexts; binding the offscreen context may fail",
			"extension", driver.SurfacelessExtension)
	}
	m.ctx = ctx
	m.gen++
	log.L().Debug("offscreen context created", "context", uintptr(ctx), "generation", m.gen)
	return nil
}

// SetCurrent binds the offscreen context to the calling OS thread
// without a surface if active is true, and unbinds any context from
// the thread otherwise.
func (m *Manager) SetCurrent(active bool) error {
	ctx := driver.NoContext
	if active {
		if !m.Exists() {
			return ErrNoContext
		}
		ctx = m.ctx
	}
	if !m.drv.MakeCurrent(m.disp, driver.NoSurface, driver.NoSurface, ctx) {
		return errors.Wrapf(m.drv.Error(), "offscreen: eglMakeCurrent(active=%v)", active)
	}
	if log.Debugging() {
		log.L().Debug("offscreen current", "active", active, "thread", thread.ID(), "generation", m.gen)
	}
	return nil
}

// Destroy destroys the offscreen context, if any. The context is
// forgotten even if the driver reports an error.
func (m *Manager) Destroy() error {
	if !m.Exists() {
		return nil
	}
	ctx := m.ctx
	m.ctx = driver.NoContext
	if err := m.factory.DestroyContext(m.disp, ctx); err != nil {
		return err
	}
	log.L().Debug("offscreen context destroyed", "context", uintptr(ctx), "generation", m.gen)
	return nil
}
