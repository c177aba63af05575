// SPDX-License-Identifier: Unlicense OR MIT

package eglview

import (
	"gioui.org/eglview/driver"
	"gioui.org/eglview/internal/log"
)

// The functions in this file run on the render thread.

func (v *View) createContext() error {
	ctx, err := v.backend.CreateContext(v.disp, v.sel.Config)
	if err != nil {
		return err
	}
	v.ctx = ctx
	v.created = false
	return nil
}

func (v *View) destroyContext() {
	if v.ctx == driver.NoContext {
		return
	}
	if err := v.backend.DestroyContext(v.disp, v.ctx); err != nil {
		log.L().Warn("destroying primary context", "err", err)
	}
	v.ctx = driver.NoContext
}

func (v *View) setSize(width, height int) {
	if width != v.width || height != v.height {
		v.width, v.height = width, height
		v.resized = true
	}
	v.dirty = true
}

// ensureSurface creates the surface for the attached window, if
// missing, and makes the primary context current on it.
func (v *View) ensureSurface() {
	if v.surf != driver.NoSurface || v.win == 0 || v.ctx == driver.NoContext {
		return
	}
	surf, err := v.backend.CreateSurface(v.disp, v.sel.Config, v.win)
	if err != nil {
		log.L().Warn("creating surface", "err", err)
		return
	}
	if !v.drv.MakeCurrent(v.disp, surf, surf, v.ctx) {
		log.L().Warn("binding primary context", "err", v.drv.Error())
		v.backend.DestroySurface(v.disp, surf)
		return
	}
	v.surf = surf
	v.resized = true
	if !v.created {
		v.created = true
		v.cfg.Renderer.OnSurfaceCreated()
	}
}

func (v *View) destroySurface() {
	if v.surf == driver.NoSurface {
		return
	}
	v.drv.MakeCurrent(v.disp, driver.NoSurface, driver.NoSurface, driver.NoContext)
	if err := v.backend.DestroySurface(v.disp, v.surf); err != nil {
		log.L().Warn("destroying surface", "err", err)
	}
	v.surf = driver.NoSurface
}

func (v *View) frame() bool {
	if v.paused || v.surf == driver.NoSurface {
		return false
	}
	continuous := v.cfg.Mode == RenderContinuously
	if !continuous && !v.dirty {
		return false
	}
	v.dirty = false
	if v.resized {
		v.resized = false
		v.cfg.Renderer.OnSurfaceChanged(v.width, v.height)
	}
	v.cfg.Renderer.OnDrawFrame()
	if !v.drv.SwapBuffers(v.disp, v.surf) {
		v.swapFailed(v.drv.Error())
	}
	return continuous
}

// swapFailed recovers from a failed eglSwapBuffers. A lost context is
// recreated; any other error drops the surface until the host reports
// a new one.
func (v *View) swapFailed(err driver.ErrorCode) {
	log.L().Warn("eglSwapBuffers failed", "err", err)
	v.destroySurface()
	if err != driver.ContextLost {
		v.win = 0
		return
	}
	v.destroyContext()
	if err := v.createContext(); err != nil {
		log.L().Error("recreating primary context", "err", err)
		return
	}
	v.ensureSurface()
}
