// SPDX-License-Identifier: Unlicense OR MIT

// Package lifecycle forwards host pause and resume transitions to the
// renderer and the engine runtime, in order, on the render thread.
package lifecycle

import (
	"sync"

	mobile "golang.org/x/mobile/event/lifecycle"

	"gioui.org/eglview/internal/log"
)

// State is the state of a Bridge.
type State uint8

const (
	// Active is the initial state; the surface is ready to render.
	Active State = iota
	Paused
)

// Renderer receives activity transitions on the render thread.
type Renderer interface {
	OnActivityResumed()
	OnActivityPaused()
}

// Engine receives focus notifications on the render thread.
type Engine interface {
	FocusIn()
	FocusOut()
}

// Queue runs tasks serially, in the order queued.
type Queue interface {
	Queue(f func())
}

// Bridge translates host pause and resume calls into notifications.
// OnPause and OnResume return immediately; the notifications run later
// on the queue.
type Bridge struct {
	queue    Queue
	renderer Renderer
	engine   Engine
	// Hook, if set, runs in the same task as the notifications: first
	// when pausing, last when resuming. Set it before the first
	// transition.
	Hook func(s State)

	mu    sync.Mutex
	state State
}

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

func New(q Queue, r Renderer, e Engine) *Bridge {
	return &Bridge{queue: q, renderer: r, engine: e}
}

// State returns the state as of the last OnPause or OnResume call.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bridge) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
	log.L().Debug("lifecycle transition", "state", s.String())
}

// OnPause stops engine focus, then pauses the renderer.
func (b *Bridge) OnPause() {
	b.setState(Paused)
	b.queue.Queue(func() {
		if b.Hook != nil {
			b.Hook(Paused)
		}
		b.engine.FocusOut()
		b.renderer.OnActivityPaused()
	})
}

// OnResume resumes the renderer, then restores engine focus.
func (b *Bridge) OnResume() {
	b.setState(Active)
	b.queue.Queue(func() {
		b.renderer.OnActivityResumed()
		b.engine.FocusIn()
		if b.Hook != nil {
			b.Hook(Active)
		}
	})
}

// Handler receives pause and resume transitions.
type Handler interface {
	OnPause()
	OnResume()
}

// Dispatch maps a golang.org/x/mobile lifecycle event crossing the
// focused stage to h.OnResume or h.OnPause. It reports whether e
// caused a transition.
func Dispatch(e mobile.Event, h Handler) bool {
	switch e.Crosses(mobile.StageFocused) {
	case mobile.CrossOn:
		h.OnResume()
		return true
	case mobile.CrossOff:
		h.OnPause()
		return true
	}
	return false
}

// HandleEvent is Dispatch(e, b).
func (b *Bridge) HandleEvent(e mobile.Event) bool {
	return Dispatch(e, b)
}
