// SPDX-License-Identifier: Unlicense OR MIT

package eglview

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/touch"
)

type (
	KeyEvent    = key.Event
	MotionEvent = touch.Event
)

// Input consumes raw input events. Each method reports whether the
// event was consumed.
type Input interface {
	InitInputDevices()
	Touch(e MotionEvent) bool
	Key(e KeyEvent) bool
	GenericMotion(e MotionEvent) bool
}

// GestureDetector observes every touch event before Input does.
type GestureDetector interface {
	Touch(e MotionEvent)
}

// InitInputDevices forwards to the input handler.
func (v *View) InitInputDevices() {
	if in := v.cfg.Input; in != nil {
		in.InitInputDevices()
	}
}

// Touch feeds e to the gesture detector, then to the input handler.
func (v *View) Touch(e MotionEvent) bool {
	if g := v.cfg.Gestures; g != nil {
		g.Touch(e)
	}
	if in := v.cfg.Input; in != nil {
		return in.Touch(e)
	}
	return false
}

// Key offers e to the input handler, then to the host.
func (v *View) Key(e KeyEvent) bool {
	if in := v.cfg.Input; in != nil && in.Key(e) {
		return true
	}
	return v.cfg.Host.DefaultKey(e)
}

// GenericMotion offers e to the input handler, then to the host.
func (v *View) GenericMotion(e MotionEvent) bool {
	if in := v.cfg.Input; in != nil && in.GenericMotion(e) {
		return true
	}
	return v.cfg.Host.DefaultGenericMotion(e)
}

// OnBackPressed forwards to the engine.
func (v *View) OnBackPressed() {
	v.cfg.Engine.OnBackPressed()
}
