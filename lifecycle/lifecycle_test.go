// SPDX-License-Identifier: Unlicense OR MIT

package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	mobile "golang.org/x/mobile/event/lifecycle"

	"gioui.org/eglview/lifecycle"
)

// queue collects tasks until run.
type queue struct {
	tasks []func()
}

func (q *queue) Queue(f func()) { q.tasks = append(q.tasks, f) }

func (q *queue) run() {
	for len(q.tasks) > 0 {
		t := q.tasks[0]
		q.tasks = q.tasks[1:]
		t()
	}
}

type recorder struct {
	events []string
}

func (r *recorder) OnActivityResumed() { r.events = append(r.events, "renderer resumed") }
func (r *recorder) OnActivityPaused()  { r.events = append(r.events, "renderer paused") }
func (r *recorder) FocusIn()           { r.events = append(r.events, "focus in") }
func (r *recorder) FocusOut()          { r.events = append(r.events, "focus out") }

func newBridge() (*lifecycle.Bridge, *queue, *recorder) {
	q := new(queue)
	r := new(recorder)
	return lifecycle.New(q, r, r), q, r
}

func TestInitialState(t *testing.T) {
	b, _, _ := newBridge()
	assert.Equal(t, lifecycle.Active, b.State())
}

func TestAsynchronous(t *testing.T) {
	b, q, r := newBridge()
	b.OnPause()
	assert.Equal(t, lifecycle.Paused, b.State())
	assert.Empty(t, r.events)
	q.run()
	assert.Equal(t, []string{"focus out", "renderer paused"}, r.events)
}

func TestResumeThenPause(t *testing.T) {
	b, q, r := newBridge()
	b.OnResume()
	b.OnPause()
	q.run()
	assert.Equal(t, []string{
		"renderer resumed", "focus in",
		"focus out", "renderer paused",
	}, r.events)
	assert.Equal(t, lifecycle.Paused, b.State())
}

func TestPauseThenResume(t *testing.T) {
	b, q, r := newBridge()
	b.OnPause()
	b.OnResume()
	q.run()
	assert.Equal(t, []string{
		"focus out", "renderer paused",
		"renderer resumed", "focus in",
	}, r.events)
	assert.Equal(t, lifecycle.Active, b.State())
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		from, to mobile.Stage
		want     []string
	}{
		{mobile.StageVisible, mobile.StageFocused, []string{"renderer resumed", "focus in"}},
		{mobile.StageFocused, mobile.StageAlive, []string{"focus out", "renderer paused"}},
		{mobile.StageDead, mobile.StageVisible, nil},
	}
	for _, tc := range tests {
		b, q, r := newBridge()
		handled := b.HandleEvent(mobile.Event{From: tc.from, To: tc.to})
		q.run()
		assert.Equal(t, tc.want != nil, handled)
		assert.Equal(t, tc.want, r.events)
	}
}

func TestHookSharesTask(t *testing.T) {
	b, q, r := newBridge()
	b.Hook = func(s lifecycle.State) {
		r.events = append(r.events, "hook "+s.String())
	}
	b.OnPause()
	b.OnResume()
	// One task per transition: nothing can run between the hook and
	// the notifications.
	assert.Len(t, q.tasks, 2)
	q.run()
	assert.Equal(t, []string{
		"hook paused", "focus out", "renderer paused",
		"renderer resumed", "focus in", "hook active",
	}, r.events)
}
