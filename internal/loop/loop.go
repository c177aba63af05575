// SPDX-License-Identifier: Unlicense OR MIT

// Package loop implements the render thread: a goroutine locked to an
// OS thread that drains a FIFO task queue between frames.
package loop

import (
	"runtime"
	"sync"
)

// Frame draws a frame on the render thread. It reports whether
// another frame should follow without waiting for new work.
type Frame func() bool

// Loop is a render thread. Its methods are safe for concurrent use.
type Loop struct {
	frame Frame

	mu    sync.Mutex
	tasks []func()
	// wake is signalled when tasks are queued or a frame is
	// requested.
	wake    chan struct{}
	stop    chan struct{}
	stopped chan struct{}
}

// New starts a render thread that runs init first, then frame whenever
// it has no tasks. The init error is returned and stops the thread.
func New(init func() error, frame Frame) (*Loop, error) {
	l := &Loop{
		frame:   frame,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	// GL operations must happen on a single OS thread, so pass the
	// initialization result through a channel.
	initErr := make(chan error)
	go func() {
		defer close(l.stopped)
		runtime.LockOSThread()
		// Don't UnlockOSThread to avoid reuse by the Go runtime.

		if init != nil {
			if err := init(); err != nil {
				initErr <- err
				return
			}
		}
		initErr <- nil
		l.run()
	}()
	if err := <-initErr; err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loop) run() {
	for {
		l.drain()
		select {
		case <-l.stop:
			// Tasks queued before Release still run.
			l.drain()
			return
		default:
		}
		if l.frame != nil && l.frame() {
			continue
		}
		select {
		case <-l.wake:
		case <-l.stop:
		}
	}
}

func (l *Loop) drain() {
	for {
		l.mu.Lock()
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			return
		}
		t := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		l.mu.Unlock()
		t()
	}
}

// Queue schedules f to run on the render thread, after every task
// queued before it and before the next frame. Queue never blocks.
func (l *Loop) Queue(f func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, f)
	l.mu.Unlock()
	l.Wake()
}

// Wake requests a frame.
func (l *Loop) Wake() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Do runs f on the render thread and waits for its result.
func (l *Loop) Do(f func() error) error {
	res := make(chan error, 1)
	l.Queue(func() {
		res <- f()
	})
	return <-res
}

// Release runs fin on the render thread after the queued tasks, then
// stops the thread. Release must be called at most once.
func (l *Loop) Release(fin func()) {
	if fin != nil {
		l.Queue(fin)
	}
	close(l.stop)
	<-l.stopped
}
