// SPDX-License-Identifier: Unlicense OR MIT

package offscreen

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrWorkerClosed is returned by Submit after Close.
var ErrWorkerClosed = errors.New("offscreen: worker closed")

// Worker runs functions on a dedicated OS thread that keeps the
// offscreen context current. It is the hand-off protocol for callers
// that don't synchronize Manager themselves.
type Worker struct {
	tasks chan func(context.Context) error
	ctx   context.Context
	g     *errgroup.Group

	mu     sync.Mutex
	closed bool
	once   sync.Once
	err    error
}

// StartWorker makes the offscreen context of m current on a new OS
// thread. m must not be used by other goroutines until Close returns.
// The worker stops at the first task error or when ctx is done.
func StartWorker(ctx context.Context, m *Manager) (*Worker, error) {
	g, gctx := errgroup.WithContext(ctx)
	w := &Worker{
		tasks: make(chan func(context.Context) error),
		ctx:   gctx,
		g:     g,
	}
	ready := make(chan error, 1)
	g.Go(func() error {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if err := m.SetCurrent(true); err != nil {
			ready <- err
			return err
		}
		ready <- nil
		defer m.SetCurrent(false)
		for {
			select {
			case f, ok := <-w.tasks:
				if !ok {
					return nil
				}
				if err := f(gctx); err != nil {
					return err
				}
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})
	if err := <-ready; err != nil {
		g.Wait()
		return nil, err
	}
	return w, nil
}

// Submit hands f to the worker thread and returns once the worker has
// accepted it. It returns an error if the worker has stopped or
// was closed.
func (w *Worker) Submit(f func(ctx context.Context) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWorkerClosed
	}
	select {
	case w.tasks <- f:
		return nil
	case <-w.ctx.Done():
		return w.ctx.Err()
	}
}

// Close waits for the submitted tasks, releases the context from the
// worker thread and returns the first task error. Later calls return
// the same result.
func (w *Worker) Close() error {
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.tasks)
		w.mu.Unlock()
		w.err = w.g.Wait()
	})
	return w.err
}
