// SPDX-License-Identifier: Unlicense OR MIT

package offscreen_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/eglview/backend"
	"gioui.org/eglview/driver"
	"gioui.org/eglview/driver/drivertest"
	"gioui.org/eglview/offscreen"
)

func newManager(t *testing.T) (*offscreen.Manager, *drivertest.Driver) {
	t.Helper()
	drv := drivertest.New(
		drivertest.RGBA(8, 8, 8, 8, 24, 0),
		drivertest.RGBA(5, 6, 5, 0, 16, 0),
	)
	disp, err := drv.Display(driver.DefaultDisplay)
	require.NoError(t, err)
	b, err := backend.New(drv, backend.Options{Translucent: true})
	require.NoError(t, err)
	return offscreen.New(drv, disp, b), drv
}

func TestRoundTrip(t *testing.T) {
	m, drv := newManager(t)
	require.False(t, m.Exists())

	require.NoError(t, m.Create())
	assert.True(t, m.Exists())
	assert.Equal(t, 1, drv.LiveContexts())
	calls := drv.ContextCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, driver.Config(1), calls[0].Config)

	require.NoError(t, m.Destroy())
	assert.False(t, m.Exists())
	assert.Zero(t, drv.LiveContexts())

	// Second destroy is a no-op.
	require.NoError(t, m.Destroy())
	assert.Equal(t, 1, countCalls(drv, "DestroyContext"))

	assert.True(t, errors.Is(m.SetCurrent(true), offscreen.ErrNoContext))
}

func TestCreateFailure(t *testing.T) {
	m, drv := newManager(t)
	drv.SetFailContext(true)
	err := m.Create()
	assert.True(t, errors.Is(err, backend.ErrContextCreation))
	assert.False(t, m.Exists())
	assert.True(t, errors.Is(m.SetCurrent(true), offscreen.ErrNoContext))

	// A later attempt can succeed.
	drv.SetFailContext(false)
	require.NoError(t, m.Create())
	require.NoError(t, m.Destroy())
}

func TestDoubleCreateRejected(t *testing.T) {
	m, drv := newManager(t)
	require.NoError(t, m.Create())
	assert.True(t, errors.Is(m.Create(), offscreen.ErrContextExists))
	assert.Equal(t, 1, drv.LiveContexts())
	require.NoError(t, m.Destroy())
}

func TestSetCurrentSurfaceless(t *testing.T) {
	m, drv := newManager(t)
	require.NoError(t, m.SetCurrent(false))
	require.NoError(t, m.Create())
	require.NoError(t, m.SetCurrent(true))
	assert.NotEqual(t, driver.NoContext, drv.Current())
	require.NoError(t, m.SetCurrent(false))
	assert.Equal(t, driver.NoContext, drv.Current())
	require.NoError(t, m.Destroy())

	var binds []string
	for _, c := range drv.Calls() {
		if c == "MakeCurrent" || c == "MakeCurrent(none)" || c == "MakeCurrent(surfaceless)" {
			binds = append(binds, c)
		}
	}
	assert.Equal(t, []string{"MakeCurrent(none)", "MakeCurrent(surfaceless)", "MakeCurrent(none)"}, binds)
}

func TestWorker(t *testing.T) {
	m, drv := newManager(t)
	require.NoError(t, m.Create())
	w, err := offscreen.StartWorker(context.Background(), m)
	require.NoError(t, err)

	var seen []driver.Context
	for i := 0; i < 3; i++ {
		require.NoError(t, w.Submit(func(ctx context.Context) error {
			seen = append(seen, drv.Current())
			return nil
		}))
	}
	require.NoError(t, w.Close())
	require.Len(t, seen, 3)
	for _, c := range seen {
		assert.NotEqual(t, driver.NoContext, c)
	}
	assert.Equal(t, driver.NoContext, drv.Current())
	require.NoError(t, m.Destroy())
}

func TestWorkerError(t *testing.T) {
	m, _ := newManager(t)
	_, err := offscreen.StartWorker(context.Background(), m)
	assert.True(t, errors.Is(err, offscreen.ErrNoContext))

	require.NoError(t, m.Create())
	w, err := offscreen.StartWorker(context.Background(), m)
	require.NoError(t, err)
	upload := errors.New("upload failed")
	require.NoError(t, w.Submit(func(context.Context) error { return upload }))
	assert.Equal(t, upload, w.Close())
	require.NoError(t, m.Destroy())
}

func TestWorkerClosed(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.Create())
	w, err := offscreen.StartWorker(context.Background(), m)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	err = w.Submit(func(context.Context) error { return nil })
	assert.True(t, errors.Is(err, offscreen.ErrWorkerClosed))
	require.NoError(t, m.Destroy())
}

func TestWorkerCloseKeepsError(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.Create())
	w, err := offscreen.StartWorker(context.Background(), m)
	require.NoError(t, err)
	upload := errors.New("upload failed")
	require.NoError(t, w.Submit(func(context.Context) error { return upload }))
	assert.Equal(t, upload, w.Close())
	assert.Equal(t, upload, w.Close())
	require.NoError(t, m.Destroy())
}

func countCalls(drv *drivertest.Driver, name string) int {
	n := 0
	for _, c := range drv.Calls() {
		if c == name {
			n++
		}
	}
	return n
}
