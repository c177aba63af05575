// SPDX-License-Identifier: Unlicense OR MIT

package backend_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/eglview/backend"
	"gioui.org/eglview/driver"
	"gioui.org/eglview/driver/drivertest"
)

func newBackend(t *testing.T, drv driver.Driver, opts backend.Options) (*backend.Backend, driver.Display) {
	t.Helper()
	b, err := backend.New(drv, opts)
	require.NoError(t, err)
	disp, err := drv.Display(driver.DefaultDisplay)
	require.NoError(t, err)
	return b, disp
}

func TestContextAttribs(t *testing.T) {
	tests := []struct {
		opts backend.Options
		want []int32
	}{
		{backend.Options{}, []int32{driver.ContextClientVersion, 2, driver.None}},
		{backend.Options{HigherGLProfile: true}, []int32{driver.ContextClientVersion, 3, driver.None}},
		{backend.Options{DebugContext: true}, []int32{
			driver.ContextClientVersion, 2,
			driver.ContextFlags, driver.ContextOpenGLDebugBit,
			driver.None,
		}},
		{backend.Options{Variant: backend.StereoLegacy}, []int32{driver.ContextClientVersion, 3, driver.None}},
		{backend.Options{Variant: backend.StereoOpenXR, DebugContext: true}, []int32{
			driver.ContextClientVersion, 3,
			driver.ContextMinorVersion, 1,
			driver.ContextFlags, driver.ContextOpenGLDebugBit,
			driver.None,
		}},
	}
	for _, tc := range tests {
		t.Run(tc.opts.Variant.String(), func(t *testing.T) {
			drv := drivertest.New(drivertest.RGBA(8, 8, 8, 8, 24, 0))
			b, disp := newBackend(t, drv, tc.opts)
			sel, err := b.ChooseConfig(disp)
			require.NoError(t, err)
			ctx, err := b.CreateContext(disp, sel.Config)
			require.NoError(t, err)
			calls := drv.ContextCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, tc.want, calls[0].Attribs)
			assert.Equal(t, sel.Config, calls[0].Config)
			assert.Equal(t, driver.NoContext, calls[0].Share)
			require.NoError(t, b.DestroyContext(disp, ctx))
			assert.Zero(t, drv.LiveContexts())
		})
	}
}

func TestContextCreationError(t *testing.T) {
	drv := drivertest.New(drivertest.RGBA(8, 8, 8, 8, 24, 0))
	drv.FailContext = true
	b, disp := newBackend(t, drv, backend.Options{})
	ctx, err := b.CreateContext(disp, 1)
	assert.Equal(t, driver.NoContext, ctx)
	assert.True(t, errors.Is(err, backend.ErrContextCreation))
}

func TestDoubleDestroyReported(t *testing.T) {
	drv := drivertest.New(drivertest.RGBA(8, 8, 8, 8, 24, 0))
	b, disp := newBackend(t, drv, backend.Options{})
	ctx, err := b.CreateContext(disp, 1)
	require.NoError(t, err)
	require.NoError(t, b.DestroyContext(disp, ctx))
	err = b.DestroyContext(disp, ctx)
	assert.Equal(t, driver.BadContext, errors.Cause(err))
}

func TestSurfaces(t *testing.T) {
	drv := drivertest.New(drivertest.RGBA(8, 8, 8, 8, 0, 0))

	regular, disp := newBackend(t, drv, backend.Options{})
	s, err := regular.CreateSurface(disp, 1, 0x42)
	require.NoError(t, err)
	require.NoError(t, regular.DestroySurface(disp, s))

	stereo, _ := newBackend(t, drv, backend.Options{Variant: backend.StereoOpenXR})
	s, err = stereo.CreateSurface(disp, 1, 0x42)
	require.NoError(t, err)
	require.NoError(t, stereo.DestroySurface(disp, s))

	assert.Equal(t, []string{
		"Display", "CreateWindowSurface", "DestroySurface",
		"Display", "CreatePbufferSurface", "DestroySurface",
	}, drv.Calls())
	assert.Equal(t, [][]int32{{driver.Width, 16, driver.Height, 16, driver.None}}, drv.PbufferAttribs())

	drv.FailSurface = true
	_, err = regular.CreateSurface(disp, 1, 0x42)
	assert.True(t, errors.Is(err, backend.ErrSurfaceCreation))
}

func TestStereoChain(t *testing.T) {
	deep := drivertest.RGBA(8, 8, 8, 8, 24, 0)
	es2 := drivertest.RGBA(8, 8, 8, 8, 0, 0)
	es2.Renderable = driver.OpenGLES2Bit
	drv := drivertest.New(deep, es2, drivertest.RGBA(8, 8, 8, 8, 0, 0))
	for _, v := range []backend.Variant{backend.StereoLegacy, backend.StereoOpenXR} {
		b, disp := newBackend(t, drv, backend.Options{Variant: v})
		sel, err := b.ChooseConfig(disp)
		require.NoError(t, err)
		assert.Equal(t, driver.Config(3), sel.Config, v.String())
	}
}

func TestHigherProfileFilter(t *testing.T) {
	es2 := drivertest.RGBA(8, 8, 8, 8, 24, 0)
	es2.Renderable = driver.OpenGLES2Bit
	drv := drivertest.New(es2, drivertest.RGBA(8, 8, 8, 8, 16, 0))
	b, disp := newBackend(t, drv, backend.Options{HigherGLProfile: true})
	sel, err := b.ChooseConfig(disp)
	require.NoError(t, err)
	assert.Equal(t, driver.Config(2), sel.Config)
}

func TestParseVariant(t *testing.T) {
	for _, v := range []backend.Variant{backend.Regular, backend.StereoLegacy, backend.StereoOpenXR} {
		got, err := backend.ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := backend.ParseVariant("mono")
	assert.Error(t, err)
	_, err = backend.New(drivertest.New(), backend.Options{Variant: 7})
	assert.Error(t, err)
}

func TestTranslucentChain(t *testing.T) {
	for _, translucent := range []bool{false, true} {
		drv := drivertest.New(drivertest.RGBA(5, 6, 5, 0, 16, 0))
		b, disp := newBackend(t, drv, backend.Options{Translucent: translucent})
		assert.Equal(t, translucent, b.Chain().Translucent)
		sel, err := b.ChooseConfig(disp)
		require.NoError(t, err)
		assert.Equal(t, translucent, sel.AlphaDropped())
	}
}
