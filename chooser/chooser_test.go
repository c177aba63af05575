// SPDX-License-Identifier: Unlicense OR MIT

package chooser_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/eglview/chooser"
	"gioui.org/eglview/driver"
	"gioui.org/eglview/driver/drivertest"
)

var regular = chooser.Chain{
	Links: []chooser.PixelFormat{
		{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24},
		{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 16},
		{Red: 5, Green: 6, Blue: 5, Depth: 16},
	},
	Filter: chooser.Filter{Renderable: driver.OpenGLES2Bit},
}

func choose(t *testing.T, ch chooser.Chain, cfgs ...drivertest.Config) chooser.Selection {
	t.Helper()
	drv := drivertest.New(cfgs...)
	disp, err := drv.Display(driver.DefaultDisplay)
	require.NoError(t, err)
	sel, err := ch.ChooseConfig(drv, disp)
	require.NoError(t, err)
	return sel
}

func TestExactMatch(t *testing.T) {
	sel := choose(t, regular,
		drivertest.RGBA(5, 6, 5, 0, 16, 0),
		drivertest.RGBA(8, 8, 8, 8, 24, 0),
	)
	assert.Equal(t, chooser.PixelFormat{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24}, sel.Format)
	assert.Equal(t, driver.Config(2), sel.Config)
	assert.Equal(t, 0, sel.Link)
	assert.True(t, sel.Exact)
	assert.False(t, sel.Degraded())
	assert.False(t, sel.AlphaDropped())
}

func TestFallbackAlpha(t *testing.T) {
	translucent := regular
	translucent.Translucent = true
	tests := []struct {
		name    string
		chain   chooser.Chain
		dropped bool
	}{
		{"opaque", regular, false},
		{"translucent", translucent, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := choose(t, tc.chain, drivertest.RGBA(5, 6, 5, 0, 16, 0))
			assert.Equal(t, chooser.PixelFormat{Red: 5, Green: 6, Blue: 5, Depth: 16}, sel.Format)
			assert.Equal(t, 2, sel.Link)
			assert.True(t, sel.Degraded())
			assert.Equal(t, tc.dropped, sel.AlphaDropped())
		})
	}
}

func TestFirstLinkWins(t *testing.T) {
	ch := chooser.Chain{Links: []chooser.PixelFormat{
		{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24},
		{Red: 5, Green: 6, Blue: 5, Depth: 16},
	}}
	// The only RGBA8888 config lacks depth bits, but still beats an
	// exact match for the second link.
	sel := choose(t, ch,
		drivertest.RGBA(5, 6, 5, 0, 16, 0),
		drivertest.RGBA(8, 8, 8, 8, 0, 0),
	)
	assert.Equal(t, 0, sel.Link)
	assert.Equal(t, 8, sel.Format.Alpha)
	assert.True(t, sel.Exact)
	// Missing depth bits are still a degradation.
	assert.True(t, sel.Degraded())
}

func TestPrefersDepthWithinLink(t *testing.T) {
	sel := choose(t, regular,
		drivertest.RGBA(8, 8, 8, 8, 16, 0),
		drivertest.RGBA(8, 8, 8, 8, 32, 8),
		drivertest.RGBA(8, 8, 8, 8, 24, 8),
		drivertest.RGBA(8, 8, 8, 8, 24, 0),
	)
	assert.Equal(t, driver.Config(4), sel.Config)
}

func TestRenderableFilter(t *testing.T) {
	es3only := drivertest.RGBA(8, 8, 8, 8, 24, 0)
	es3only.Renderable = driver.OpenGLES3Bit
	sel := choose(t, regular, es3only, drivertest.RGBA(5, 6, 5, 0, 16, 0))
	assert.Equal(t, driver.Config(2), sel.Config)
}

func TestTerminalNeverFails(t *testing.T) {
	tests := []struct {
		name string
		cfgs []drivertest.Config
		want driver.Config
	}{
		{"closest", []drivertest.Config{
			drivertest.RGBA(10, 10, 10, 2, 0, 0),
			drivertest.RGBA(4, 4, 4, 0, 16, 0),
		}, 2},
		{"tie keeps driver order", []drivertest.Config{
			drivertest.RGBA(4, 4, 4, 0, 16, 0),
			drivertest.RGBA(4, 4, 4, 0, 16, 0),
		}, 1},
		{"none renderable", []drivertest.Config{
			{Red: 8, Green: 8, Blue: 8, Renderable: 0x1},
		}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := choose(t, regular, tc.cfgs...)
			assert.Equal(t, tc.want, sel.Config)
			assert.Equal(t, len(regular.Links)-1, sel.Link)
			assert.False(t, sel.Exact)
		})
	}
}

func TestNoConfig(t *testing.T) {
	drv := drivertest.New()
	disp, err := drv.Display(driver.DefaultDisplay)
	require.NoError(t, err)
	_, err = regular.ChooseConfig(drv, disp)
	assert.True(t, errors.Is(err, chooser.ErrNoConfig))

	_, err = chooser.Chain{}.Choose([]chooser.Candidate{{}})
	assert.Error(t, err)
}

func TestSurfaceFilter(t *testing.T) {
	ch := chooser.Chain{
		Links:  []chooser.PixelFormat{{Red: 8, Green: 8, Blue: 8, Alpha: 8}},
		Filter: chooser.Filter{Renderable: driver.OpenGLES3Bit, Surface: driver.WindowBit | driver.PbufferBit},
	}
	windowOnly := drivertest.RGBA(8, 8, 8, 8, 0, 0)
	windowOnly.Surface = driver.WindowBit
	sel := choose(t, ch, windowOnly, drivertest.RGBA(8, 8, 8, 8, 0, 0))
	assert.Equal(t, driver.Config(2), sel.Config)
}

func TestDistance(t *testing.T) {
	want := chooser.PixelFormat{Red: 8, Green: 8, Blue: 8, Alpha: 8, Depth: 24}
	got := chooser.PixelFormat{Red: 5, Green: 6, Blue: 5, Depth: 16}
	assert.Equal(t, 3+2+3+8+2*8, got.Distance(want))
	assert.Equal(t, "5/6/5/0/16/0", got.String())
}
