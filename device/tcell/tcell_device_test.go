package tcell

import (
	"arc/device"
	"arc/frame"
	"arc/ui"
	"image/color"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)
	return screen
}

func cellAt(screen tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	cells, width, _ := screen.GetContents()
	c := cells[y*width+x]
	if len(c.Runes) == 0 {
		return ' ', c.Style
	}
	return c.Runes[0], c.Style
}

func TestSurfaceSize(t *testing.T) {
	screen := newSimScreen(t, 20, 11)
	surface := NewSurface(screen, 0, 0, 20, 10)
	require.Equal(t, device.Size{Width: 20, Height: 20}, surface.Size())

	surface.Resize(2, 1, 8, 3)
	require.Equal(t, device.Size{Width: 8, Height: 6}, surface.Size())
}

func TestRenderRing(t *testing.T) {
	screen := newSimScreen(t, 20, 11)
	surface := NewSurface(screen, 0, 0, 20, 10)
	bar, err := ui.New(surface, 0, ui.WithScheduler(frame.NewManual()))
	require.NoError(t, err)

	r, style := cellAt(screen, 10, 0)
	require.Equal(t, '▀', r)
	fg, bg, _ := style.Decompose()
	red, green, blue := fg.RGB()
	if red < 200 || blue > 40 || green < 100 {
		t.Error("Expected a yellow-orange top pixel, got", red, green, blue)
	}
	require.NotEqual(t, tcell.ColorReset, bg)

	center, _ := cellAt(screen, 10, 5)
	require.Equal(t, ' ', center)

	bar.Clear()
	cells, _, _ := screen.GetContents()
	for i, c := range cells[:20*10] {
		if len(c.Runes) > 0 && c.Runes[0] != ' ' {
			t.Fatal("Expected a blank cell after Clear at", i, "got", string(c.Runes))
		}
	}
}

func TestCaption(t *testing.T) {
	screen := newSimScreen(t, 20, 11)
	surface := NewSurface(screen, 0, 0, 20, 10)
	surface.Caption("42%")

	text := []rune{}
	for x := 0; x < 20; x++ {
		r, _ := cellAt(screen, x, 10)
		text = append(text, r)
	}
	require.Equal(t, "        42%         ", string(text))
}

func TestCaptionComposes(t *testing.T) {
	screen := newSimScreen(t, 5, 2)
	surface := NewSurface(screen, 0, 0, 5, 1)
	surface.Caption("e\u0301")

	r, _ := cellAt(screen, 2, 1)
	require.Equal(t, 'é', r)
	blank, _ := cellAt(screen, 3, 1)
	require.Equal(t, ' ', blank)
}

func TestStrokeColor(t *testing.T) {
	screen := newSimScreen(t, 4, 2)
	surface := NewSurface(screen, 0, 0, 4, 2)
	ctx, err := surface.Context()
	require.NoError(t, err)

	ctx.SetLineWidth(4)
	ctx.SetStrokeColor(color.RGBA{R: 255, A: 255})
	ctx.BeginPath()
	ctx.Arc(2, 2, 1, 0, 2*math.Pi, false)
	require.NoError(t, ctx.Stroke())

	r, style := cellAt(screen, 1, 0)
	require.Equal(t, '▀', r)
	fg, _, _ := style.Decompose()
	red, green, blue := fg.RGB()
	require.Equal(t, []int32{255, 0, 0}, []int32{red, green, blue})
}

func TestArcCaps(t *testing.T) {
	a := arc{x: 0, y: 0, r: 10, from: 0, to: math.Pi / 2}
	x, y := 10*math.Cos(-0.05), 10*math.Sin(-0.05)

	require.False(t, a.covers(x, y, 1, device.CapButt))
	require.True(t, a.covers(x, y, 1, device.CapRound))
	require.True(t, a.covers(x, y, 1, device.CapSquare))
	require.True(t, a.covers(0, 10, 1, device.CapButt))
	require.False(t, a.covers(-10, 0, 1, device.CapRound))
	require.False(t, a.covers(0, 0, 1, device.CapRound))

	full := arc{x: 0, y: 0, r: 10, from: 0, to: 2 * math.Pi}
	require.True(t, full.covers(-10, 0, 1, device.CapButt))
}

func TestGradientBlend(t *testing.T) {
	screen := newSimScreen(t, 2, 1)
	surface := NewSurface(screen, 0, 0, 2, 1)
	ctx, _ := surface.Context()
	c := ctx.(*tcellContext)

	c.SetStrokeGradient(device.NewLinearGradient(0, 0, 10, 0).
		AddColorStop(1, color.White).
		AddColorStop(0, color.Black))
	for _, tc := range []struct {
		x, red float64
	}{
		{-1, 0},
		{5, 0.5},
		{12, 1},
	} {
		col, ok := c.colorAt(tc.x, 0)
		require.True(t, ok)
		require.InDelta(t, tc.red, col.R, 1e-9)
	}
}

func TestTransparentStroke(t *testing.T) {
	screen := newSimScreen(t, 4, 2)
	surface := NewSurface(screen, 0, 0, 4, 2)
	ctx, err := surface.Context()
	require.NoError(t, err)

	ctx.SetLineWidth(4)
	ctx.SetStrokeColor(color.Transparent)
	ctx.BeginPath()
	ctx.Arc(2, 2, 1, 0, 2*math.Pi, false)
	require.NoError(t, ctx.Stroke())

	cells, _, _ := screen.GetContents()
	for i, cell := range cells[:4*2] {
		if len(cell.Runes) > 0 && cell.Runes[0] != ' ' {
			t.Fatal("Expected a blank cell for a transparent stroke at", i, "got", string(cell.Runes))
		}
	}
}

func TestTransparentGradientStop(t *testing.T) {
	screen := newSimScreen(t, 2, 1)
	surface := NewSurface(screen, 0, 0, 2, 1)
	ctx, _ := surface.Context()
	c := ctx.(*tcellContext)

	c.SetStrokeGradient(device.NewLinearGradient(0, 0, 10, 0).
		AddColorStop(0, color.White).
		AddColorStop(1, color.Transparent))

	col, ok := c.colorAt(2, 0)
	require.True(t, ok)
	require.Equal(t, 1.0, col.R)
	_, ok = c.colorAt(8, 0)
	require.False(t, ok)
}
