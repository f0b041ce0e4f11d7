package device

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArcSweep(t *testing.T) {
	for _, tc := range []struct {
		start, end float64
		ccw        bool
		sweep      float64
	}{
		{0, math.Pi, false, math.Pi},
		{0, 3 * math.Pi / 2, false, 3 * math.Pi / 2},
		{-math.Pi / 2, 3 * math.Pi / 2, false, 2 * math.Pi},
		{-math.Pi, 3 * math.Pi / 2, false, 2 * math.Pi},
		{math.Pi, math.Pi / 2, false, 3 * math.Pi / 2},
		{1, 1, false, 0},
		{math.Pi, 0, true, math.Pi},
		{0, math.Pi / 2, true, 3 * math.Pi / 2},
		{3 * math.Pi, 0, true, 2 * math.Pi},
	} {
		from, to := ArcSweep(tc.start, tc.end, tc.ccw)
		if math.Abs(to-from-tc.sweep) > 1e-9 {
			t.Error("ArcSweep", tc.start, tc.end, tc.ccw, "expected sweep", tc.sweep, "got", to-from)
		}
	}
}

func TestParseLineCap(t *testing.T) {
	for name, want := range map[string]LineCap{"butt": CapButt, "round": CapRound, "square": CapSquare} {
		got, err := ParseLineCap(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, name, got.String())
	}
	_, err := ParseLineCap("Round")
	require.Error(t, err)
}

func TestGradientParam(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0).
		AddColorStop(0, color.Black).
		AddColorStop(1, color.White)
	require.Len(t, g.Stops, 2)
	require.Equal(t, 0.0, g.Param(-5, 3))
	require.Equal(t, 0.5, g.Param(5, 100))
	require.Equal(t, 1.0, g.Param(20, 0))
	require.Equal(t, 0.0, NewLinearGradient(1, 1, 1, 1).Param(5, 5))
}

type fakeSurface struct{}

func (fakeSurface) Size() Size                { return Size{Width: 1, Height: 1} }
func (fakeSurface) Context() (Context, error) { return nil, nil }

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup("canvas")
	require.ErrorIs(t, err, ErrSurfaceNotFound)

	reg.Register("canvas", fakeSurface{})
	surface, err := reg.Lookup("canvas")
	require.NoError(t, err)
	require.Equal(t, Size{Width: 1, Height: 1}, surface.Size())

	reg.Remove("canvas")
	_, err = reg.Lookup("canvas")
	require.ErrorIs(t, err, ErrSurfaceNotFound)
}
