// Package raster provides an in-memory bitmap surface drawn with gogpu/gg.
package raster

import (
	"arc/device"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"
)

type Surface struct {
	dc *gg.Context
}

func NewSurface(width, height int) *Surface {
	return &Surface{dc: gg.NewContext(width, height)}
}

func (s *Surface) Size() device.Size {
	return device.Size{Width: s.dc.Width(), Height: s.dc.Height()}
}

func (s *Surface) Context() (device.Context, error) {
	return &ggContext{dc: s.dc}, nil
}

// Resize reallocates the bitmap. Contents are discarded.
func (s *Surface) Resize(width, height int) error {
	return s.dc.Resize(width, height)
}

func (s *Surface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}

func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

func (s *Surface) Close() error {
	return s.dc.Close()
}

type ggContext struct {
	dc *gg.Context
}

var lineCaps = map[device.LineCap]gg.LineCap{
	device.CapButt:   gg.LineCapButt,
	device.CapRound:  gg.LineCapRound,
	device.CapSquare: gg.LineCapSquare,
}

func (c *ggContext) SetLineWidth(width float64) {
	c.dc.SetLineWidth(width)
}

func (c *ggContext) SetLineCap(lineCap device.LineCap) {
	c.dc.SetLineCap(lineCaps[lineCap])
}

func (c *ggContext) SetStrokeColor(col color.Color) {
	c.dc.SetColor(col)
}

func (c *ggContext) SetStrokeGradient(gradient device.LinearGradient) {
	brush := gg.NewLinearGradientBrush(gradient.X0, gradient.Y0, gradient.X1, gradient.Y1)
	for _, stop := range gradient.Stops {
		brush.AddColorStop(stop.Offset, gg.FromColor(stop.Color))
	}
	c.dc.SetStrokeBrush(brush)
}

func (c *ggContext) BeginPath() {
	c.dc.ClearPath()
}

func (c *ggContext) Arc(x, y, r, start, end float64, counterclockwise bool) {
	from, to := device.ArcSweep(start, end, counterclockwise)
	if to == from {
		return
	}
	c.dc.NewSubPath()
	c.dc.DrawArc(x, y, r, from, to)
}

func (c *ggContext) Stroke() error {
	return c.dc.Stroke()
}

func (c *ggContext) ClearRect(x, y, width, height float64) {
	w, h := c.dc.Width(), c.dc.Height()
	x0 := max(int(math.Floor(x)), 0)
	y0 := max(int(math.Floor(y)), 0)
	x1 := min(int(math.Ceil(x+width)), w)
	y1 := min(int(math.Ceil(y+height)), h)
	if x0 == 0 && y0 == 0 && x1 == w && y1 == h {
		c.dc.Clear()
		return
	}
	pixmap := c.dc.ResizeTarget()
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			pixmap.SetPixel(px, py, gg.Transparent)
		}
	}
}
