package tcell

import (
	"arc/device"
	"image/color"
	"math"
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"golang.org/x/text/unicode/norm"
)

// Surface maps a rectangle of terminal cells to a pixel grid. Every cell holds
// two vertical pixels drawn with half-block runes, so a surface of cols x lines
// cells is cols pixels wide and 2*lines pixels high.
type Surface struct {
	mu     sync.Mutex
	screen tcell.Screen
	col    int
	line   int
	cols   int
	lines  int
	ctx    *tcellContext
}

var defStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)

func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(defStyle)
	screen.Clear()
	return screen, nil
}

func NewSurface(screen tcell.Screen, col, line, cols, lines int) *Surface {
	return &Surface{screen: screen, col: col, line: line, cols: cols, lines: lines}
}

func (s *Surface) Size() device.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return device.Size{Width: s.cols, Height: s.lines * 2}
}

// Resize moves the surface to a new cell rectangle. Widgets drawing on it must
// recalculate their geometry afterwards.
func (s *Surface) Resize(col, line, cols, lines int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.col, s.line, s.cols, s.lines = col, line, cols, lines
	if s.ctx != nil {
		s.ctx.resize(cols, lines*2)
	}
}

func (s *Surface) Context() (device.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		s.ctx = newContext(s)
	}
	return s.ctx, nil
}

// Caption writes text centered on the line below the surface.
func (s *Surface) Caption(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text = norm.NFC.String(text)
	y := s.line + s.lines
	for x := s.col; x < s.col+s.cols; x++ {
		s.screen.SetContent(x, y, ' ', nil, defStyle)
	}
	x := s.col + (s.cols-ansi.PrintableRuneWidth(text))/2
	if x < s.col {
		x = s.col
	}
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, defStyle)
		x += runewidth.RuneWidth(r)
	}
	s.screen.Show()
}

type pixel struct {
	set   bool
	color colorful.Color
}

type arc struct {
	x, y, r  float64
	from, to float64
}

type stop struct {
	offset  float64
	color   colorful.Color
	visible bool
}

type tcellContext struct {
	surface   *Surface
	width     int
	height    int
	pixels    []pixel
	lineWidth float64
	lineCap   device.LineCap
	color     colorful.Color
	visible   bool
	gradient  *device.LinearGradient
	stops     []stop
	path      []arc
}

func newContext(s *Surface) *tcellContext {
	ctx := &tcellContext{surface: s, lineWidth: 1}
	ctx.resize(s.cols, s.lines*2)
	return ctx
}

func (c *tcellContext) resize(width, height int) {
	c.width, c.height = width, height
	c.pixels = make([]pixel, width*height)
}

func (c *tcellContext) SetLineWidth(width float64) {
	c.lineWidth = width
}

func (c *tcellContext) SetLineCap(lineCap device.LineCap) {
	c.lineCap = lineCap
}

func (c *tcellContext) SetStrokeColor(col color.Color) {
	c.color, c.visible = toColorful(col)
	c.gradient = nil
	c.stops = nil
}

func (c *tcellContext) SetStrokeGradient(gradient device.LinearGradient) {
	c.gradient = &gradient
	c.stops = c.stops[:0]
	for _, s := range gradient.Stops {
		col, visible := toColorful(s.Color)
		c.stops = append(c.stops, stop{offset: s.Offset, color: col, visible: visible})
	}
	sort.SliceStable(c.stops, func(i, j int) bool { return c.stops[i].offset < c.stops[j].offset })
}

func (c *tcellContext) BeginPath() {
	c.path = c.path[:0]
}

func (c *tcellContext) Arc(x, y, r, start, end float64, counterclockwise bool) {
	from, to := device.ArcSweep(start, end, counterclockwise)
	c.path = append(c.path, arc{x: x, y: y, r: r, from: from, to: to})
}

func (c *tcellContext) Stroke() error {
	c.surface.mu.Lock()
	defer c.surface.mu.Unlock()
	half := c.lineWidth / 2
	for _, a := range c.path {
		minX := int(math.Floor(a.x - a.r - c.lineWidth))
		maxX := int(math.Ceil(a.x + a.r + c.lineWidth))
		minY := int(math.Floor(a.y - a.r - c.lineWidth))
		maxY := int(math.Ceil(a.y + a.r + c.lineWidth))
		for py := max(minY, 0); py <= min(maxY, c.height-1); py++ {
			for px := max(minX, 0); px <= min(maxX, c.width-1); px++ {
				x, y := float64(px)+0.5, float64(py)+0.5
				if !a.covers(x, y, half, c.lineCap) {
					continue
				}
				if col, ok := c.colorAt(x, y); ok {
					c.pixels[py*c.width+px] = pixel{set: true, color: col}
				}
			}
		}
	}
	c.path = c.path[:0]
	c.flush()
	return nil
}

func (c *tcellContext) ClearRect(x, y, width, height float64) {
	c.surface.mu.Lock()
	defer c.surface.mu.Unlock()
	x0 := max(int(math.Floor(x)), 0)
	y0 := max(int(math.Floor(y)), 0)
	x1 := min(int(math.Ceil(x+width)), c.width)
	y1 := min(int(math.Ceil(y+height)), c.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.pixels[py*c.width+px] = pixel{}
		}
	}
	c.flush()
}

// colorAt returns the stroke color at a pixel center. Fully transparent
// colors report false and leave the pixel untouched. Cells cannot blend with
// what is under them, so between a visible and a transparent stop the nearer
// stop wins.
func (c *tcellContext) colorAt(x, y float64) (colorful.Color, bool) {
	if c.gradient == nil || len(c.stops) == 0 {
		return c.color, c.visible
	}
	t := c.gradient.Param(x, y)
	if first := c.stops[0]; t <= first.offset {
		return first.color, first.visible
	}
	for i := 1; i < len(c.stops); i++ {
		prev, next := c.stops[i-1], c.stops[i]
		if t > next.offset {
			continue
		}
		span := next.offset - prev.offset
		if span <= 0 {
			return next.color, next.visible
		}
		f := (t - prev.offset) / span
		switch {
		case prev.visible && next.visible:
			return prev.color.BlendRgb(next.color, f), true
		case f < 0.5:
			return prev.color, prev.visible
		default:
			return next.color, next.visible
		}
	}
	last := c.stops[len(c.stops)-1]
	return last.color, last.visible
}

// flush copies the pixel buffer to the screen. The surface lock must be held.
func (c *tcellContext) flush() {
	s := c.surface
	for line := 0; line < s.lines && line*2 < c.height; line++ {
		for col := 0; col < s.cols && col < c.width; col++ {
			top := c.pixels[line*2*c.width+col]
			bottom := pixel{}
			if line*2+1 < c.height {
				bottom = c.pixels[(line*2+1)*c.width+col]
			}
			r, style := cell(top, bottom)
			s.screen.SetContent(s.col+col, s.line+line, r, nil, style)
		}
	}
	s.screen.Show()
}

func cell(top, bottom pixel) (rune, tcell.Style) {
	switch {
	case top.set && bottom.set:
		return '▀', defStyle.Foreground(toTcell(top.color)).Background(toTcell(bottom.color))
	case top.set:
		return '▀', defStyle.Foreground(toTcell(top.color))
	case bottom.set:
		return '▄', defStyle.Foreground(toTcell(bottom.color))
	default:
		return ' ', defStyle
	}
}

func (a arc) covers(x, y, half float64, lineCap device.LineCap) bool {
	dx, dy := x-a.x, y-a.y
	dist := math.Hypot(dx, dy)
	onRing := math.Abs(dist-a.r) <= half
	sweep := a.to - a.from
	if sweep >= 2*math.Pi {
		return onRing
	}
	theta := math.Atan2(dy, dx)
	if onRing && sweep > 0 && angleWithin(theta, a.from, sweep) {
		return true
	}
	switch lineCap {
	case device.CapRound:
		for _, angle := range []float64{a.from, a.to} {
			ex, ey := a.x+a.r*math.Cos(angle), a.y+a.r*math.Sin(angle)
			if math.Hypot(x-ex, y-ey) <= half {
				return true
			}
		}
	case device.CapSquare:
		if a.r > 0 {
			ext := half / a.r
			return onRing && angleWithin(theta, a.from-ext, sweep+2*ext)
		}
	}
	return false
}

func angleWithin(theta, from, sweep float64) bool {
	t := math.Mod(theta-from, 2*math.Pi)
	if t < 0 {
		t += 2 * math.Pi
	}
	return t <= sweep
}

// toColorful reports false for a fully transparent color.
func toColorful(col color.Color) (colorful.Color, bool) {
	return colorful.MakeColor(col)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
