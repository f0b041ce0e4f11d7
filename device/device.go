package device

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sync"
)

// Surface is a drawing target owned by the host. Widgets borrow it.
type Surface interface {
	Size() Size
	Context() (Context, error)
}

// Context issues paint operations against a Surface. Angles are in radians,
// 0 points right and positive angles turn clockwise on screen.
type Context interface {
	SetLineWidth(width float64)
	SetLineCap(lineCap LineCap)
	SetStrokeColor(col color.Color)
	SetStrokeGradient(gradient LinearGradient)
	BeginPath()
	Arc(x, y, r, start, end float64, counterclockwise bool)
	Stroke() error
	ClearRect(x, y, width, height float64)
}

type Size struct {
	Width  int
	Height int
}

type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

var lineCapNames = map[string]LineCap{
	"butt":   CapButt,
	"round":  CapRound,
	"square": CapSquare,
}

func ParseLineCap(name string) (LineCap, error) {
	lineCap, ok := lineCapNames[name]
	if !ok {
		return CapButt, fmt.Errorf("unknown line cap %q", name)
	}
	return lineCap, nil
}

func (c LineCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "butt"
	}
}

type ColorStop struct {
	Offset float64
	Color  color.Color
}

type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

func NewLinearGradient(x0, y0, x1, y1 float64) LinearGradient {
	return LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func (g LinearGradient) AddColorStop(offset float64, col color.Color) LinearGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: col})
	return g
}

// Param projects (x, y) onto the gradient vector and returns the clamped
// position along it, 0 at the start point and 1 at the end point.
func (g LinearGradient) Param(x, y float64) float64 {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	length := dx*dx + dy*dy
	if length == 0 {
		return 0
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / length
	return math.Max(0, math.Min(1, t))
}

const fullTurn = 2 * math.Pi

// ArcSweep normalizes arc angles the way an HTML canvas does: a sweep of a full
// turn or more in the drawing direction is a whole circle, anything else wraps
// into [0, 2π). The returned angles always satisfy from <= to.
func ArcSweep(start, end float64, counterclockwise bool) (from, to float64) {
	if counterclockwise {
		start, end = end, start
	}
	if end-start >= fullTurn {
		return start, start + fullTurn
	}
	sweep := math.Mod(end-start, fullTurn)
	if sweep < 0 {
		sweep += fullTurn
	}
	return start, start + sweep
}

var ErrSurfaceNotFound = errors.New("surface not found")

// Registry resolves surfaces by identifier.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
}

func NewRegistry() *Registry {
	return &Registry{surfaces: map[string]Surface{}}
}

func (r *Registry) Register(id string, surface Surface) {
	r.mu.Lock()
	r.surfaces[id] = surface
	r.mu.Unlock()
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.surfaces, id)
	r.mu.Unlock()
}

func (r *Registry) Lookup(id string) (Surface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	surface, ok := r.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, id)
	}
	return surface, nil
}
