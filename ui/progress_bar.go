package ui

import (
	"arc/device"
	"arc/frame"
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	quarterTurn = math.Pi / 2
	fullTurn    = 2 * math.Pi
)

var ErrNoContext = errors.New("no drawing context")

type State int

const (
	Idle State = iota
	Animating
	Stopped
)

func (s State) String() string {
	switch s {
	case Animating:
		return "animating"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Geometry is derived from the surface size by Calculate.
type Geometry struct {
	RealWidth  float64
	RealHeight float64
	Width      float64
	Height     float64
	X          float64
	Y          float64
	Radius     float64
}

// ProgressBar draws a circular progress arc on a borrowed surface.
//
// The arc always ends at the top of the circle (2π - π/2) and starts at
// -(π/2)·progress/100, so 100 is a full ring and the ring empties as progress
// falls to -300. Start counts progress down at a fixed angular speed until the
// ring is empty and then clears the surface.
type ProgressBar struct {
	mu        sync.Mutex
	surface   device.Surface
	ctx       device.Context
	options   Options
	style     style
	scheduler frame.Scheduler
	progress  float64
	geometry  Geometry
	step      float64
	handle    frame.Handle
	run       uint64
	state     State
	done      chan struct{}
	destroyed bool
}

// New resolves the options, caches the surface's drawing context and
// initializes the widget with initial. Initialization always draws the full
// ring and leaves Progress at 100, whatever initial is.
func New(surface device.Surface, initial float64, opts ...Option) (*ProgressBar, error) {
	s := settings{options: DefaultOptions()}
	for _, opt := range opts {
		opt(&s)
	}
	style, err := s.options.resolve()
	if err != nil {
		return nil, err
	}
	ctx, err := surface.Context()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoContext, err)
	}
	if s.scheduler == nil {
		s.scheduler = frame.NewTimer()
	}

	done := make(chan struct{})
	close(done)
	pb := &ProgressBar{
		surface:   surface,
		ctx:       ctx,
		options:   s.options,
		style:     style,
		scheduler: s.scheduler,
		done:      done,
	}
	if err := pb.Initialize(initial); err != nil {
		return nil, err
	}
	return pb, nil
}

// NewByID looks the surface up in reg and calls New.
func NewByID(reg *device.Registry, id string, initial float64, opts ...Option) (*ProgressBar, error) {
	surface, err := reg.Lookup(id)
	if err != nil {
		return nil, err
	}
	return New(surface, initial, opts...)
}

func (pb *ProgressBar) Initialize(value float64) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	pb.progress = value
	pb.ctx.SetStrokeColor(pb.style.stroke)
	pb.ctx.SetLineWidth(pb.style.width)
	pb.ctx.SetLineCap(pb.style.cap)
	pb.step = 360 / pb.style.timer / frame.Rate
	pb.calculate()
	return pb.render(100)
}

// Calculate recomputes the geometry from the current surface size. Call it
// after the surface is resized.
func (pb *ProgressBar) Calculate() {
	pb.mu.Lock()
	pb.calculate()
	pb.mu.Unlock()
}

func (pb *ProgressBar) calculate() {
	size := pb.surface.Size()
	lineWidth := pb.style.width
	g := Geometry{
		RealWidth:  float64(size.Width),
		RealHeight: float64(size.Height),
		Width:      float64(size.Width) - lineWidth,
		Height:     float64(size.Height) - lineWidth,
	}
	g.X = g.Width/2 + lineWidth/2
	g.Y = g.Height/2 + lineWidth/2
	g.Radius = math.Min(g.Height, g.Width) / 2
	pb.geometry = g
}

// Render draws the arc for value and makes it the current progress. A running
// animation is not interrupted and overwrites the result on its next frame.
func (pb *ProgressBar) Render(value float64) error {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.render(value)
}

func (pb *ProgressBar) render(value float64) error {
	pb.progress = value
	g := pb.geometry

	gradient := device.NewLinearGradient(g.X-g.Radius, 0, g.X, g.RealHeight).
		AddColorStop(0, pb.style.gradientStart).
		AddColorStop(1, pb.style.gradientEnd)

	pb.clear()
	pb.ctx.BeginPath()
	pb.ctx.SetStrokeGradient(gradient)
	pb.ctx.Arc(g.X, g.Y, g.Radius, startAngle(value), fullTurn-quarterTurn, false)
	return pb.ctx.Stroke()
}

func startAngle(value float64) float64 {
	return -quarterTurn * value / 100
}

// Clear erases the area measured by the last Calculate.
func (pb *ProgressBar) Clear() {
	pb.mu.Lock()
	pb.clear()
	pb.mu.Unlock()
}

func (pb *ProgressBar) clear() {
	pb.ctx.ClearRect(0, 0, pb.geometry.RealWidth, pb.geometry.RealHeight)
}

// Start animates from the current progress. It does nothing while an
// animation is already running or after Destroy.
func (pb *ProgressBar) Start() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.state == Animating || pb.destroyed {
		return
	}
	pb.state = Animating
	pb.run++
	pb.done = make(chan struct{})
	Logger().Debug("progress: animation started", "from", pb.progress, "step", pb.step, "run", pb.run)
	pb.request()
}

// request schedules the next tick of the current run. A tick that was already
// taken off the scheduler's queue when Stop ran belongs to an older run and
// does nothing.
func (pb *ProgressBar) request() {
	run := pb.run
	pb.handle = pb.scheduler.Request(func(now time.Time) { pb.tick(run, now) })
}

func (pb *ProgressBar) tick(run uint64, _ time.Time) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.state != Animating || run != pb.run {
		return
	}
	if startAngle(pb.progress) < fullTurn-quarterTurn {
		if err := pb.render(pb.progress); err != nil {
			Logger().Warn("progress: render failed", "progress", pb.progress, "err", err)
		}
		pb.progress -= pb.step
		pb.request()
		return
	}
	Logger().Debug("progress: animation finished", "progress", pb.progress)
	pb.finish()
}

// Stop cancels a running animation and clears the surface.
func (pb *ProgressBar) Stop() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.state != Animating {
		return
	}
	Logger().Debug("progress: animation stopped", "progress", pb.progress)
	pb.finish()
}

func (pb *ProgressBar) finish() {
	pb.scheduler.Cancel(pb.handle)
	pb.handle = 0
	pb.clear()
	pb.state = Stopped
	close(pb.done)
}

// Destroy stops any animation. The surface stays owned by the caller.
func (pb *ProgressBar) Destroy() {
	pb.Stop()
	pb.mu.Lock()
	pb.destroyed = true
	pb.mu.Unlock()
}

// Done is closed when the current animation ends, either on its own or through
// Stop. Before the first Start it is already closed.
func (pb *ProgressBar) Done() <-chan struct{} {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.done
}

func (pb *ProgressBar) Wait(ctx context.Context) error {
	select {
	case <-pb.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (pb *ProgressBar) Progress() float64 {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.progress
}

// Sweep is the fraction of a full circle the arc for the current progress
// covers, clamped to [0, 1].
func (pb *ProgressBar) Sweep() float64 {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if startAngle(pb.progress) >= fullTurn-quarterTurn {
		return 0
	}
	from, to := device.ArcSweep(startAngle(pb.progress), fullTurn-quarterTurn, false)
	return math.Max(0, math.Min(1, (to-from)/fullTurn))
}

func (pb *ProgressBar) Geometry() Geometry {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.geometry
}

// Step is the amount subtracted from progress every frame.
func (pb *ProgressBar) Step() float64 {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.step
}

func (pb *ProgressBar) State() State {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.state
}

func (pb *ProgressBar) Options() Options {
	return pb.options
}
