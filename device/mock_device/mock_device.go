package mock_device

import (
	"arc/device"
	"errors"
	"image/color"
	"sync"
)

type Call struct {
	Op       string
	Args     []float64
	LineCap  device.LineCap
	Color    color.Color
	Gradient device.LinearGradient
	CCW      bool
}

// Surface records every paint call issued against it.
type Surface struct {
	mu    sync.Mutex
	size  device.Size
	calls []Call
	fail  bool
}

var ErrNoContext = errors.New("mock: context unavailable")

func NewSurface(width, height int) *Surface {
	return &Surface{size: device.Size{Width: width, Height: height}}
}

// NewBrokenSurface returns a surface whose Context always fails.
func NewBrokenSurface() *Surface {
	return &Surface{fail: true}
}

func (s *Surface) Size() device.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

func (s *Surface) SetSize(width, height int) {
	s.mu.Lock()
	s.size = device.Size{Width: width, Height: height}
	s.mu.Unlock()
}

func (s *Surface) Context() (device.Context, error) {
	if s.fail {
		return nil, ErrNoContext
	}
	return &mockContext{surface: s}, nil
}

func (s *Surface) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Surface) Ops(op string) []Call {
	result := []Call{}
	for _, call := range s.Calls() {
		if call.Op == op {
			result = append(result, call)
		}
	}
	return result
}

// Last returns the most recent call with the given op.
func (s *Surface) Last(op string) (Call, bool) {
	calls := s.Ops(op)
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

func (s *Surface) Reset() {
	s.mu.Lock()
	s.calls = s.calls[:0]
	s.mu.Unlock()
}

func (s *Surface) record(call Call) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}

type mockContext struct {
	surface *Surface
}

func (c *mockContext) SetLineWidth(width float64) {
	c.surface.record(Call{Op: "lineWidth", Args: []float64{width}})
}

func (c *mockContext) SetLineCap(lineCap device.LineCap) {
	c.surface.record(Call{Op: "lineCap", LineCap: lineCap})
}

func (c *mockContext) SetStrokeColor(col color.Color) {
	c.surface.record(Call{Op: "strokeColor", Color: col})
}

func (c *mockContext) SetStrokeGradient(gradient device.LinearGradient) {
	c.surface.record(Call{Op: "strokeGradient", Gradient: gradient})
}

func (c *mockContext) BeginPath() {
	c.surface.record(Call{Op: "beginPath"})
}

func (c *mockContext) Arc(x, y, r, start, end float64, counterclockwise bool) {
	c.surface.record(Call{Op: "arc", Args: []float64{x, y, r, start, end}, CCW: counterclockwise})
}

func (c *mockContext) Stroke() error {
	c.surface.record(Call{Op: "stroke"})
	return nil
}

func (c *mockContext) ClearRect(x, y, width, height float64) {
	c.surface.record(Call{Op: "clearRect", Args: []float64{x, y, width, height}})
}
