package frame

import (
	"sync"
	"time"
)

// Manual runs callbacks only when Frame is called. Time advances by one frame
// per call, starting at the Unix epoch.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	next  Handle
	queue []request
}

func NewManual() *Manual {
	return &Manual{now: time.Unix(0, 0)}
}

func (m *Manual) Request(callback Callback) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.queue = append(m.queue, request{handle: m.next, callback: callback})
	return m.next
}

func (m *Manual) Cancel(handle Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, req := range m.queue {
		if req.handle == handle {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Frame advances the clock and runs the callbacks queued before the call.
// It returns how many ran.
func (m *Manual) Frame() int {
	m.mu.Lock()
	m.now = m.now.Add(time.Second / Rate)
	now := m.now
	batch := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, req := range batch {
		req.callback(now)
	}
	return len(batch)
}

// RunUntilIdle calls Frame until nothing is pending or limit frames ran.
// It returns the number of frames that ran callbacks.
func (m *Manual) RunUntilIdle(limit int) int {
	frames := 0
	for frames < limit && m.Pending() > 0 {
		m.Frame()
		frames++
	}
	return frames
}
