package frame

import (
	"arc/lifecycle"
	"arc/stream"
	"context"
	"sync"
	"time"
)

// Loop is a frame clock. Every tick it runs the callbacks requested before the
// tick started; requests made from inside a callback wait for the next tick.
type Loop struct {
	interval time.Duration
	requests *stream.Stream[request]

	mu      sync.Mutex
	next    Handle
	pending map[Handle]struct{}
	frames  uint64
}

func NewLoop(lc *lifecycle.Lifecycle, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = time.Second / Rate
	}
	loop := &Loop{
		interval: interval,
		requests: stream.NewStream[request]("frames"),
		pending:  map[Handle]struct{}{},
	}
	lc.Go(loop.run)
	return loop
}

func (l *Loop) Request(callback Callback) Handle {
	l.mu.Lock()
	l.next++
	handle := l.next
	l.pending[handle] = struct{}{}
	l.mu.Unlock()

	l.requests.Push(request{handle: handle, callback: callback})
	return handle
}

func (l *Loop) Cancel(handle Handle) {
	l.mu.Lock()
	delete(l.pending, handle)
	l.mu.Unlock()
}

// Frames returns the number of ticks that ran at least one callback.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

func (l *Loop) run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.tick(now)
		}
	}
}

func (l *Loop) tick(now time.Time) {
	ran := false
	for _, req := range l.requests.PullAll() {
		l.mu.Lock()
		_, ok := l.pending[req.handle]
		delete(l.pending, req.handle)
		l.mu.Unlock()
		if ok {
			req.callback(now)
			ran = true
		}
	}
	if ran {
		l.mu.Lock()
		l.frames++
		l.mu.Unlock()
	}
}
