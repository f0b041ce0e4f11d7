package frame

import (
	"sync"
	"time"
)

// Timer schedules every request on its own timer, keeping consecutive
// callbacks at least FallbackDelay apart. It is the scheduler to use when
// nothing drives frames.
type Timer struct {
	mu     sync.Mutex
	last   time.Time
	next   Handle
	timers map[Handle]*time.Timer
}

func NewTimer() *Timer {
	return &Timer{timers: map[Handle]*time.Timer{}}
}

func (t *Timer) Request(callback Callback) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	delay := FallbackDelay - now.Sub(t.last)
	if delay < 0 {
		delay = 0
	}
	fireAt := now.Add(delay)
	t.last = fireAt

	t.next++
	handle := t.next
	t.timers[handle] = time.AfterFunc(delay, func() {
		t.mu.Lock()
		_, pending := t.timers[handle]
		delete(t.timers, handle)
		t.mu.Unlock()
		if pending {
			callback(fireAt)
		}
	})
	return handle
}

func (t *Timer) Cancel(handle Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[handle]; ok {
		timer.Stop()
		delete(t.timers, handle)
	}
}

// Pending reports how many callbacks have not fired or been canceled yet.
func (t *Timer) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}
