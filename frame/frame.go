// Package frame schedules single-shot callbacks aligned to display frames.
//
// A Scheduler runs each requested callback once, near the next frame. A
// callback that wants to keep animating requests the following frame itself.
package frame

import "time"

// Rate is the nominal number of frames per second.
const Rate = 60

// FallbackDelay is the minimum spacing between callbacks of the Timer scheduler.
const FallbackDelay = 16 * time.Millisecond

// Handle identifies a pending request. The zero Handle is never issued.
type Handle uint64

type Callback func(now time.Time)

type Scheduler interface {
	Request(callback Callback) Handle
	Cancel(handle Handle)
}

type request struct {
	handle   Handle
	callback Callback
}
