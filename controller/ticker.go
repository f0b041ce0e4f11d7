package controller

import (
	"arc/stream"
	"context"
	"time"
)

const statusInterval = 100 * time.Millisecond

func ticker(ctx context.Context, events *stream.Stream[event]) {
	t := time.NewTicker(statusInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			events.Push(tick(now))
		}
	}
}

func (c *controller) handleTick(t tick) {
	now := time.Time(t)
	if dur := now.Sub(c.prevTick).Seconds(); dur >= 1 {
		frames := c.loop.Frames()
		c.fps = int(float64(frames-c.frames) / dur)
		c.frames = frames
		c.prevTick = now
	}
	c.status()
}
