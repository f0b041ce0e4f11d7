package lifecycle

import (
	"context"
	"sync"
)

// Lifecycle ties background goroutines to a single cancel signal and lets the
// owner wait for all of them to return.
type Lifecycle struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New() *Lifecycle {
	return WithParent(context.Background())
}

func WithParent(parent context.Context) *Lifecycle {
	ctx, cancel := context.WithCancel(parent)
	return &Lifecycle{ctx: ctx, cancel: cancel}
}

func (lc *Lifecycle) Context() context.Context {
	return lc.ctx
}

func (lc *Lifecycle) Go(run func(ctx context.Context)) {
	lc.wg.Add(1)
	go func() {
		defer lc.wg.Done()
		run(lc.ctx)
	}()
}

func (lc *Lifecycle) ShouldStop() bool {
	select {
	case <-lc.ctx.Done():
		return true
	default:
		return false
	}
}

func (lc *Lifecycle) Stop() {
	lc.cancel()
	lc.wg.Wait()
}
