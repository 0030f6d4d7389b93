package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum interval between consecutive calls to one
// upstream integration. The window is measured from the completion of
// the previous guarded call: callers Acquire before the call and Mark
// after it returns, success or failure.
//
// There is no queueing. Under concurrent callers the last writer
// determines the next window, which is acceptable for the single-flight
// deployment model of each endpoint.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func NewGate(minInterval time.Duration) *Gate {
	return &Gate{
		interval: minInterval,
		now:      time.Now,
	}
}

// Acquire blocks until the minimum interval since the last Mark has
// elapsed, or the context is done. It returns the time spent waiting.
func (g *Gate) Acquire(ctx context.Context) (time.Duration, error) {
	g.mu.Lock()
	elapsed := g.now().Sub(g.last)
	wait := g.interval - elapsed
	g.mu.Unlock()

	if wait <= 0 {
		return 0, nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return wait, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Mark records the completion of a guarded call and restarts the window.
func (g *Gate) Mark() {
	g.mu.Lock()
	g.last = g.now()
	g.mu.Unlock()
}
