package run

import (
	"context"
	"sync"
	"time"
)

// gate suspends acquisition of new fetches while an upstream
// rate-limit holds. Work already in flight is unaffected; only
// workers about to start a fetch wait here.
type gate struct {
	mu    sync.Mutex
	until time.Time
}

func newGate() *gate { return &gate{} }

// SuspendFor holds back new work for d. Overlapping suspensions keep
// the latest deadline.
func (g *gate) SuspendFor(d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t := time.Now().Add(d); t.After(g.until) {
		g.until = t
	}
}

// Wait blocks until the gate is open or ctx is done.
func (g *gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	until := g.until
	g.mu.Unlock()

	d := time.Until(until)
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
