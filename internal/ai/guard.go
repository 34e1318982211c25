package ai

import (
	"context"
	"sync"
)

// Guard tracks the latest summary request. Starting a new request or
// calling Cancel invalidates the previous one.
type Guard struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Begin cancels any in-flight request and returns a context and ticket for
// the new one.
func (g *Guard) Begin(parent context.Context) (context.Context, uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	g.seq++
	g.cancel = cancel
	return ctx, g.seq
}

// Current reports whether ticket belongs to the latest uncancelled request.
func (g *Guard) Current(ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cancel != nil && ticket == g.seq
}

// Done releases the request identified by ticket if it is still current.
func (g *Guard) Done(ticket uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ticket == g.seq && g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// Cancel abandons the current request.
func (g *Guard) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.seq++
}
