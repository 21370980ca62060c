package guestbook

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// authGate guards session establishment: the first caller performs it, late
// callers either see it done or wait on the same in-flight attempt. The gate
// resolves even when establishment fails.
type authGate struct {
	mu       sync.Mutex
	done     bool
	inflight chan struct{}
}

func (g *authGate) ensure(ctx context.Context, establish func(context.Context) error) {
	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		return
	}
	if g.inflight != nil {
		ch := g.inflight
		g.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
		}
		return
	}

	ch := make(chan struct{})
	g.inflight = ch
	g.mu.Unlock()

	if err := establish(ctx); err != nil {
		// Fail open: keep going in read-only degraded mode.
		log.Warnf("[guestbook] session establishment failed, continuing without session: %v", err)
	}

	g.mu.Lock()
	g.done = true
	g.inflight = nil
	g.mu.Unlock()
	close(ch)
}
