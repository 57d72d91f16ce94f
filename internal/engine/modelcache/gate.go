package modelcache

import "sync"

// gate serializes runs of one function per key. A call arriving while a run
// is in flight is coalesced into a single follow-up run.
type gate struct {
	mu      sync.Mutex
	running bool
	pending bool
}

// run executes fn, or marks a follow-up run if fn is already running.
func (g *gate) run(fn func()) {
	g.mu.Lock()
	if g.running {
		g.pending = true
		g.mu.Unlock()
		return
	}
	g.running = true
	g.mu.Unlock()

	for {
		fn()

		g.mu.Lock()
		if !g.pending {
			g.running = false
			g.mu.Unlock()
			return
		}
		g.pending = false
		g.mu.Unlock()
	}
}
