package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution; latecomers wait and share the result.
type SingleFlight struct {
	mu      sync.Mutex
	pending map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. The bool result reports whether the
// value came from another caller's in-flight execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.pending == nil {
		g.pending = make(map[string]*flight)
	}
	if f, ok := g.pending[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}

	f := &flight{done: make(chan struct{})}
	g.pending[key] = f
	g.mu.Unlock()

	f.val, f.err = fn()
	close(f.done)

	g.mu.Lock()
	delete(g.pending, key)
	g.mu.Unlock()

	return f.val, f.err, false
}
