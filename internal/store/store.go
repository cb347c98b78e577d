package store

import "sync"

// Store holds the authoritative snapshot and serializes every mutation.
// Dispatches are applied one at a time behind the mutex, which makes each
// action an atomic read-modify-write step even with concurrent callers.
// The version counter increments on every dispatch and serves as a
// memoization key for derived values such as leaderboards.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	version  uint64
}

func New(initial Snapshot) *Store {
	return &Store{snapshot: initial}
}

// Snapshot returns the current immutable state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Version returns the current dispatch counter.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Dispatch applies one action and returns the resulting snapshot.
func (s *Store) Dispatch(a Action) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Apply(s.snapshot, a)
	s.version++
	return s.snapshot
}

// Update runs fn against the current snapshot and commits its result, all
// under the write lock. Multi-step changes that must not interleave with
// other writers (check a precondition, then apply one or more actions) go
// through here; fn gets the live snapshot, not a stale read. An error from
// fn leaves the snapshot and version untouched.
func (s *Store) Update(fn func(Snapshot) (Snapshot, error)) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.snapshot)
	if err != nil {
		return s.snapshot, err
	}
	s.snapshot = next
	s.version++
	return next, nil
}

// View returns the snapshot together with its version so derived-value
// caches can key on it consistently.
func (s *Store) View() (Snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.version
}
