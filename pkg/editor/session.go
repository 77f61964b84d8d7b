package editor

import "sync"

// Session holds the current snapshot for surfaces that share one editor across
// goroutines. Dispatch swaps the snapshot under a lock so readers always see a
// whole state.
type Session struct {
	mu    sync.RWMutex
	state State
}

// NewSession starts a session from the given snapshot.
func NewSession(initial State) *Session {
	return &Session{state: initial.Clone()}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Dispatch applies actions to the current snapshot and stores the result.
func (s *Session) Dispatch(actions ...Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Apply(s.state, actions...)
	return s.state.Clone()
}

// Replace stores state wholesale.
func (s *Session) Replace(state State) {
	s.mu.Lock()
	s.state = state.Clone()
	s.mu.Unlock()
}
