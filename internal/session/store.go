package session

import (
	"slices"
	"sync"
)

// Store holds a State and applies actions to it one at a time.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a Store with the zero State.
func NewStore() *Store {
	return &Store{}
}

// Dispatch applies a to the current state.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, a)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Decks = slices.Clone(st.Decks)
	st.Cards = slices.Clone(st.Cards)
	return st
}
