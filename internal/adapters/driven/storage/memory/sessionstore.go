package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is a volatile in-memory implementation of
// driven.SessionStore. Sessions are created lazily: a user with no record
// is simply Idle.
type SessionStore struct {
	mu     sync.RWMutex
	states map[domain.UserID]domain.State
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{states: make(map[domain.UserID]domain.State)}
}

// Get returns the user's state, or Idle when absent.
func (s *SessionStore) Get(_ context.Context, user domain.UserID) (domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[user]
	if !ok {
		return domain.Idle{}, nil
	}
	return state, nil
}

// Set overwrites the user's state.
func (s *SessionStore) Set(_ context.Context, user domain.UserID, state domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[user] = state
	return nil
}
