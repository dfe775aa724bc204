package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is an in-memory TTL map of tracker access tokens.
// Expiry is checked lazily on Get; no background sweeper runs.
type CredentialStore struct {
	mu     sync.Mutex
	tokens map[domain.UserID]credEntry
	now    func() time.Time
}

type credEntry struct {
	token     string
	expiresAt time.Time
}

// NewCredentialStore creates an empty credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		tokens: make(map[domain.UserID]credEntry),
		now:    time.Now,
	}
}

// Put stores the user's token for ttl.
func (s *CredentialStore) Put(_ context.Context, user domain.UserID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[user] = credEntry{token: token, expiresAt: s.now().Add(ttl)}
	return nil
}

// Get returns the user's live token, dropping it when expired.
func (s *CredentialStore) Get(_ context.Context, user domain.UserID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[user]
	if !ok {
		return "", domain.ErrNotAuthenticated
	}
	if s.now().After(entry.expiresAt) {
		delete(s.tokens, user)
		return "", domain.ErrNotAuthenticated
	}
	return entry.token, nil
}
