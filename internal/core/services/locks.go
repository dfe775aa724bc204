package services

import (
	"sync"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// UserLocks serializes all mutation of one user's session. The dispatch
// path holds the user's lock across its whole read-modify-write cycle,
// and the out-of-band OAuth callback path takes the same lock before
// storing credentials, so a backlog action can never execute ahead of a
// freshly obtained token becoming visible.
//
// Locks are created lazily and kept for the life of the process; the map
// grows with the active user population only.
type UserLocks struct {
	mu    sync.Mutex
	locks map[domain.UserID]*sync.Mutex
}

// NewUserLocks creates an empty lock table.
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[domain.UserID]*sync.Mutex)}
}

// Lock acquires the user's lock and returns the release function.
func (l *UserLocks) Lock(user domain.UserID) func() {
	l.mu.Lock()
	m, ok := l.locks[user]
	if !ok {
		m = &sync.Mutex{}
		l.locks[user] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
