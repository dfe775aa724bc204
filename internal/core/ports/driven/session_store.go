package driven

import (
	"context"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// SessionStore persists per-user conversation states.
//
// Get never fails on bad data: an absent or unreadable record yields Idle
// (unreadable records are logged by the adapter, not propagated, so one
// corrupt row cannot take the dispatch loop down). Set overwrites
// unconditionally; the dispatcher's per-user serialization is what makes
// last-writer-wins safe.
type SessionStore interface {
	// Get returns the user's current state, or Idle when absent/corrupt.
	Get(ctx context.Context, user domain.UserID) (domain.State, error)

	// Set overwrites the user's state.
	Set(ctx context.Context, user domain.UserID, state domain.State) error
}
