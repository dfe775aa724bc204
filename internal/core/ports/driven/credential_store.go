package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// CredentialStore holds per-user tracker access tokens. Entries expire
// after their TTL; expiry is checked lazily on Get, so no background
// sweeper is required.
type CredentialStore interface {
	// Put stores a user's access token for ttl.
	Put(ctx context.Context, user domain.UserID, token string, ttl time.Duration) error

	// Get returns the user's live access token, or
	// domain.ErrNotAuthenticated when absent or expired.
	Get(ctx context.Context, user domain.UserID) (string, error)
}
