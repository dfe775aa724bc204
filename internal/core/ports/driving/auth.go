package driving

import (
	"context"
	"time"
)

// AuthResult is a completed OAuth authorization, as delivered by the
// callback server. State is the CSRF token issued when the login link was
// minted; it resolves to the user who followed it.
type AuthResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	State       string
}

// AuthSink receives completed authorizations from the out-of-band OAuth
// callback path.
type AuthSink interface {
	// OnAuth resolves the result's state to a user and stores the access
	// token. Returns domain.ErrUnknownAuthState when the state does not
	// match a pending login.
	OnAuth(ctx context.Context, res AuthResult) error
}
