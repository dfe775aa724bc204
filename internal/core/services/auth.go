package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
	"github.com/custodia-labs/trackbot/internal/core/ports/driving"
	"github.com/custodia-labs/trackbot/internal/logger"
)

// csrfTableCapacity bounds the pending-login table. A login link that
// falls out before the user follows it simply stops working.
const csrfTableCapacity = 100

// defaultTokenTTL is used when the provider omits expires_in.
const defaultTokenTTL = time.Hour

// Ensure AuthService implements the interface.
var _ driving.AuthSink = (*AuthService)(nil)

// AuthService mints per-user login URLs for the tracker hub and consumes
// the completed authorizations delivered by the callback server.
type AuthService struct {
	oauth   *oauth2.Config
	creds   driven.CredentialStore
	locks   *UserLocks
	pending *lru.Cache[string, domain.UserID]
}

// NewAuthService creates an auth service. locks must be the same table
// the dispatcher uses, so token writes serialize with normal dispatch.
func NewAuthService(cfg domain.AuthConfig, creds driven.CredentialStore, locks *UserLocks) (*AuthService, error) {
	pending, err := lru.New[string, domain.UserID](csrfTableCapacity)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.HubURL + "/api/rest/oauth2/auth",
				TokenURL: cfg.HubURL + "/api/rest/oauth2/token",
			},
			RedirectURL: cfg.CallbackURL + "/auth",
			Scopes:      []string{"YouTrack"},
		},
		creds:   creds,
		locks:   locks,
		pending: pending,
	}, nil
}

// LoginURL returns a fresh authorization URL bound to the user through a
// random state parameter. The hub delivers the access token back in the
// redirect fragment (implicit flow), so no exchange round-trip happens.
func (s *AuthService) LoginURL(user domain.UserID) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", err
	}
	s.pending.Add(state, user)
	return s.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("response_type", "token")), nil
}

// OnAuth resolves the state to its pending user and stores the access
// token under the user's session lock.
func (s *AuthService) OnAuth(ctx context.Context, res driving.AuthResult) error {
	user, ok := s.pending.Get(res.State)
	if !ok {
		logger.Warn("auth callback with unknown state")
		return domain.ErrUnknownAuthState
	}
	s.pending.Remove(res.State)

	unlock := s.locks.Lock(user)
	defer unlock()

	ttl := res.ExpiresIn
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if err := s.creds.Put(ctx, user, res.AccessToken, ttl); err != nil {
		return err
	}
	logger.Info("stored tracker token for user %d (ttl %s)", user, ttl)
	return nil
}

// generateState creates a random state parameter for CSRF protection.
func generateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
