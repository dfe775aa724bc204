package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trackbot/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driving"
)

func newTestAuthService(t *testing.T) (*AuthService, *memory.CredentialStore) {
	t.Helper()
	creds := memory.NewCredentialStore()
	auth, err := NewAuthService(domain.AuthConfig{
		HubURL:      "https://hub.example.com",
		ClientID:    "client-1",
		CallbackURL: "http://127.0.0.1:5000",
	}, creds, NewUserLocks())
	require.NoError(t, err)
	return auth, creds
}

// loginState extracts the CSRF state parameter from a login URL.
func loginState(t *testing.T, loginURL string) string {
	t.Helper()
	u, err := url.Parse(loginURL)
	require.NoError(t, err)
	return u.Query().Get("state")
}

func TestAuthService_LoginURL(t *testing.T) {
	auth, _ := newTestAuthService(t)

	link, err := auth.LoginURL(7)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "hub.example.com", u.Host)
	assert.Equal(t, "/api/rest/oauth2/auth", u.Path)

	q := u.Query()
	assert.Equal(t, "token", q.Get("response_type"), "implicit flow")
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "http://127.0.0.1:5000/auth", q.Get("redirect_uri"))
	assert.Equal(t, "YouTrack", q.Get("scope"))
	assert.NotEmpty(t, q.Get("state"))
}

func TestAuthService_LoginURL_FreshStatePerLink(t *testing.T) {
	auth, _ := newTestAuthService(t)

	first, err := auth.LoginURL(7)
	require.NoError(t, err)
	second, err := auth.LoginURL(7)
	require.NoError(t, err)

	assert.NotEqual(t, loginState(t, first), loginState(t, second))
}

func TestAuthService_OnAuth_StoresToken(t *testing.T) {
	auth, creds := newTestAuthService(t)
	ctx := context.Background()

	link, err := auth.LoginURL(7)
	require.NoError(t, err)

	err = auth.OnAuth(ctx, driving.AuthResult{
		AccessToken: "tok-123",
		ExpiresIn:   30 * time.Minute,
		State:       loginState(t, link),
	})
	require.NoError(t, err)

	token, err := creds.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestAuthService_OnAuth_UnknownState(t *testing.T) {
	auth, creds := newTestAuthService(t)
	ctx := context.Background()

	err := auth.OnAuth(ctx, driving.AuthResult{AccessToken: "tok", State: "never-minted"})
	assert.ErrorIs(t, err, domain.ErrUnknownAuthState)

	_, err = creds.Get(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestAuthService_OnAuth_StateIsSingleUse(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	link, err := auth.LoginURL(7)
	require.NoError(t, err)
	state := loginState(t, link)

	require.NoError(t, auth.OnAuth(ctx, driving.AuthResult{AccessToken: "tok", State: state}))

	err = auth.OnAuth(ctx, driving.AuthResult{AccessToken: "tok-2", State: state})
	assert.ErrorIs(t, err, domain.ErrUnknownAuthState)
}
