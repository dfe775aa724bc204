// Package oauth runs the HTTP server that receives the tracker hub's
// authorization redirects and feeds completed logins into the core.
//
// The hub uses the implicit flow: the access token arrives in the URL
// fragment, which browsers never send to servers. /auth serves a tiny
// script that reflects the fragment into a query string and forwards to
// /auth2, where the token and state are read and handed to the AuthSink.
package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/custodia-labs/trackbot/internal/core/ports/driving"
	"github.com/custodia-labs/trackbot/internal/logger"
)

// CallbackServer handles OAuth redirect callbacks.
type CallbackServer struct {
	mu       sync.Mutex
	addr     string
	sink     driving.AuthSink
	server   *http.Server
	listener net.Listener
}

// NewCallbackServer creates a callback server listening on addr.
func NewCallbackServer(addr string, sink driving.AuthSink) *CallbackServer {
	return &CallbackServer{addr: addr, sink: sink}
}

// Start begins serving callbacks. It returns once the listener is bound.
func (s *CallbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth", s.handleFragmentShim)
	mux.HandleFunc("/auth2", s.handleAuth)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Warn("oauth callback server: %v", err)
		}
	}()

	return nil
}

// Stop shuts down the callback server.
func (s *CallbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Addr returns the bound listen address.
func (s *CallbackServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// handleFragmentShim reflects the redirect's URL fragment into a query
// string. The implicit flow puts the token after '#', which only the
// browser can see.
func (s *CallbackServer) handleFragmentShim(w http.ResponseWriter, _ *http.Request) {
	const html = `<!DOCTYPE html>
<html>
<head><title>Signing in...</title></head>
<script>
    window.location.href = location.origin + "/auth2?" + location.hash.substr(1);
</script>
<body></body>
</html>`
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, html)
}

// handleAuth consumes the reflected authorization parameters.
func (s *CallbackServer) handleAuth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		logger.Warn("oauth error: %s - %s", errParam, q.Get("error_description"))
		s.respond(w, "Authorization failed", "You can close this window and retry from the chat.")
		return
	}

	token := q.Get("access_token")
	state := q.Get("state")
	if token == "" || state == "" {
		s.respond(w, "Authorization failed", "Missing access token or state parameter.")
		return
	}

	expiresIn, err := strconv.Atoi(q.Get("expires_in"))
	if err != nil {
		expiresIn = 0
	}

	res := driving.AuthResult{
		AccessToken: token,
		ExpiresIn:   time.Duration(expiresIn) * time.Second,
		State:       state,
	}
	if err := s.sink.OnAuth(r.Context(), res); err != nil {
		logger.Warn("rejecting auth callback: %v", err)
		s.respond(w, "Authorization failed", "This login link is no longer valid. Use /login to get a new one.")
		return
	}

	s.respond(w, "Authorization successful!", "You can close this window and return to the chat.")
}

func (s *CallbackServer) respond(w http.ResponseWriter, title, message string) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, successHTML(title, message))
}

func successHTML(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>trackbot - OAuth Callback</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #FAFAFA;
        }
        .container {
            text-align: center;
            background: white;
            padding: 48px 64px;
            border-radius: 16px;
            border: 1px solid #C7C8CC;
        }
        h1 { color: #333F50; margin: 0 0 8px 0; font-size: 24px; }
        p { color: #7B8088; margin: 0; font-size: 16px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
    <script>window.close();</script>
</body>
</html>`, title, message)
}
