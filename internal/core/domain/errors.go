package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Event Errors.

	// ErrUnsupportedUpdate indicates an inbound event kind the dispatcher
	// does not handle (stickers, channel posts, ...). Logged and dropped.
	ErrUnsupportedUpdate = errors.New("unsupported update")

	// Correlation Token Errors.

	// ErrTokenTooBig indicates an encoded callback token would exceed the
	// transport's callback-payload ceiling.
	ErrTokenTooBig = errors.New("callback token exceeds size limit")

	// ErrTokenNotFound indicates a well-formed token with no live entry.
	// Normal outcome for evicted or already-consumed opaque handles.
	ErrTokenNotFound = errors.New("callback token not found")

	// ErrTokenMalformed indicates callback data that is not a token at all.
	ErrTokenMalformed = errors.New("malformed callback token")

	// Authentication Errors.

	// ErrNotAuthenticated indicates no live tracker access token for the user.
	// The user is prompted to /login.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnknownAuthState indicates an OAuth callback whose state parameter
	// does not resolve to a pending login.
	ErrUnknownAuthState = errors.New("unknown auth state")

	// Tracker Errors.

	// ErrTrackerUnavailable indicates the issue tracker rejected or failed
	// a request. The proposed state change is discarded.
	ErrTrackerUnavailable = errors.New("tracker unavailable")
)
