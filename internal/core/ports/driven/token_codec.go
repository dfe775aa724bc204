package driven

import "github.com/custodia-labs/trackbot/internal/core/domain"

// TokenByteLimit is the transport's callback-payload ceiling. Telegram
// rejects callback data past 64 bytes, so every encoded token must fit.
const TokenByteLimit = 64

// TokenCodec binds inline-button parameters to a bounded opaque token and
// reads them back when the button is tapped, possibly much later or never.
type TokenCodec interface {
	// Encode returns the token for a payload, or domain.ErrTokenTooBig
	// when no conforming token can be produced.
	Encode(p domain.CallbackPayload) (string, error)

	// Decode resolves a token back to its payload. It returns
	// domain.ErrTokenNotFound for well-formed tokens with no live entry
	// (consumed, evicted, or minted by another process) and
	// domain.ErrTokenMalformed for data that is not a token at all.
	// It never panics on arbitrary input.
	Decode(token string) (domain.CallbackPayload, error)
}
