package driven

import (
	"context"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// Messenger is the chat transport surface the executor consumes.
type Messenger interface {
	// Send delivers a message, optionally with an inline keyboard, and
	// returns its address for later edits.
	Send(ctx context.Context, chat domain.ChatID, text string, kb *domain.InlineKeyboard) (domain.MessageRef, error)

	// Edit replaces a sent message's text and keyboard in place.
	Edit(ctx context.Context, ref domain.MessageRef, text string, kb *domain.InlineKeyboard) error

	// ClearKeyboard removes a sent message's inline keyboard.
	ClearKeyboard(ctx context.Context, ref domain.MessageRef) error
}
