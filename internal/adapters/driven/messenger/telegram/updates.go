package telegram

import (
	"context"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// longPollTimeout is the getUpdates hold time in seconds.
const longPollTimeout = 25

// WireUpdate is one Bot API update.
type WireUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		MessageID int64 `json:"message_id"`
		From      struct {
			ID        int64  `json:"id"`
			FirstName string `json:"first_name"`
			IsBot     bool   `json:"is_bot"`
		} `json:"from"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
	CallbackQuery *struct {
		ID   string `json:"id"`
		From struct {
			ID int64 `json:"id"`
		} `json:"from"`
		Message *struct {
			MessageID int64 `json:"message_id"`
			Chat      struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
		Data string `json:"data"`
	} `json:"callback_query"`
}

// GetUpdates long-polls for updates after offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]WireUpdate, error) {
	params := struct {
		Offset         int64    `json:"offset"`
		Timeout        int      `json:"timeout"`
		AllowedUpdates []string `json:"allowed_updates"`
	}{
		Offset:         offset,
		Timeout:        longPollTimeout,
		AllowedUpdates: []string{"message", "callback_query"},
	}

	var updates []WireUpdate
	if err := c.callWith(ctx, c.pollClient, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// MapUpdate converts a wire update to its domain event. It returns false
// for update kinds the dispatcher does not handle.
func MapUpdate(w WireUpdate) (domain.Update, bool) {
	switch {
	case w.Message != nil && w.Message.Text != "":
		return domain.Message{
			From:      domain.UserID(w.Message.From.ID),
			FirstName: w.Message.From.FirstName,
			Chat:      domain.ChatID(w.Message.Chat.ID),
			MessageID: w.Message.MessageID,
			Text:      w.Message.Text,
		}, true
	case w.CallbackQuery != nil && w.CallbackQuery.Message != nil:
		return domain.CallbackEvent{
			ID:   w.CallbackQuery.ID,
			From: domain.UserID(w.CallbackQuery.From.ID),
			Message: domain.MessageRef{
				Chat:      domain.ChatID(w.CallbackQuery.Message.Chat.ID),
				MessageID: w.CallbackQuery.Message.MessageID,
			},
			Data: w.CallbackQuery.Data,
		}, true
	default:
		return nil, false
	}
}
