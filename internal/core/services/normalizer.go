package services

import (
	"strings"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
	"github.com/custodia-labs/trackbot/internal/logger"
)

// Normalizer converts raw inbound updates into typed commands. Malformed
// callback data never fails normalization; it maps to InvalidCmd so the
// dispatcher can defensively clear the stale keyboard.
type Normalizer struct {
	codec    driven.TokenCodec
	pageSize int
}

// NewNormalizer creates a normalizer. pageSize is the window used by the
// /backlog keyword.
func NewNormalizer(codec driven.TokenCodec, pageSize int) *Normalizer {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &Normalizer{codec: codec, pageSize: pageSize}
}

// Normalize produces the Event for an update. It returns
// domain.ErrUnsupportedUpdate for update kinds the system does not handle.
func (n *Normalizer) Normalize(upd domain.Update) (domain.Event, error) {
	switch u := upd.(type) {
	case domain.Message:
		return domain.Event{
			User:      u.From,
			Chat:      u.Chat,
			FirstName: u.FirstName,
			Ref:       u.Ref(),
			Command:   n.textCommand(u.Text),
		}, nil
	case domain.CallbackEvent:
		return domain.Event{
			User:         u.From,
			Chat:         u.Message.Chat,
			Ref:          u.Message,
			FromKeyboard: true,
			Command:      n.callbackCommand(u.Data),
		}, nil
	default:
		return domain.Event{}, domain.ErrUnsupportedUpdate
	}
}

// textCommand maps message text to a command via the keyword table.
// Unrecognized text becomes TextCmd so wizard states can consume it.
func (n *Normalizer) textCommand(text string) domain.Command {
	keyword := strings.TrimSpace(text)
	if strings.HasPrefix(keyword, "/") {
		// Group chats suffix commands with the bot name.
		keyword, _, _ = strings.Cut(keyword, "@")
	}
	switch keyword {
	case "/start":
		return domain.StartCmd{}
	case "/login":
		return domain.LoginCmd{}
	case "/backlog":
		return domain.BacklogCmd{Params: domain.NewBacklogParams(n.pageSize)}
	case "/new_issue":
		return domain.NewIssueCmd{}
	case "/save":
		return domain.SaveCmd{}
	case "/cancel":
		return domain.CancelCmd{}
	case "/stop":
		return domain.StopCmd{}
	default:
		return domain.TextCmd{Text: text}
	}
}

// callbackCommand resolves callback data through the codec. Every decode
// failure maps to InvalidCmd.
func (n *Normalizer) callbackCommand(data string) domain.Command {
	payload, err := n.codec.Decode(data)
	if err != nil {
		logger.Debug("callback data did not resolve: %v", err)
		return domain.InvalidCmd{}
	}
	return domain.CommandForPayload(payload)
}
