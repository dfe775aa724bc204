package domain

// UserID identifies a chat user. Telegram user ids are int64.
type UserID int64

// ChatID identifies a conversation on the messaging transport.
type ChatID int64

// MessageRef addresses an already-sent message for edits.
type MessageRef struct {
	Chat      ChatID
	MessageID int64
}

// Update is an inbound event from the messaging transport.
// Exactly two kinds exist: a text Message and a CallbackEvent fired when
// the user taps an inline keyboard button.
type Update interface {
	isUpdate()
}

// Message is an inbound text message.
type Message struct {
	From      UserID
	FirstName string
	Chat      ChatID
	MessageID int64
	Text      string
}

func (Message) isUpdate() {}

// Ref returns the address of this message.
func (m Message) Ref() MessageRef {
	return MessageRef{Chat: m.Chat, MessageID: m.MessageID}
}

// CallbackEvent is fired when the user taps an inline keyboard button.
// Data carries the correlation token verbatim. Message addresses the
// bot message the keyboard was attached to.
type CallbackEvent struct {
	ID      string
	From    UserID
	Message MessageRef
	Data    string
}

func (CallbackEvent) isUpdate() {}
