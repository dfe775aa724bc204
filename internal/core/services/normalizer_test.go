package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trackbot/internal/adapters/driven/codec"
	"github.com/custodia-labs/trackbot/internal/core/domain"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(codec.NewCompactCodec(), 5)
}

func TestNormalizer_Normalize_Keywords(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		text string
		want domain.Command
	}{
		{"/start", domain.StartCmd{}},
		{"/login", domain.LoginCmd{}},
		{"/backlog", domain.BacklogCmd{Params: domain.BacklogParams{Top: 5, Skip: 0}}},
		{"/new_issue", domain.NewIssueCmd{}},
		{"/save", domain.SaveCmd{}},
		{"/cancel", domain.CancelCmd{}},
		{"/stop", domain.StopCmd{}},
	}

	for _, tt := range tests {
		ev, err := n.Normalize(domain.Message{From: 1, Chat: 2, Text: tt.text})
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, ev.Command, tt.text)
	}
}

func TestNormalizer_Normalize_BotNameSuffix(t *testing.T) {
	n := newTestNormalizer()

	ev, err := n.Normalize(domain.Message{From: 1, Chat: 2, Text: "/backlog@trackbot"})
	require.NoError(t, err)
	assert.IsType(t, domain.BacklogCmd{}, ev.Command)
}

func TestNormalizer_Normalize_FreeText(t *testing.T) {
	n := newTestNormalizer()

	ev, err := n.Normalize(domain.Message{From: 1, Chat: 2, Text: "crash on save"})
	require.NoError(t, err)
	assert.Equal(t, domain.TextCmd{Text: "crash on save"}, ev.Command)
}

func TestNormalizer_Normalize_UnknownSlashCommand(t *testing.T) {
	n := newTestNormalizer()

	// Unknown slash commands are plain text to the engine; wizard states
	// will not match them against any option set, so they no-op.
	ev, err := n.Normalize(domain.Message{From: 1, Chat: 2, Text: "/frobnicate"})
	require.NoError(t, err)
	assert.Equal(t, domain.TextCmd{Text: "/frobnicate"}, ev.Command)
}

func TestNormalizer_Normalize_MessageEvent(t *testing.T) {
	n := newTestNormalizer()

	ev, err := n.Normalize(domain.Message{From: 7, FirstName: "Ada", Chat: 9, MessageID: 42, Text: "/start"})
	require.NoError(t, err)

	assert.Equal(t, domain.UserID(7), ev.User)
	assert.Equal(t, domain.ChatID(9), ev.Chat)
	assert.Equal(t, "Ada", ev.FirstName)
	assert.Equal(t, domain.MessageRef{Chat: 9, MessageID: 42}, ev.Ref)
	assert.False(t, ev.FromKeyboard)
}

func TestNormalizer_Normalize_Callback(t *testing.T) {
	c := codec.NewCompactCodec()
	n := NewNormalizer(c, 5)

	token, err := c.Encode(domain.VotePayload{Vote: domain.VoteParams{IssueID: "TP-7", HasVote: true}})
	require.NoError(t, err)

	ev, err := n.Normalize(domain.CallbackEvent{
		ID:      "cb-1",
		From:    7,
		Message: domain.MessageRef{Chat: 9, MessageID: 42},
		Data:    token,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VoteForIssueCmd{Vote: domain.VoteParams{IssueID: "TP-7", HasVote: true}}, ev.Command)
	assert.Equal(t, domain.MessageRef{Chat: 9, MessageID: 42}, ev.Ref)
	assert.True(t, ev.FromKeyboard)
}

func TestNormalizer_Normalize_BadCallbackData(t *testing.T) {
	n := newTestNormalizer()

	ev, err := n.Normalize(domain.CallbackEvent{From: 7, Message: domain.MessageRef{Chat: 9}, Data: "stale garbage"})
	require.NoError(t, err)
	assert.Equal(t, domain.InvalidCmd{}, ev.Command)
}

func TestNormalizer_Normalize_UnsupportedUpdate(t *testing.T) {
	n := newTestNormalizer()

	_, err := n.Normalize(nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedUpdate)
}
