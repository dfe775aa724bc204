package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trackbot/internal/adapters/driven/codec"
	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// failingCodec rejects every payload, as a codec does when the encoded
// token would exceed the transport ceiling.
type failingCodec struct{}

func (failingCodec) Encode(domain.CallbackPayload) (string, error) {
	return "", errors.New("token too big")
}

func (failingCodec) Decode(string) (domain.CallbackPayload, error) {
	return nil, domain.ErrTokenMalformed
}

func testIssues(n int) domain.Issues {
	issues := make(domain.Issues, 0, n)
	for i := 0; i < n; i++ {
		issues = append(issues, domain.Issue{IDReadable: "TP-" + string(rune('1'+i)), Summary: "s"})
	}
	return issues
}

func TestBacklogKeyboard_FirstPage(t *testing.T) {
	c := codec.NewCompactCodec()
	params := domain.BacklogParams{Top: 5, Skip: 0}

	kb := backlogKeyboard(c, testIssues(5), params)

	// 5 vote buttons in rows of 3, plus the control row.
	require.Len(t, kb.Rows, 3)
	assert.Len(t, kb.Rows[0], 3)
	assert.Len(t, kb.Rows[1], 2)

	controls := kb.Rows[2]
	require.Len(t, controls, 2, "first page has no prev")
	assert.Equal(t, "stop", controls[0].Text)
	assert.Equal(t, "next", controls[1].Text)
}

func TestBacklogKeyboard_MiddlePage(t *testing.T) {
	c := codec.NewCompactCodec()
	params := domain.BacklogParams{Top: 5, Skip: 10}

	kb := backlogKeyboard(c, testIssues(5), params)

	controls := kb.Rows[len(kb.Rows)-1]
	require.Len(t, controls, 3)
	assert.Equal(t, "stop", controls[0].Text)
	assert.Equal(t, "prev", controls[1].Text)
	assert.Equal(t, "next", controls[2].Text)

	prev, err := c.Decode(controls[1].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, domain.BacklogPrevPayload{Params: domain.BacklogParams{Top: 5, Skip: 5}}, prev)

	next, err := c.Decode(controls[2].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, domain.BacklogNextPayload{Params: domain.BacklogParams{Top: 5, Skip: 15}}, next)
}

func TestBacklogKeyboard_EmptyPage_BacksOff(t *testing.T) {
	c := codec.NewCompactCodec()
	params := domain.BacklogParams{Top: 5, Skip: 15}

	kb := backlogKeyboard(c, nil, params)

	// Only the control row, with stop and the way back. The page one
	// step back is the one the user just left, so prev skips past it.
	require.Len(t, kb.Rows, 1)
	controls := kb.Rows[0]
	require.Len(t, controls, 2)
	assert.Equal(t, "stop", controls[0].Text)
	assert.Equal(t, "prev", controls[1].Text)

	payload, err := c.Decode(controls[1].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, domain.BacklogPrevPayload{Params: domain.BacklogParams{Top: 5, Skip: 5}}, payload)
}

func TestBacklogKeyboard_EmptySecondPage(t *testing.T) {
	c := codec.NewCompactCodec()

	kb := backlogKeyboard(c, nil, domain.BacklogParams{Top: 5, Skip: 5})

	// No page exists before the one the user came from, so only stop.
	require.Len(t, kb.Rows, 1)
	require.Len(t, kb.Rows[0], 1)
	assert.Equal(t, "stop", kb.Rows[0][0].Text)
}

func TestBacklogKeyboard_EmptyFirstPage(t *testing.T) {
	c := codec.NewCompactCodec()

	kb := backlogKeyboard(c, nil, domain.BacklogParams{Top: 5, Skip: 0})

	require.Len(t, kb.Rows, 1)
	require.Len(t, kb.Rows[0], 1)
	assert.Equal(t, "stop", kb.Rows[0][0].Text)
}

func TestBacklogKeyboard_VotedIssue_Starred(t *testing.T) {
	c := codec.NewCompactCodec()
	issues := domain.Issues{
		{IDReadable: "TP-1", HasVote: true},
		{IDReadable: "TP-2", HasVote: false},
	}

	kb := backlogKeyboard(c, issues, domain.BacklogParams{Top: 5, Skip: 0})

	require.NotEmpty(t, kb.Rows)
	assert.Equal(t, "⭐ TP-1", kb.Rows[0][0].Text)
	assert.Equal(t, "TP-2", kb.Rows[0][1].Text)

	payload, err := c.Decode(kb.Rows[0][0].CallbackData)
	require.NoError(t, err)
	assert.Equal(t, domain.VotePayload{Vote: domain.VoteParams{IssueID: "TP-1", HasVote: true}}, payload)
}

func TestBacklogKeyboard_EncodeFailure_DropsButtons(t *testing.T) {
	kb := backlogKeyboard(failingCodec{}, testIssues(3), domain.BacklogParams{Top: 5, Skip: 0})

	// Every button failed to encode; the keyboard ends up empty rather
	// than the message being lost.
	assert.True(t, kb.Empty())
}
