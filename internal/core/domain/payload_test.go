package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandForPayload(t *testing.T) {
	page := BacklogParams{Top: 5, Skip: 10}
	vote := VoteParams{IssueID: "TP-7", HasVote: true}

	assert.Equal(t, BacklogNextCmd{Params: page}, CommandForPayload(BacklogNextPayload{Params: page}))
	assert.Equal(t, BacklogPrevCmd{Params: page}, CommandForPayload(BacklogPrevPayload{Params: page}))
	assert.Equal(t, VoteForIssueCmd{Vote: vote}, CommandForPayload(VotePayload{Vote: vote}))
	assert.Equal(t, BacklogStopCmd{}, CommandForPayload(BacklogStopPayload{}))
	assert.Equal(t, InvalidCmd{}, CommandForPayload(nil))
}

func TestInlineKeyboard_AddRow(t *testing.T) {
	var kb InlineKeyboard
	assert.True(t, kb.Empty())

	kb.AddRow(nil)
	kb.AddRow([]Button{})
	assert.True(t, kb.Empty(), "empty rows are dropped")

	kb.AddRow([]Button{{Text: "next", CallbackData: "tok"}})
	assert.False(t, kb.Empty())
	assert.Len(t, kb.Rows, 1)
}

func TestFieldBundle_HasValue(t *testing.T) {
	b := FieldBundle{FieldID: "f-1", FieldName: "Stream", Values: []string{"Backend", "Frontend"}}

	assert.True(t, b.Has("Backend"))
	assert.False(t, b.Has("backend"), "matching is exact")

	v := b.Value("Frontend")
	assert.Equal(t, FieldValue{FieldID: "f-1", FieldName: "Stream", Value: "Frontend"}, v)
}
