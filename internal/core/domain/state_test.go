package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStates() []State {
	project := ProjectRef{ID: "0-1", Name: "Demo"}
	stream := FieldValue{FieldID: "f-1", FieldName: "Stream", Value: "Backend"}
	typ := FieldValue{FieldID: "f-2", FieldName: "Type", Value: "Bug"}

	return []State{
		Idle{},
		InBacklog{Top: 5, Skip: 10},
		NewIssue{},
		NewIssueSummary{Summary: "crash on save"},
		NewIssueProject{Summary: "crash on save", Project: project},
		NewIssueStream{Summary: "crash on save", Project: project, Stream: stream},
		NewIssueType{Summary: "crash on save", Project: project, Stream: stream, Type: typ},
		NewIssueDesc{Summary: "crash on save", Project: project, Stream: stream, Type: typ, Desc: "steps to reproduce"},
	}
}

func TestMarshalState_RoundTrip(t *testing.T) {
	for _, state := range allStates() {
		data, err := MarshalState(state)
		require.NoError(t, err, "%T", state)

		got, err := UnmarshalState(data)
		require.NoError(t, err, "%T", state)
		assert.Equal(t, state, got)

		// A second marshal of the decoded value is byte-identical.
		again, err := MarshalState(got)
		require.NoError(t, err)
		assert.Equal(t, data, again, "%T", state)
	}
}

func TestUnmarshalState_NotJSON(t *testing.T) {
	_, err := UnmarshalState([]byte("not json at all"))
	assert.Error(t, err)
}

func TestUnmarshalState_UnknownTag(t *testing.T) {
	_, err := UnmarshalState([]byte(`{"_t":"time_travel"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUnmarshalState_MissingFields(t *testing.T) {
	// A wizard record without its accumulated fields is corrupt.
	for _, tag := range []string{"new_issue_project", "new_issue_stream", "new_issue_type", "new_issue_desc"} {
		_, err := UnmarshalState([]byte(`{"_t":"` + tag + `","summary":"s"}`))
		assert.ErrorIs(t, err, ErrInvalidInput, tag)
	}
}

func TestInBacklog_Params(t *testing.T) {
	s := InBacklog{Top: 5, Skip: 15}
	assert.Equal(t, BacklogParams{Top: 5, Skip: 15}, s.Params())
}

func TestNewIssueDesc_Draft(t *testing.T) {
	s := NewIssueDesc{
		Summary: "crash on save",
		Project: ProjectRef{ID: "0-1", Name: "Demo"},
		Stream:  FieldValue{FieldID: "f-1", FieldName: "Stream", Value: "Backend"},
		Type:    FieldValue{FieldID: "f-2", FieldName: "Type", Value: "Bug"},
		Desc:    "steps",
	}

	draft := s.Draft()
	assert.Equal(t, "crash on save", draft.Summary)
	assert.Equal(t, "steps", draft.Description)
	assert.Equal(t, "0-1", draft.ProjectID)
	assert.Equal(t, "Demo", draft.Project)
	require.Len(t, draft.Fields, 2)
	assert.Equal(t, "Backend", draft.Fields[0].Value)
	assert.Equal(t, "Bug", draft.Fields[1].Value)
}
