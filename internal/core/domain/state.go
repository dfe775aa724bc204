package domain

import (
	"encoding/json"
	"fmt"
)

// State is a user's conversation state (tagged variant). It is the sole
// source of truth for which commands are currently meaningful for the user.
// The NewIssue* chain accumulates draft fields strictly left to right; a
// field, once set, is never removed until the wizard ends.
type State interface {
	isState()
}

// Idle is the default state. Created lazily on a user's first event.
type Idle struct{}

// InBacklog means the user is paging through the backlog.
type InBacklog struct {
	Top  int
	Skip int
}

// Params returns the page window the user is looking at.
func (s InBacklog) Params() BacklogParams {
	return BacklogParams{Top: s.Top, Skip: s.Skip}
}

// NewIssue means the wizard has started and waits for a summary.
type NewIssue struct{}

// NewIssueSummary has a summary and waits for a project name.
type NewIssueSummary struct {
	Summary string
}

// NewIssueProject has summary and project and waits for a stream value.
type NewIssueProject struct {
	Summary string
	Project ProjectRef
}

// NewIssueStream additionally has the stream field and waits for a type.
type NewIssueStream struct {
	Summary string
	Project ProjectRef
	Stream  FieldValue
}

// NewIssueType additionally has the type field and waits for a description.
type NewIssueType struct {
	Summary string
	Project ProjectRef
	Stream  FieldValue
	Type    FieldValue
}

// NewIssueDesc holds the complete draft and waits for /save.
type NewIssueDesc struct {
	Summary string
	Project ProjectRef
	Stream  FieldValue
	Type    FieldValue
	Desc    string
}

// Draft returns the accumulated issue draft.
func (s NewIssueDesc) Draft() IssueDraft {
	return IssueDraft{
		Summary:     s.Summary,
		Description: s.Desc,
		ProjectID:   s.Project.ID,
		Project:     s.Project.Name,
		Fields:      []FieldValue{s.Stream, s.Type},
	}
}

func (Idle) isState()            {}
func (InBacklog) isState()       {}
func (NewIssue) isState()        {}
func (NewIssueSummary) isState() {}
func (NewIssueProject) isState() {}
func (NewIssueStream) isState()  {}
func (NewIssueType) isState()    {}
func (NewIssueDesc) isState()    {}

// State serialization tags. These are persisted; do not renumber.
const (
	tagIdle            = "idle"
	tagInBacklog       = "in_backlog"
	tagNewIssue        = "new_issue"
	tagNewIssueSummary = "new_issue_summary"
	tagNewIssueProject = "new_issue_project"
	tagNewIssueStream  = "new_issue_stream"
	tagNewIssueType    = "new_issue_type"
	tagNewIssueDesc    = "new_issue_desc"
)

// stateRecord is the persisted tagged-variant form of State.
type stateRecord struct {
	T       string      `json:"_t"`
	Top     int         `json:"top,omitempty"`
	Skip    int         `json:"skip,omitempty"`
	Summary string      `json:"summary,omitempty"`
	Project *ProjectRef `json:"project,omitempty"`
	Stream  *FieldValue `json:"stream,omitempty"`
	Type    *FieldValue `json:"type,omitempty"`
	Desc    string      `json:"desc,omitempty"`
}

// MarshalState serializes a State for persistence. The encoding is a JSON
// envelope tagged with "_t" and round-trips byte for byte through
// UnmarshalState followed by MarshalState.
func MarshalState(s State) ([]byte, error) {
	var rec stateRecord
	switch s := s.(type) {
	case Idle:
		rec.T = tagIdle
	case InBacklog:
		rec.T = tagInBacklog
		rec.Top = s.Top
		rec.Skip = s.Skip
	case NewIssue:
		rec.T = tagNewIssue
	case NewIssueSummary:
		rec.T = tagNewIssueSummary
		rec.Summary = s.Summary
	case NewIssueProject:
		rec.T = tagNewIssueProject
		rec.Summary = s.Summary
		rec.Project = &s.Project
	case NewIssueStream:
		rec.T = tagNewIssueStream
		rec.Summary = s.Summary
		rec.Project = &s.Project
		rec.Stream = &s.Stream
	case NewIssueType:
		rec.T = tagNewIssueType
		rec.Summary = s.Summary
		rec.Project = &s.Project
		rec.Stream = &s.Stream
		rec.Type = &s.Type
	case NewIssueDesc:
		rec.T = tagNewIssueDesc
		rec.Summary = s.Summary
		rec.Project = &s.Project
		rec.Stream = &s.Stream
		rec.Type = &s.Type
		rec.Desc = s.Desc
	default:
		return nil, fmt.Errorf("%w: unknown state %T", ErrInvalidInput, s)
	}
	return json.Marshal(rec)
}

// UnmarshalState deserializes a persisted State. Callers treat any error
// as a corrupt record and fall back to Idle.
func UnmarshalState(data []byte) (State, error) {
	var rec stateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding state record: %w", err)
	}
	switch rec.T {
	case tagIdle:
		return Idle{}, nil
	case tagInBacklog:
		return InBacklog{Top: rec.Top, Skip: rec.Skip}, nil
	case tagNewIssue:
		return NewIssue{}, nil
	case tagNewIssueSummary:
		return NewIssueSummary{Summary: rec.Summary}, nil
	case tagNewIssueProject:
		if rec.Project == nil {
			return nil, fmt.Errorf("%w: state record missing project", ErrInvalidInput)
		}
		return NewIssueProject{Summary: rec.Summary, Project: *rec.Project}, nil
	case tagNewIssueStream:
		if rec.Project == nil || rec.Stream == nil {
			return nil, fmt.Errorf("%w: state record missing fields", ErrInvalidInput)
		}
		return NewIssueStream{Summary: rec.Summary, Project: *rec.Project, Stream: *rec.Stream}, nil
	case tagNewIssueType:
		if rec.Project == nil || rec.Stream == nil || rec.Type == nil {
			return nil, fmt.Errorf("%w: state record missing fields", ErrInvalidInput)
		}
		return NewIssueType{Summary: rec.Summary, Project: *rec.Project, Stream: *rec.Stream, Type: *rec.Type}, nil
	case tagNewIssueDesc:
		if rec.Project == nil || rec.Stream == nil || rec.Type == nil {
			return nil, fmt.Errorf("%w: state record missing fields", ErrInvalidInput)
		}
		return NewIssueDesc{Summary: rec.Summary, Project: *rec.Project, Stream: *rec.Stream, Type: *rec.Type, Desc: rec.Desc}, nil
	default:
		return nil, fmt.Errorf("%w: unknown state tag %q", ErrInvalidInput, rec.T)
	}
}
