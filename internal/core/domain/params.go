package domain

// DefaultPageSize is the backlog page size used by the /backlog command.
const DefaultPageSize = 5

// BacklogParams is a backlog page window. Skip is always a non-negative
// multiple of Top.
type BacklogParams struct {
	Top  int
	Skip int
}

// NewBacklogParams returns the first page window of the given size.
func NewBacklogParams(top int) BacklogParams {
	return BacklogParams{Top: top, Skip: 0}
}

// Next returns the window one page forward.
func (p BacklogParams) Next() BacklogParams {
	return BacklogParams{Top: p.Top, Skip: p.Skip + p.Top}
}

// Prev returns the window one page back, or false when already on the
// first page.
func (p BacklogParams) Prev() (BacklogParams, bool) {
	if p.Skip-p.Top < 0 {
		return BacklogParams{}, false
	}
	return BacklogParams{Top: p.Top, Skip: p.Skip - p.Top}, true
}

// VoteParams identifies an issue vote toggle. HasVote is the state the
// button was rendered with; the toggle requests its negation.
type VoteParams struct {
	IssueID string
	HasVote bool
}
