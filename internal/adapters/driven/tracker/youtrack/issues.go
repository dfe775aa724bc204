package youtrack

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// issueFields is the field selector for backlog pages.
const issueFields = "idReadable,summary,votes,voters(hasVote)"

// wireIssue is YouTrack's issue representation.
type wireIssue struct {
	IDReadable string `json:"idReadable"`
	Summary    string `json:"summary"`
	Votes      int    `json:"votes"`
	Voters     struct {
		HasVote bool `json:"hasVote"`
	} `json:"voters"`
}

// ListIssues returns one backlog page for the query window.
func (c *Client) ListIssues(ctx context.Context, token, query string, top, skip int) (domain.Issues, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("$top", strconv.Itoa(top))
	q.Set("$skip", strconv.Itoa(skip))
	q.Set("fields", issueFields)

	var wire []wireIssue
	if err := c.do(ctx, token, http.MethodGet, "/issues", q, nil, &wire); err != nil {
		return nil, err
	}

	issues := make(domain.Issues, 0, len(wire))
	for _, w := range wire {
		issues = append(issues, domain.Issue{
			IDReadable: w.IDReadable,
			Summary:    w.Summary,
			Votes:      w.Votes,
			HasVote:    w.Voters.HasVote,
		})
	}
	return issues, nil
}

// VoteIssue sets the caller's vote on an issue.
func (c *Client) VoteIssue(ctx context.Context, token, issueID string, hasVote bool) error {
	body := map[string]bool{"hasVote": hasVote}
	return c.do(ctx, token, http.MethodPost, "/issues/"+url.PathEscape(issueID)+"/voters", nil, body, nil)
}

// CreateIssue submits a draft and returns the new issue's readable id.
func (c *Client) CreateIssue(ctx context.Context, token string, draft domain.IssueDraft) (string, error) {
	type fieldValue struct {
		Name string `json:"name"`
	}
	type customField struct {
		Name  string     `json:"name"`
		Type  string     `json:"$type"`
		Value fieldValue `json:"value"`
	}
	type project struct {
		ID string `json:"id"`
	}

	fields := make([]customField, 0, len(draft.Fields))
	for _, f := range draft.Fields {
		fields = append(fields, customField{
			Name:  f.FieldName,
			Type:  "SingleEnumIssueCustomField",
			Value: fieldValue{Name: f.Value},
		})
	}

	body := struct {
		Summary      string        `json:"summary"`
		Description  string        `json:"description,omitempty"`
		Project      project       `json:"project"`
		CustomFields []customField `json:"customFields,omitempty"`
	}{
		Summary:      draft.Summary,
		Description:  draft.Description,
		Project:      project{ID: draft.ProjectID},
		CustomFields: fields,
	}

	q := url.Values{}
	q.Set("fields", "idReadable")

	var created struct {
		IDReadable string `json:"idReadable"`
	}
	if err := c.do(ctx, token, http.MethodPost, "/issues", q, body, &created); err != nil {
		return "", err
	}
	return created.IDReadable, nil
}
