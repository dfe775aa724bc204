package driven

import (
	"context"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// Tracker is the issue tracker REST surface the executor consumes. All
// calls are on behalf of a user and carry that user's access token.
type Tracker interface {
	// ListIssues returns one backlog page for the query window.
	ListIssues(ctx context.Context, token, query string, top, skip int) (domain.Issues, error)

	// VoteIssue sets the caller's vote on an issue.
	VoteIssue(ctx context.Context, token, issueID string, hasVote bool) error

	// ListProjects returns all projects sorted by name.
	ListProjects(ctx context.Context, token string) ([]domain.ProjectRef, error)

	// GetFieldBundle returns the allowed values of a project custom field.
	GetFieldBundle(ctx context.Context, token, projectID, fieldName string) (*domain.FieldBundle, error)

	// CreateIssue submits a draft and returns the new issue's readable id.
	CreateIssue(ctx context.Context, token string, draft domain.IssueDraft) (string, error)
}
