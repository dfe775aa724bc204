package driven

import "github.com/custodia-labs/trackbot/internal/core/domain"

// Renderer produces the user-visible text for outbound messages. The core
// treats rendered strings as opaque values.
type Renderer interface {
	// Greeting renders the /start reply.
	Greeting(firstName string) (string, error)

	// BacklogPage renders one backlog page. Called with zero issues when
	// the page is past the end of the query.
	BacklogPage(issues domain.Issues, params domain.BacklogParams) (string, error)

	// ProjectList renders the pick-a-project prompt.
	ProjectList(projects []domain.ProjectRef) (string, error)

	// FieldValues renders the pick-a-field-value prompt.
	FieldValues(fieldName string, values []string) (string, error)

	// IssueCreated renders the wizard success message.
	IssueCreated(issueID string) (string, error)
}
