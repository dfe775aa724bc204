package domain

// Intent is a side effect requested by the state machine engine. The
// engine never touches a collaborator itself; it emits Intents and the
// action executor performs them in order. This is what keeps transitions
// deterministically testable without network access.
type Intent interface {
	isIntent()
}

// ShowGreeting greets the user and offers the tracker login link.
type ShowGreeting struct {
	User      UserID
	Chat      ChatID
	FirstName string
}

// ShowAuthLink re-sends the tracker login link.
type ShowAuthLink struct {
	User UserID
	Chat ChatID
}

// RenderBacklog fetches the backlog page at Params and shows it. When
// Edit is set the existing bot message is edited in place, otherwise a
// new message is sent.
type RenderBacklog struct {
	User   UserID
	Chat   ChatID
	Edit   *MessageRef
	Params BacklogParams
}

// ToggleVote flips the user's vote on an issue, then re-renders the page
// the button lived on.
type ToggleVote struct {
	User UserID
	Chat ChatID
	Ref  MessageRef
	Vote VoteParams
	// Page is the window the user was looking at; re-rendered after the
	// vote so the button reflects the new vote state.
	Page BacklogParams
}

// ClearKeyboard removes the inline keyboard from a bot message.
type ClearKeyboard struct {
	Ref MessageRef
}

// PromptSummary asks for the new issue's summary.
type PromptSummary struct {
	Chat ChatID
}

// PromptProject asks the user to pick a project. The executor fetches the
// current project list for display.
type PromptProject struct {
	User UserID
	Chat ChatID
}

// PromptField asks the user to pick a value of a project custom field
// (Stream, Type). The executor fetches the field's value bundle.
type PromptField struct {
	User      UserID
	Chat      ChatID
	Project   ProjectRef
	FieldName string
}

// PromptDescription asks for the issue description.
type PromptDescription struct {
	Chat ChatID
}

// PromptSave tells the user the draft is complete and /save submits it.
type PromptSave struct {
	Chat ChatID
}

// AckCancel confirms the wizard was abandoned.
type AckCancel struct {
	Chat ChatID
}

// AckStop confirms the backlog view was closed from the text side.
type AckStop struct {
	Chat ChatID
}

// CreateIssue submits the accumulated draft to the tracker.
type CreateIssue struct {
	User  UserID
	Chat  ChatID
	Draft IssueDraft
}

func (ShowGreeting) isIntent()      {}
func (ShowAuthLink) isIntent()      {}
func (RenderBacklog) isIntent()     {}
func (ToggleVote) isIntent()        {}
func (ClearKeyboard) isIntent()     {}
func (PromptSummary) isIntent()     {}
func (PromptProject) isIntent()     {}
func (PromptField) isIntent()       {}
func (PromptDescription) isIntent() {}
func (PromptSave) isIntent()        {}
func (AckCancel) isIntent()         {}
func (AckStop) isIntent()           {}
func (CreateIssue) isIntent()       {}
