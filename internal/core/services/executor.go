package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
	"github.com/custodia-labs/trackbot/internal/logger"
)

// loginHint is sent whenever a tracker call finds no live access token.
const loginHint = "No valid access token found, use /login to sign in to the tracker"

// Executor performs engine intents against the messenger and the tracker,
// in the order produced.
//
// Failure discipline: when a tracker-backed intent fails, the user gets a
// visible error message and Execute returns the error so the dispatcher
// keeps the prior state (safe retry). Plain sends and keyboard edits are
// not expected to fail; when they do the failure is logged, not retried,
// and execution continues.
type Executor struct {
	messenger    driven.Messenger
	tracker      driven.Tracker
	creds        driven.CredentialStore
	codec        driven.TokenCodec
	render       driven.Renderer
	auth         *AuthService
	backlogQuery string
}

// NewExecutor creates an executor. backlogQuery is the tracker saved
// search backing /backlog.
func NewExecutor(
	messenger driven.Messenger,
	tracker driven.Tracker,
	creds driven.CredentialStore,
	codec driven.TokenCodec,
	render driven.Renderer,
	auth *AuthService,
	backlogQuery string,
) *Executor {
	return &Executor{
		messenger:    messenger,
		tracker:      tracker,
		creds:        creds,
		codec:        codec,
		render:       render,
		auth:         auth,
		backlogQuery: backlogQuery,
	}
}

// Execute performs the intents in order. The first tracker-backed failure
// aborts the remainder and is returned after being surfaced to the user.
func (e *Executor) Execute(ctx context.Context, intents []domain.Intent) error {
	for _, intent := range intents {
		if err := e.execute(ctx, intent); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) execute(ctx context.Context, intent domain.Intent) error {
	switch it := intent.(type) {
	case domain.ShowGreeting:
		e.showLoginLink(ctx, it.User, it.Chat, it.FirstName)
		return nil
	case domain.ShowAuthLink:
		e.showLoginLink(ctx, it.User, it.Chat, "")
		return nil
	case domain.RenderBacklog:
		return e.renderBacklog(ctx, it.User, it.Chat, it.Edit, it.Params)
	case domain.ToggleVote:
		return e.toggleVote(ctx, it)
	case domain.ClearKeyboard:
		if err := e.messenger.ClearKeyboard(ctx, it.Ref); err != nil {
			logger.Warn("clearing keyboard: %v", err)
		}
		return nil
	case domain.PromptSummary:
		e.sendPlain(ctx, it.Chat, "Enter a summary for the new issue (or /cancel)")
		return nil
	case domain.PromptProject:
		return e.promptProject(ctx, it.User, it.Chat)
	case domain.PromptField:
		return e.promptField(ctx, it)
	case domain.PromptDescription:
		e.sendPlain(ctx, it.Chat, "Enter a description for the issue")
		return nil
	case domain.PromptSave:
		e.sendPlain(ctx, it.Chat, "Draft complete. /save to submit, /cancel to discard")
		return nil
	case domain.AckCancel:
		e.sendPlain(ctx, it.Chat, "Issue draft discarded")
		return nil
	case domain.AckStop:
		e.sendPlain(ctx, it.Chat, "Backlog closed")
		return nil
	case domain.CreateIssue:
		return e.createIssue(ctx, it)
	default:
		logger.Warn("unknown intent %T", intent)
		return nil
	}
}

// NotifyError surfaces a collaborator failure to the user. Used by the
// executor itself and by the dispatcher when pre-fetching option sets.
func (e *Executor) NotifyError(ctx context.Context, chat domain.ChatID, err error) {
	logger.Warn("collaborator error: %v", err)
	if errors.Is(err, domain.ErrNotAuthenticated) {
		e.sendPlain(ctx, chat, loginHint)
		return
	}
	e.sendPlain(ctx, chat, fmt.Sprintf("Error occurred: %v", err))
}

// token returns the user's live access token, surfacing the login hint
// when there is none.
func (e *Executor) token(ctx context.Context, user domain.UserID, chat domain.ChatID) (string, error) {
	token, err := e.creds.Get(ctx, user)
	if err != nil {
		logger.Warn("no token for user %d: %v", user, err)
		e.sendPlain(ctx, chat, loginHint)
		return "", err
	}
	return token, nil
}

func (e *Executor) showLoginLink(ctx context.Context, user domain.UserID, chat domain.ChatID, firstName string) {
	text := "Use the button below to sign in to the tracker"
	if firstName != "" {
		greeting, err := e.render.Greeting(firstName)
		if err != nil {
			logger.Warn("rendering greeting: %v", err)
		} else {
			text = greeting
		}
	}
	url, err := e.auth.LoginURL(user)
	if err != nil {
		logger.Warn("building login url: %v", err)
		e.sendPlain(ctx, chat, text)
		return
	}
	kb := &domain.InlineKeyboard{}
	kb.AddRow([]domain.Button{{Text: "Login", URL: url}})
	if _, err := e.messenger.Send(ctx, chat, text, kb); err != nil {
		logger.Warn("sending login link: %v", err)
	}
}

func (e *Executor) renderBacklog(ctx context.Context, user domain.UserID, chat domain.ChatID, edit *domain.MessageRef, params domain.BacklogParams) error {
	token, err := e.token(ctx, user, chat)
	if err != nil {
		return err
	}
	issues, err := e.tracker.ListIssues(ctx, token, e.backlogQuery, params.Top, params.Skip)
	if err != nil {
		e.NotifyError(ctx, chat, err)
		return err
	}
	text, err := e.render.BacklogPage(issues, params)
	if err != nil {
		e.NotifyError(ctx, chat, err)
		return err
	}
	kb := backlogKeyboard(e.codec, issues, params)
	if edit != nil {
		if err := e.messenger.Edit(ctx, *edit, text, kb); err != nil {
			logger.Warn("editing backlog page: %v", err)
		}
		return nil
	}
	if _, err := e.messenger.Send(ctx, chat, text, kb); err != nil {
		logger.Warn("sending backlog page: %v", err)
	}
	return nil
}

func (e *Executor) toggleVote(ctx context.Context, it domain.ToggleVote) error {
	token, err := e.token(ctx, it.User, it.Chat)
	if err != nil {
		return err
	}
	if err := e.tracker.VoteIssue(ctx, token, it.Vote.IssueID, !it.Vote.HasVote); err != nil {
		e.NotifyError(ctx, it.Chat, err)
		return err
	}
	// Re-render the page so the vote button reflects the new state.
	ref := it.Ref
	return e.renderBacklog(ctx, it.User, it.Chat, &ref, it.Page)
}

func (e *Executor) promptProject(ctx context.Context, user domain.UserID, chat domain.ChatID) error {
	token, err := e.token(ctx, user, chat)
	if err != nil {
		return err
	}
	projects, err := e.tracker.ListProjects(ctx, token)
	if err != nil {
		e.NotifyError(ctx, chat, err)
		return err
	}
	text, err := e.render.ProjectList(projects)
	if err != nil {
		e.NotifyError(ctx, chat, err)
		return err
	}
	e.sendPlain(ctx, chat, text)
	return nil
}

func (e *Executor) promptField(ctx context.Context, it domain.PromptField) error {
	token, err := e.token(ctx, it.User, it.Chat)
	if err != nil {
		return err
	}
	bundle, err := e.tracker.GetFieldBundle(ctx, token, it.Project.ID, it.FieldName)
	if err != nil {
		e.NotifyError(ctx, it.Chat, err)
		return err
	}
	text, err := e.render.FieldValues(it.FieldName, bundle.Values)
	if err != nil {
		e.NotifyError(ctx, it.Chat, err)
		return err
	}
	e.sendPlain(ctx, it.Chat, text)
	return nil
}

func (e *Executor) createIssue(ctx context.Context, it domain.CreateIssue) error {
	token, err := e.token(ctx, it.User, it.Chat)
	if err != nil {
		return err
	}
	issueID, err := e.tracker.CreateIssue(ctx, token, it.Draft)
	if err != nil {
		e.NotifyError(ctx, it.Chat, err)
		return err
	}
	text, err := e.render.IssueCreated(issueID)
	if err != nil {
		logger.Warn("rendering issue created: %v", err)
		text = fmt.Sprintf("Created issue %s", issueID)
	}
	e.sendPlain(ctx, it.Chat, text)
	return nil
}

// sendPlain sends text with no keyboard, logging delivery failures.
func (e *Executor) sendPlain(ctx context.Context, chat domain.ChatID, text string) {
	if _, err := e.messenger.Send(ctx, chat, text, nil); err != nil {
		logger.Warn("sending message: %v", err)
	}
}
