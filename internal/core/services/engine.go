package services

import "github.com/custodia-labs/trackbot/internal/core/domain"

// Env carries the option sets a wizard transition validates text input
// against. The dispatcher pre-fetches exactly what the current state
// needs; the engine itself never performs I/O. A nil set means no input
// can match, which keeps the transition a silent no-op.
type Env struct {
	Projects []domain.ProjectRef
	Stream   *domain.FieldBundle
	Type     *domain.FieldBundle
}

// Engine is the pure transition table. The transition relation is total:
// every (State, Command) pair yields a next state and intents, with
// unmatched pairs keeping the state and emitting nothing.
type Engine struct {
	streamField string
	typeField   string
}

// NewEngine creates an engine. streamField and typeField name the project
// custom fields the new-issue wizard collects.
func NewEngine(streamField, typeField string) *Engine {
	return &Engine{streamField: streamField, typeField: typeField}
}

// Transition computes the next state and the intents to perform for it.
func (e *Engine) Transition(state domain.State, ev domain.Event, env Env) (domain.State, []domain.Intent) {
	// An unresolvable callback token means the keyboard it came from is
	// stale; clear it regardless of state.
	if _, ok := ev.Command.(domain.InvalidCmd); ok {
		if ev.FromKeyboard {
			return state, []domain.Intent{domain.ClearKeyboard{Ref: ev.Ref}}
		}
		return state, nil
	}

	switch s := state.(type) {
	case domain.Idle:
		return e.fromIdle(s, ev)
	case domain.InBacklog:
		return e.fromBacklog(s, ev)
	case domain.NewIssue:
		return e.fromWizard(s, ev, func(text string) (domain.State, []domain.Intent) {
			return domain.NewIssueSummary{Summary: text},
				[]domain.Intent{domain.PromptProject{User: ev.User, Chat: ev.Chat}}
		})
	case domain.NewIssueSummary:
		return e.fromWizard(s, ev, func(text string) (domain.State, []domain.Intent) {
			for _, p := range env.Projects {
				if p.Name == text {
					next := domain.NewIssueProject{Summary: s.Summary, Project: p}
					return next, []domain.Intent{domain.PromptField{
						User: ev.User, Chat: ev.Chat, Project: p, FieldName: e.streamField,
					}}
				}
			}
			return s, nil
		})
	case domain.NewIssueProject:
		return e.fromWizard(s, ev, func(text string) (domain.State, []domain.Intent) {
			if env.Stream == nil || !env.Stream.Has(text) {
				return s, nil
			}
			next := domain.NewIssueStream{Summary: s.Summary, Project: s.Project, Stream: env.Stream.Value(text)}
			return next, []domain.Intent{domain.PromptField{
				User: ev.User, Chat: ev.Chat, Project: s.Project, FieldName: e.typeField,
			}}
		})
	case domain.NewIssueStream:
		return e.fromWizard(s, ev, func(text string) (domain.State, []domain.Intent) {
			if env.Type == nil || !env.Type.Has(text) {
				return s, nil
			}
			next := domain.NewIssueType{Summary: s.Summary, Project: s.Project, Stream: s.Stream, Type: env.Type.Value(text)}
			return next, []domain.Intent{domain.PromptDescription{Chat: ev.Chat}}
		})
	case domain.NewIssueType:
		return e.fromWizard(s, ev, func(text string) (domain.State, []domain.Intent) {
			next := domain.NewIssueDesc{Summary: s.Summary, Project: s.Project, Stream: s.Stream, Type: s.Type, Desc: text}
			return next, []domain.Intent{domain.PromptSave{Chat: ev.Chat}}
		})
	case domain.NewIssueDesc:
		switch ev.Command.(type) {
		case domain.SaveCmd:
			return domain.Idle{}, []domain.Intent{domain.CreateIssue{User: ev.User, Chat: ev.Chat, Draft: s.Draft()}}
		case domain.CancelCmd:
			return domain.Idle{}, []domain.Intent{domain.AckCancel{Chat: ev.Chat}}
		default:
			return s, nil
		}
	default:
		// Unknown states cannot arise from the store, which maps
		// anything unreadable to Idle. Keep the relation total anyway.
		return state, nil
	}
}

func (e *Engine) fromIdle(s domain.Idle, ev domain.Event) (domain.State, []domain.Intent) {
	switch cmd := ev.Command.(type) {
	case domain.StartCmd:
		return s, []domain.Intent{domain.ShowGreeting{User: ev.User, Chat: ev.Chat, FirstName: ev.FirstName}}
	case domain.LoginCmd:
		return s, []domain.Intent{domain.ShowAuthLink{User: ev.User, Chat: ev.Chat}}
	case domain.BacklogCmd:
		return domain.InBacklog{Top: cmd.Params.Top, Skip: cmd.Params.Skip},
			[]domain.Intent{domain.RenderBacklog{User: ev.User, Chat: ev.Chat, Params: cmd.Params}}
	case domain.NewIssueCmd:
		return domain.NewIssue{}, []domain.Intent{domain.PromptSummary{Chat: ev.Chat}}
	default:
		return s, nil
	}
}

func (e *Engine) fromBacklog(s domain.InBacklog, ev domain.Event) (domain.State, []domain.Intent) {
	switch cmd := ev.Command.(type) {
	case domain.BacklogStopCmd:
		return domain.Idle{}, []domain.Intent{domain.ClearKeyboard{Ref: ev.Ref}}
	case domain.StopCmd:
		return domain.Idle{}, []domain.Intent{domain.AckStop{Chat: ev.Chat}}
	case domain.BacklogNextCmd:
		return e.page(ev, cmd.Params)
	case domain.BacklogPrevCmd:
		return e.page(ev, cmd.Params)
	case domain.BacklogCmd:
		// /backlog inside the backlog restarts it at the first page.
		return domain.InBacklog{Top: cmd.Params.Top, Skip: cmd.Params.Skip},
			[]domain.Intent{domain.RenderBacklog{User: ev.User, Chat: ev.Chat, Params: cmd.Params}}
	case domain.VoteForIssueCmd:
		return s, []domain.Intent{domain.ToggleVote{
			User: ev.User, Chat: ev.Chat, Ref: ev.Ref, Vote: cmd.Vote, Page: s.Params(),
		}}
	default:
		return s, nil
	}
}

func (e *Engine) page(ev domain.Event, p domain.BacklogParams) (domain.State, []domain.Intent) {
	intent := domain.RenderBacklog{User: ev.User, Chat: ev.Chat, Params: p}
	if ev.FromKeyboard {
		ref := ev.Ref
		intent.Edit = &ref
	}
	return domain.InBacklog{Top: p.Top, Skip: p.Skip}, []domain.Intent{intent}
}

// fromWizard handles the commands shared by every wizard step and hands
// free text to the step-specific rule.
func (e *Engine) fromWizard(s domain.State, ev domain.Event, onText func(string) (domain.State, []domain.Intent)) (domain.State, []domain.Intent) {
	switch cmd := ev.Command.(type) {
	case domain.CancelCmd:
		return domain.Idle{}, []domain.Intent{domain.AckCancel{Chat: ev.Chat}}
	case domain.TextCmd:
		return onText(cmd.Text)
	default:
		return s, nil
	}
}
