package services

import (
	"context"

	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
	"github.com/custodia-labs/trackbot/internal/core/ports/driving"
	"github.com/custodia-labs/trackbot/internal/logger"
)

// Ensure DispatchService implements the interface.
var _ driving.Dispatcher = (*DispatchService)(nil)

// DispatchService runs the per-event pipeline: normalize, load session,
// transition, execute, persist. The get-transition-execute-set cycle for
// one user runs under that user's lock, so two events for the same user
// can never race a lost update; unrelated users proceed concurrently.
type DispatchService struct {
	normalizer *Normalizer
	engine     *Engine
	executor   *Executor
	sessions   driven.SessionStore
	tracker    driven.Tracker
	creds      driven.CredentialStore
	locks      *UserLocks

	streamField string
	typeField   string
}

// NewDispatchService wires the dispatch pipeline.
func NewDispatchService(
	normalizer *Normalizer,
	engine *Engine,
	executor *Executor,
	sessions driven.SessionStore,
	tracker driven.Tracker,
	creds driven.CredentialStore,
	locks *UserLocks,
	streamField, typeField string,
) *DispatchService {
	return &DispatchService{
		normalizer:  normalizer,
		engine:      engine,
		executor:    executor,
		sessions:    sessions,
		tracker:     tracker,
		creds:       creds,
		locks:       locks,
		streamField: streamField,
		typeField:   typeField,
	}
}

// HandleUpdate dispatches one inbound event.
func (d *DispatchService) HandleUpdate(ctx context.Context, upd domain.Update) error {
	ev, err := d.normalizer.Normalize(upd)
	if err != nil {
		logger.Debug("dropping update: %v", err)
		return err
	}

	unlock := d.locks.Lock(ev.User)
	defer unlock()

	state, err := d.sessions.Get(ctx, ev.User)
	if err != nil {
		logger.Warn("reading session for user %d: %v, treating as idle", ev.User, err)
		state = domain.Idle{}
	}

	env, err := d.fetchEnv(ctx, ev, state)
	if err != nil {
		// Option sets could not be fetched; the user keeps the prior
		// state and may retry.
		d.executor.NotifyError(ctx, ev.Chat, err)
		return err
	}

	next, intents := d.engine.Transition(state, ev, env)

	if err := d.executor.Execute(ctx, intents); err != nil {
		// Already surfaced. The prior state stays current, so the
		// user's next input is interpreted in the pre-failure context.
		return err
	}

	if err := d.sessions.Set(ctx, ev.User, next); err != nil {
		logger.Warn("persisting session for user %d: %v", ev.User, err)
		return err
	}
	return nil
}

// fetchEnv pre-fetches the option set the current wizard step validates
// free text against. Nothing is fetched for other commands or states, so
// the common dispatch path stays free of tracker calls.
func (d *DispatchService) fetchEnv(ctx context.Context, ev domain.Event, state domain.State) (Env, error) {
	if _, ok := ev.Command.(domain.TextCmd); !ok {
		return Env{}, nil
	}
	switch s := state.(type) {
	case domain.NewIssueSummary:
		token, err := d.creds.Get(ctx, ev.User)
		if err != nil {
			return Env{}, err
		}
		projects, err := d.tracker.ListProjects(ctx, token)
		if err != nil {
			return Env{}, err
		}
		return Env{Projects: projects}, nil
	case domain.NewIssueProject:
		bundle, err := d.fieldBundle(ctx, ev.User, s.Project.ID, d.streamField)
		if err != nil {
			return Env{}, err
		}
		return Env{Stream: bundle}, nil
	case domain.NewIssueStream:
		bundle, err := d.fieldBundle(ctx, ev.User, s.Project.ID, d.typeField)
		if err != nil {
			return Env{}, err
		}
		return Env{Type: bundle}, nil
	default:
		return Env{}, nil
	}
}

func (d *DispatchService) fieldBundle(ctx context.Context, user domain.UserID, projectID, fieldName string) (*domain.FieldBundle, error) {
	token, err := d.creds.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	return d.tracker.GetFieldBundle(ctx, token, projectID, fieldName)
}
