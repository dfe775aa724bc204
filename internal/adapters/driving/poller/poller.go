// Package poller drives the dispatcher from the Telegram long-poll
// update stream.
package poller

import (
	"context"
	"time"

	"github.com/custodia-labs/trackbot/internal/adapters/driven/messenger/telegram"
	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driving"
	"github.com/custodia-labs/trackbot/internal/logger"
)

// retryDelay spaces getUpdates retries after a transport failure.
const retryDelay = 3 * time.Second

// Poller long-polls the Bot API and hands each update to the dispatcher.
// Updates are dispatched on their own goroutines so one user's slow
// tracker call never stalls another user's event; the dispatcher's
// per-user locks keep same-user events serialized.
type Poller struct {
	client     *telegram.Client
	dispatcher driving.Dispatcher
}

// New creates a poller.
func New(client *telegram.Client, dispatcher driving.Dispatcher) *Poller {
	return &Poller{client: client, dispatcher: dispatcher}
}

// Run polls until the context is canceled.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64
	for {
		updates, err := p.client.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warn("polling updates: %v", err)
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, wire := range updates {
			offset = wire.UpdateID + 1
			upd, ok := telegram.MapUpdate(wire)
			if !ok {
				logger.Debug("skipping unsupported update %d", wire.UpdateID)
				continue
			}
			go p.dispatch(ctx, upd)
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, upd domain.Update) {
	if cb, ok := upd.(domain.CallbackEvent); ok {
		// Stop the client-side spinner promptly, whatever dispatch does.
		if err := p.client.AnswerCallback(ctx, cb.ID); err != nil {
			logger.Debug("answering callback: %v", err)
		}
	}
	if err := p.dispatcher.HandleUpdate(ctx, upd); err != nil {
		logger.Debug("update not dispatched: %v", err)
	}
}
