package driving

import (
	"context"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

// Dispatcher consumes inbound transport events. The transport poller calls
// HandleUpdate once per event; events for distinct users may be delivered
// concurrently.
type Dispatcher interface {
	// HandleUpdate normalizes and dispatches one event. It returns
	// domain.ErrUnsupportedUpdate for event kinds the system does not
	// handle; any other error has already been surfaced to the user
	// where possible and is returned for logging only.
	HandleUpdate(ctx context.Context, upd domain.Update) error
}
