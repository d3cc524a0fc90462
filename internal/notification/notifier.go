package notification

import (
	"context"
	"log/slog"

	"github.com/nicdiaze/Finances/internal/core/events"
)

// Notifier is the presentation collaborator for operation outcomes: it
// consumes transaction lifecycle events off the bus instead of the core
// mutating any shared notification state. The current sink is the log;
// a UI toast channel would subscribe the same way.
type Notifier struct {
	logger *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Register subscribes the notifier to every transaction event type.
func (n *Notifier) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeTransactionCreated, n.handle)
	bus.Subscribe(events.EventTypeTransactionUpdated, n.handle)
	bus.Subscribe(events.EventTypeTransactionDeleted, n.handle)
}

func (n *Notifier) handle(ctx context.Context, event events.Event) error {
	n.logger.Info("notification",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"occurred_at", event.OccurredAt(),
		"payload", event.Payload())
	return nil
}
