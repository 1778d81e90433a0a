package eventbus

import (
	"context"
	"log/slog"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
)

// InMemoryEventBus implements a simple synchronous event bus.
// Events are delivered synchronously in the same goroutine, outside any
// database transaction - use it for handlers with external side effects
// (notifications, message relays).
type InMemoryEventBus struct {
	registry *EventHandlerRegistry
	logger   *slog.Logger
}

func New(logger *slog.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewEventHandlerRegistry(logger),
		logger:   logger,
	}
}

// Publish implements events.Publisher.
// A failing handler is logged and does not stop delivery to the rest.
func (b *InMemoryEventBus) Publish(ctx context.Context, evts ...events.Event) error {
	for _, event := range evts {
		handlers := b.registry.HandlersFor(event.EventType())

		b.logger.Debug("publishing event",
			slog.String("event_type", event.EventType().String()),
			slog.String("event_id", event.EventID()),
			slog.Int("handler_count", len(handlers)))

		for _, handler := range handlers {
			if err := handler.Handle(ctx, event); err != nil {
				b.logger.Error("event handler failed",
					slog.String("event_type", event.EventType().String()),
					slog.String("event_id", event.EventID()),
					slog.Any("error", err))
			}
		}
	}
	return nil
}

// Subscribe implements events.Subscriber.
func (b *InMemoryEventBus) Subscribe(eventType events.EventType, handler events.Handler) error {
	return b.registry.Subscribe(eventType, handler)
}

// Registry exposes the underlying handler registry, e.g. for building a
// TransactionalPublisher over the same subscriptions.
func (b *InMemoryEventBus) Registry() HandlerRegistry {
	return b.registry
}

// Compile-time interface checks.
var (
	_ events.Publisher  = (*InMemoryEventBus)(nil)
	_ events.Subscriber = (*InMemoryEventBus)(nil)
)
