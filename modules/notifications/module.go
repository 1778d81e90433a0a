// Package notifications sends user-facing notifications in reaction to
// domain events.
package notifications

import (
	"log/slog"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/notifications/application/eventhandlers"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events/contracts"
)

// Module represents the notification module entry point.
type Module struct{}

type Config struct {
	EventSubscriber events.Subscriber
	Logger          *slog.Logger
}

// New initializes the notification module and subscribes to events.
func New(cfg Config) *Module {
	logger := cfg.Logger.With("module", "notifications")

	orderPlacedHandler := eventhandlers.NewOrderPlacedHandler(logger)

	if err := cfg.EventSubscriber.Subscribe(contracts.OrderPlacedEventType, orderPlacedHandler); err != nil {
		logger.Error("failed to subscribe to order placed event", slog.Any("error", err))
	}

	return &Module{}
}
