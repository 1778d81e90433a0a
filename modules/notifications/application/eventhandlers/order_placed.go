package eventhandlers

import (
	"context"
	"log/slog"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events/contracts"
)

// OrderPlacedHandler handles OrderPlaced events by sending an order
// confirmation.
//
// IMPORTANT: This handler performs external side effects (email sending)
// and MUST NOT run within a database transaction. It is subscribed on
// the InMemoryEventBus, which dispatches after commit.
type OrderPlacedHandler struct {
	logger *slog.Logger
}

func NewOrderPlacedHandler(logger *slog.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{logger: logger}
}

// Handle processes the OrderPlaced event.
func (h *OrderPlacedHandler) Handle(ctx context.Context, event events.Event) error {
	// Mock sending email
	attrs := []any{
		slog.String("order_id", event.AggregateID()),
		slog.String("action", "order_confirmation"),
	}
	if placed, ok := event.(contracts.OrderPlacedEvent); ok {
		attrs = append(attrs,
			slog.String("user_id", placed.UserID),
			slog.String("total", placed.TotalAmount+" "+placed.Currency),
			slog.Int("line_count", placed.LineCount))
	}
	h.logger.Info("sending email to user", attrs...)

	return nil
}
