package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/transaction"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// UpdateStatusCommand is the administrative status update. It is not
// scoped to a user.
type UpdateStatusCommand struct {
	OrderID string
	Status  string
}

type UpdateStatusHandler struct {
	repo      domain.OrderRepository
	txScope   transaction.Scope
	publisher events.Publisher
}

func NewUpdateStatusHandler(
	repo domain.OrderRepository,
	txScope transaction.Scope,
	publisher events.Publisher,
) *UpdateStatusHandler {
	return &UpdateStatusHandler{
		repo:      repo,
		txScope:   txScope,
		publisher: publisher,
	}
}

func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) error {
	orderID, err := types.ParseOrderID(cmd.OrderID)
	if err != nil {
		return fmt.Errorf("invalid order ID: %w", err)
	}

	order, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (*domain.Order, error) {
		order, err := h.repo.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if err := order.SetStatus(domain.Status(cmd.Status)); err != nil {
			return nil, err
		}

		if err := h.repo.Save(ctx, order); err != nil {
			return nil, fmt.Errorf("saving order: %w", err)
		}

		return order, nil
	})
	if err != nil {
		return err
	}

	if err := h.publisher.Publish(ctx, order.PopDomainEvents()...); err != nil {
		return fmt.Errorf("publishing events: %w", err)
	}

	return nil
}
