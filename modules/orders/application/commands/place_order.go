// Package commands contains write use cases for the orders module.
package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/transaction"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// CartLine is the orders module's view of one cart line.
type CartLine struct {
	BookID   types.BookID
	Quantity int
}

// CartSource reads and consumes the user's cart. Implementations adapt
// the cart module's public API.
type CartSource interface {
	// Lines returns the cart's lines, or domain.ErrCartNotFound when
	// the user has no cart.
	Lines(ctx context.Context, userID types.UserID) ([]CartLine, error)

	// Clear deletes the cart. It participates in any transaction
	// carried by ctx.
	Clear(ctx context.Context, userID types.UserID) error
}

// BookPricer resolves the current price of a book. Implementations
// adapt the catalog module's public API.
type BookPricer interface {
	PriceOf(ctx context.Context, bookID types.BookID) (types.Money, error)
}

// PlaceOrderCommand converts the user's cart into an order.
type PlaceOrderCommand struct {
	UserID          string
	ShippingAddress string
}

type PlaceOrderHandler struct {
	repo      domain.OrderRepository
	cart      CartSource
	pricer    BookPricer
	txScope   transaction.Scope
	publisher events.Publisher
}

func NewPlaceOrderHandler(
	repo domain.OrderRepository,
	cart CartSource,
	pricer BookPricer,
	txScope transaction.Scope,
	publisher events.Publisher,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		repo:      repo,
		cart:      cart,
		pricer:    pricer,
		txScope:   txScope,
		publisher: publisher,
	}
}

// Handle executes the place order use case. Reading the cart, pricing
// the lines, persisting the order and deleting the cart all happen in
// one transaction: either the order exists and the cart is gone, or
// neither changed.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (string, error) {
	userID, err := types.ParseUserID(cmd.UserID)
	if err != nil {
		return "", fmt.Errorf("invalid user ID: %w", err)
	}

	order, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (*domain.Order, error) {
		cartLines, err := h.cart.Lines(ctx, userID)
		if err != nil {
			return nil, err
		}
		// An empty cart places no order, same as a missing one.
		if len(cartLines) == 0 {
			return nil, domain.ErrCartNotFound
		}

		lines := make([]domain.OrderLine, 0, len(cartLines))
		for _, cl := range cartLines {
			price, err := h.pricer.PriceOf(ctx, cl.BookID)
			if err != nil {
				return nil, fmt.Errorf("pricing book %s: %w", cl.BookID.String(), err)
			}
			lines = append(lines, domain.NewOrderLine(cl.BookID, cl.Quantity, price))
		}

		order, err := domain.NewOrder(userID, cmd.ShippingAddress, lines)
		if err != nil {
			return nil, err
		}

		if err := h.repo.Save(ctx, order); err != nil {
			return nil, fmt.Errorf("saving order: %w", err)
		}

		if err := h.cart.Clear(ctx, userID); err != nil {
			return nil, fmt.Errorf("clearing cart: %w", err)
		}

		return order, nil
	})
	if err != nil {
		return "", err
	}

	// Events go out after the commit so handlers with external side
	// effects never observe an order that was rolled back.
	if err := h.publisher.Publish(ctx, order.PopDomainEvents()...); err != nil {
		return "", fmt.Errorf("publishing events: %w", err)
	}

	return order.ID().String(), nil
}
