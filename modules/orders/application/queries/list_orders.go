// Package queries contains read use cases for the orders module.
package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/transaction"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// MoneyDTO carries an exact decimal amount as a string, e.g. "12.99".
type MoneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoneyDTO(m types.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Amount().String(), Currency: m.Currency()}
}

// OrderLineDTO is a read model for one order line.
type OrderLineDTO struct {
	LineID    string   `json:"line_id"`
	BookID    string   `json:"book_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice MoneyDTO `json:"unit_price"`
	Subtotal  MoneyDTO `json:"subtotal"`
}

// OrderDTO is a read model for order data.
type OrderDTO struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	Lines           []OrderLineDTO `json:"lines"`
	Status          string         `json:"status"`
	ShippingAddress string         `json:"shipping_address"`
	Total           MoneyDTO       `json:"total"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// OrderListDTO contains a paginated list of orders.
type OrderListDTO struct {
	Orders     []*OrderDTO `json:"orders"`
	TotalCount int         `json:"total_count"`
	Offset     int         `json:"offset"`
	Limit      int         `json:"limit"`
}

// ListOrdersQuery retrieves the caller's order history.
type ListOrdersQuery struct {
	UserID string
	Offset int
	Limit  int
}

type ListOrdersHandler struct {
	repo      domain.OrderRepository
	readScope transaction.Scope
}

func NewListOrdersHandler(repo domain.OrderRepository, readScope transaction.Scope) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo, readScope: readScope}
}

func (h *ListOrdersHandler) Handle(ctx context.Context, query ListOrdersQuery) (*OrderListDTO, error) {
	userID, err := types.ParseUserID(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	// A negative offset would slice out of range in the in-memory repo and
	// produce an invalid OFFSET clause in Spanner.
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	// The order rows and their line rows are read inside one read scope so
	// the page is a consistent snapshot.
	type page struct {
		orders []*domain.Order
		total  int
	}
	result, err := transaction.ExecuteWithResult(ctx, h.readScope, func(ctx context.Context) (page, error) {
		orders, total, err := h.repo.FindByUserID(ctx, userID, offset, limit)
		return page{orders: orders, total: total}, err
	})
	if err != nil {
		return nil, err
	}
	orders, total := result.orders, result.total

	dtos := make([]*OrderDTO, len(orders))
	for i, order := range orders {
		dtos[i] = toOrderDTO(order)
	}

	return &OrderListDTO{
		Orders:     dtos,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
	}, nil
}

func toOrderLineDTO(line domain.OrderLine) OrderLineDTO {
	return OrderLineDTO{
		LineID:    line.ID().String(),
		BookID:    line.BookID().String(),
		Quantity:  line.Quantity(),
		UnitPrice: toMoneyDTO(line.UnitPrice()),
		Subtotal:  toMoneyDTO(line.Subtotal()),
	}
}

func toOrderDTO(order *domain.Order) *OrderDTO {
	lines := make([]OrderLineDTO, len(order.Lines()))
	for i, line := range order.Lines() {
		lines[i] = toOrderLineDTO(line)
	}

	return &OrderDTO{
		ID:              order.ID().String(),
		UserID:          order.UserID().String(),
		Lines:           lines,
		Status:          order.Status().String(),
		ShippingAddress: order.ShippingAddress(),
		Total:           toMoneyDTO(order.Total()),
		CreatedAt:       order.CreatedAt(),
		UpdatedAt:       order.UpdatedAt(),
	}
}
