package queries

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// ListOrderLinesQuery retrieves all lines of one of the caller's orders.
type ListOrderLinesQuery struct {
	UserID  string
	OrderID string
}

type ListOrderLinesHandler struct {
	repo domain.OrderRepository
}

func NewListOrderLinesHandler(repo domain.OrderRepository) *ListOrderLinesHandler {
	return &ListOrderLinesHandler{repo: repo}
}

func (h *ListOrderLinesHandler) Handle(ctx context.Context, query ListOrderLinesQuery) ([]OrderLineDTO, error) {
	order, err := findUserOrder(ctx, h.repo, query.UserID, query.OrderID)
	if err != nil {
		return nil, err
	}

	lines := make([]OrderLineDTO, len(order.Lines()))
	for i, line := range order.Lines() {
		lines[i] = toOrderLineDTO(line)
	}
	return lines, nil
}

// GetOrderLineQuery retrieves one line of one of the caller's orders.
type GetOrderLineQuery struct {
	UserID  string
	OrderID string
	LineID  string
}

type GetOrderLineHandler struct {
	repo domain.OrderRepository
}

func NewGetOrderLineHandler(repo domain.OrderRepository) *GetOrderLineHandler {
	return &GetOrderLineHandler{repo: repo}
}

func (h *GetOrderLineHandler) Handle(ctx context.Context, query GetOrderLineQuery) (*OrderLineDTO, error) {
	order, err := findUserOrder(ctx, h.repo, query.UserID, query.OrderID)
	if err != nil {
		return nil, err
	}

	lineID, err := domain.ParseLineID(query.LineID)
	if err != nil {
		return nil, fmt.Errorf("invalid line ID: %w", err)
	}

	line, err := order.Line(lineID)
	if err != nil {
		return nil, err
	}

	dto := toOrderLineDTO(line)
	return &dto, nil
}

// findUserOrder loads an order and verifies ownership. Another user's
// order is reported as not found so order ids cannot be probed.
func findUserOrder(ctx context.Context, repo domain.OrderRepository, rawUserID, rawOrderID string) (*domain.Order, error) {
	userID, err := types.ParseUserID(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}
	orderID, err := types.ParseOrderID(rawOrderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order ID: %w", err)
	}

	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID() != userID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}
