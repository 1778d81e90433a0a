// Package queries contains read use cases for the cart module.
package queries

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// CartLineDTO is one line of a cart snapshot.
type CartLineDTO struct {
	LineID   string `json:"line_id"`
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// CartDTO is the full cart snapshot returned by every cart operation.
type CartDTO struct {
	UserID string        `json:"user_id"`
	Lines  []CartLineDTO `json:"lines"`
}

// ToCartDTO converts a cart aggregate to its snapshot form.
func ToCartDTO(cart *domain.Cart) *CartDTO {
	lines := make([]CartLineDTO, 0, len(cart.Lines()))
	for _, line := range cart.Lines() {
		lines = append(lines, CartLineDTO{
			LineID:   line.ID().String(),
			BookID:   line.BookID().String(),
			Quantity: line.Quantity(),
		})
	}
	return &CartDTO{
		UserID: cart.UserID().String(),
		Lines:  lines,
	}
}

// GetCartQuery retrieves a user's cart.
type GetCartQuery struct {
	UserID string
}

type GetCartHandler struct {
	repo domain.CartRepository
}

func NewGetCartHandler(repo domain.CartRepository) *GetCartHandler {
	return &GetCartHandler{repo: repo}
}

func (h *GetCartHandler) Handle(ctx context.Context, query GetCartQuery) (*CartDTO, error) {
	userID, err := types.ParseUserID(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	cart, err := h.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToCartDTO(cart), nil
}
