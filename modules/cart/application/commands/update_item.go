package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/application/queries"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/transaction"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// UpdateItemCommand sets the exact quantity of an existing cart line.
type UpdateItemCommand struct {
	UserID   string
	LineID   string
	Quantity int
}

type UpdateItemHandler struct {
	repo    domain.CartRepository
	txScope transaction.Scope
}

func NewUpdateItemHandler(repo domain.CartRepository, txScope transaction.Scope) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo, txScope: txScope}
}

func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*queries.CartDTO, error) {
	userID, err := types.ParseUserID(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}
	lineID, err := domain.ParseLineID(cmd.LineID)
	if err != nil {
		return nil, fmt.Errorf("invalid line ID: %w", err)
	}

	return transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (*queries.CartDTO, error) {
		cart, err := h.repo.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		if err := cart.UpdateLineQuantity(lineID, cmd.Quantity); err != nil {
			return nil, err
		}

		if err := h.repo.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("saving cart: %w", err)
		}

		return queries.ToCartDTO(cart), nil
	})
}
