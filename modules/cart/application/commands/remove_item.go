package commands

import (
	"context"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/application/queries"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/transaction"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// RemoveItemCommand takes a line out of the user's cart. The cart
// itself remains, possibly empty.
type RemoveItemCommand struct {
	UserID string
	LineID string
}

type RemoveItemHandler struct {
	repo    domain.CartRepository
	txScope transaction.Scope
}

func NewRemoveItemHandler(repo domain.CartRepository, txScope transaction.Scope) *RemoveItemHandler {
	return &RemoveItemHandler{repo: repo, txScope: txScope}
}

func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*queries.CartDTO, error) {
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

		if err := cart.RemoveLine(lineID); err != nil {
			return nil, err
		}

		if err := h.repo.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("saving cart: %w", err)
		}

		return queries.ToCartDTO(cart), nil
	})
}
