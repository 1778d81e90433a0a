// Package commands contains write use cases for the cart module.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/application/queries"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/transaction"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// BookCatalog is the cart module's view of the catalog: just enough to
// reject lines for books that do not exist or were removed.
type BookCatalog interface {
	BookExists(ctx context.Context, bookID types.BookID) (bool, error)
}

// AddItemCommand puts a quantity of a book into the user's cart,
// creating the cart on first use. Adding a book already in the cart
// merges quantities.
type AddItemCommand struct {
	UserID   string
	BookID   string
	Quantity int
}

type AddItemHandler struct {
	repo    domain.CartRepository
	catalog BookCatalog
	txScope transaction.Scope
}

func NewAddItemHandler(repo domain.CartRepository, catalog BookCatalog, txScope transaction.Scope) *AddItemHandler {
	return &AddItemHandler{repo: repo, catalog: catalog, txScope: txScope}
}

func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*queries.CartDTO, error) {
	userID, err := types.ParseUserID(cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}
	bookID, err := types.ParseBookID(cmd.BookID)
	if err != nil {
		return nil, fmt.Errorf("invalid book ID: %w", err)
	}

	// The read-modify-write runs inside one transaction so two
	// concurrent adds of the same book merge instead of one
	// overwriting the other.
	return transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (*queries.CartDTO, error) {
		exists, err := h.catalog.BookExists(ctx, bookID)
		if err != nil {
			return nil, fmt.Errorf("checking book: %w", err)
		}
		if !exists {
			return nil, domain.ErrBookNotFound
		}

		cart, err := h.repo.FindByUser(ctx, userID)
		if errors.Is(err, domain.ErrCartNotFound) {
			cart = domain.NewCart(userID)
		} else if err != nil {
			return nil, err
		}

		if _, err := cart.AddItem(bookID, cmd.Quantity); err != nil {
			return nil, err
		}

		if err := h.repo.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("saving cart: %w", err)
		}

		return queries.ToCartDTO(cart), nil
	})
}
