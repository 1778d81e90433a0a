package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart"
	cartdomain "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog"
	catalogdomain "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	orderscommands "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/application/commands"
	ordersdomain "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// The orders module talks to the cart and catalog modules only through
// these adapters over their public APIs, translating their sentinels
// into the orders module's own.

type cartSourceAdapter struct {
	cart cart.Module
}

func (a cartSourceAdapter) Lines(ctx context.Context, userID types.UserID) ([]orderscommands.CartLine, error) {
	dto, err := a.cart.CartForUser(ctx, userID.String())
	if err != nil {
		if errors.Is(err, cartdomain.ErrCartNotFound) {
			return nil, ordersdomain.ErrCartNotFound
		}
		return nil, fmt.Errorf("reading cart: %w", err)
	}

	lines := make([]orderscommands.CartLine, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		bookID, err := types.ParseBookID(line.BookID)
		if err != nil {
			return nil, fmt.Errorf("invalid book id in cart: %w", err)
		}
		lines = append(lines, orderscommands.CartLine{
			BookID:   bookID,
			Quantity: line.Quantity,
		})
	}
	return lines, nil
}

func (a cartSourceAdapter) Clear(ctx context.Context, userID types.UserID) error {
	return a.cart.ClearCart(ctx, userID.String())
}

type bookPricerAdapter struct {
	catalog catalog.Module
}

func (a bookPricerAdapter) PriceOf(ctx context.Context, bookID types.BookID) (types.Money, error) {
	book, err := a.catalog.BookByID(ctx, bookID.String())
	if err != nil {
		if errors.Is(err, catalogdomain.ErrBookNotFound) {
			return types.Money{}, fmt.Errorf("book %s no longer available: %w", bookID.String(), err)
		}
		return types.Money{}, err
	}
	return types.NewMoneyFromString(book.Price, book.Currency)
}

// bookCatalogAdapter lets the cart module check book existence without
// importing the catalog's internals.
type bookCatalogAdapter struct {
	catalog catalog.Module
}

func (a bookCatalogAdapter) BookExists(ctx context.Context, bookID types.BookID) (bool, error) {
	_, err := a.catalog.BookByID(ctx, bookID.String())
	if errors.Is(err, catalogdomain.ErrBookNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Compile-time interface checks.
var (
	_ orderscommands.CartSource = cartSourceAdapter{}
	_ orderscommands.BookPricer = bookPricerAdapter{}
)
