package domain

import (
	"context"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// CartRepository persists carts keyed by their owning user.
type CartRepository interface {
	// FindByUser returns the user's cart, or ErrCartNotFound if the
	// user never had one.
	FindByUser(ctx context.Context, userID types.UserID) (*Cart, error)

	// Save persists the cart and all its lines.
	Save(ctx context.Context, cart *Cart) error

	// DeleteByUser removes the user's cart and its lines. Deleting an
	// absent cart is not an error.
	DeleteByUser(ctx context.Context, userID types.UserID) error
}
