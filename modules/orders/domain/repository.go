package domain

import (
	"context"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error

	// FindByID returns the order regardless of owner. Callers enforce
	// the user scoping rules.
	FindByID(ctx context.Context, id types.OrderID) (*Order, error)

	// FindByUserID returns a page of the user's orders ordered by
	// creation time descending, order id as tiebreak, plus the total
	// count for the user.
	FindByUserID(ctx context.Context, userID types.UserID, offset, limit int) ([]*Order, int, error)
}
