// Package persistence implements repository interfaces for orders.
package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// InMemoryRepository implements OrderRepository using in-memory storage.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *InMemoryRepository) Save(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID().String()] = order
	return nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id types.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id.String()]
	if !exists {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *InMemoryRepository) FindByUserID(_ context.Context, userID types.UserID, offset, limit int) ([]*domain.Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var userOrders []*domain.Order
	for _, order := range r.orders {
		if order.UserID() == userID {
			userOrders = append(userOrders, order)
		}
	}

	// Newest first, order id as tiebreak, matching the store's ordering.
	sort.Slice(userOrders, func(i, j int) bool {
		ci, cj := userOrders[i].CreatedAt(), userOrders[j].CreatedAt()
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return userOrders[i].ID().String() < userOrders[j].ID().String()
	})

	total := len(userOrders)

	if offset >= total {
		return []*domain.Order{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return userOrders[offset:end], total, nil
}

var _ domain.OrderRepository = (*InMemoryRepository)(nil)
