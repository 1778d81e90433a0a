package persistence

import (
	"context"
	"sync"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// InMemoryCartRepository is a thread-safe in-memory CartRepository for
// tests and local development.
type InMemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{carts: make(map[string]*domain.Cart)}
}

func (r *InMemoryCartRepository) FindByUser(_ context.Context, userID types.UserID) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID.String()]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return snapshot(cart), nil
}

func (r *InMemoryCartRepository) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.UserID().String()] = snapshot(cart)
	return nil
}

func (r *InMemoryCartRepository) DeleteByUser(_ context.Context, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID.String())
	return nil
}

// snapshot deep-copies a cart so callers cannot mutate stored state.
func snapshot(cart *domain.Cart) *domain.Cart {
	return domain.ReconstituteCart(cart.UserID(), cart.Lines(), cart.CreatedAt(), cart.UpdatedAt())
}

var _ domain.CartRepository = (*InMemoryCartRepository)(nil)
