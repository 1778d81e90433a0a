// Package cart provides shopping cart functionality.
// This is the public API for the cart bounded context.
package cart

import (
	"context"
	"net/http"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/application/commands"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/application/queries"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	httphandler "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/infrastructure/http"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/transaction"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// Module is the public API for the cart bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: CartForUser / ClearCart for order placement.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// CartForUser returns the user's cart snapshot for other modules.
	// It reports domain.ErrCartNotFound when the user has no cart.
	CartForUser(ctx context.Context, userID string) (*queries.CartDTO, error)

	// ClearCart deletes the user's cart. It participates in any
	// transaction carried by ctx.
	ClearCart(ctx context.Context, userID string) error
}

// Config holds the module configuration.
type Config struct {
	Repository  domain.CartRepository
	BookCatalog commands.BookCatalog
	TxScope     transaction.Scope
}

type module struct {
	addItemHandler    *commands.AddItemHandler
	updateItemHandler *commands.UpdateItemHandler
	removeItemHandler *commands.RemoveItemHandler
	getCartHandler    *queries.GetCartHandler

	repo domain.CartRepository
}

// New creates a new cart module.
func New(cfg Config) Module {
	return &module{
		addItemHandler:    commands.NewAddItemHandler(cfg.Repository, cfg.BookCatalog, cfg.TxScope),
		updateItemHandler: commands.NewUpdateItemHandler(cfg.Repository, cfg.TxScope),
		removeItemHandler: commands.NewRemoveItemHandler(cfg.Repository, cfg.TxScope),
		getCartHandler:    queries.NewGetCartHandler(cfg.Repository),
		repo:              cfg.Repository,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.addItemHandler, m.updateItemHandler, m.removeItemHandler, m.getCartHandler)
}

func (m *module) CartForUser(ctx context.Context, userID string) (*queries.CartDTO, error) {
	return m.getCartHandler.Handle(ctx, queries.GetCartQuery{UserID: userID})
}

func (m *module) ClearCart(ctx context.Context, userID string) error {
	uid, err := types.ParseUserID(userID)
	if err != nil {
		return err
	}
	return m.repo.DeleteByUser(ctx, uid)
}
