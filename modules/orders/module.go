// Package orders provides order management functionality.
// This is the public API for the orders bounded context.
package orders

import (
	"net/http"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/application/commands"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/application/queries"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	httphandler "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/infrastructure/http"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/events"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/transaction"
)

// Module is the public API for the orders bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Domain Events (published on placement).
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration. CartSource and BookPricer are
// adapters over the cart and catalog modules' public APIs; orders never
// touches those modules' internals.
type Config struct {
	Repository     domain.OrderRepository
	CartSource     commands.CartSource
	BookPricer     commands.BookPricer
	TxScope        transaction.Scope
	ReadScope      transaction.Scope
	EventPublisher events.Publisher
}

type module struct {
	placeOrderHandler   *commands.PlaceOrderHandler
	updateStatusHandler *commands.UpdateStatusHandler
	listOrdersHandler   *queries.ListOrdersHandler
	listLinesHandler    *queries.ListOrderLinesHandler
	getLineHandler      *queries.GetOrderLineHandler
}

// New creates a new orders module.
func New(cfg Config) Module {
	return &module{
		placeOrderHandler:   commands.NewPlaceOrderHandler(cfg.Repository, cfg.CartSource, cfg.BookPricer, cfg.TxScope, cfg.EventPublisher),
		updateStatusHandler: commands.NewUpdateStatusHandler(cfg.Repository, cfg.TxScope, cfg.EventPublisher),
		listOrdersHandler:   queries.NewListOrdersHandler(cfg.Repository, cfg.ReadScope),
		listLinesHandler:    queries.NewListOrderLinesHandler(cfg.Repository),
		getLineHandler:      queries.NewGetOrderLineHandler(cfg.Repository),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.placeOrderHandler, m.updateStatusHandler, m.listOrdersHandler, m.listLinesHandler, m.getLineHandler)
}
