// Package catalog provides book and category management.
// This is the public API for the catalog bounded context.
package catalog

import (
	"context"
	"net/http"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/application/commands"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/application/queries"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	httphandler "github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/infrastructure/http"
)

// Module is the public API for the catalog bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: BookByID for modules that need book data.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// BookByID returns a book snapshot for other modules. It reports
	// domain.ErrBookNotFound for unknown or removed books.
	BookByID(ctx context.Context, bookID string) (*queries.BookDTO, error)
}

// Config holds the module configuration.
type Config struct {
	BookRepository     domain.BookRepository
	CategoryRepository domain.CategoryRepository
}

type module struct {
	createBookHandler     *commands.CreateBookHandler
	updateBookHandler     *commands.UpdateBookHandler
	deleteBookHandler     *commands.DeleteBookHandler
	createCategoryHandler *commands.CreateCategoryHandler
	updateCategoryHandler *commands.UpdateCategoryHandler
	deleteCategoryHandler *commands.DeleteCategoryHandler

	getBookHandler        *queries.GetBookHandler
	listBooksHandler      *queries.ListBooksHandler
	searchBooksHandler    *queries.SearchBooksHandler
	getCategoryHandler    *queries.GetCategoryHandler
	listCategoriesHandler *queries.ListCategoriesHandler
	booksByCategory       *queries.ListBooksByCategoryHandler
}

// New creates a new catalog module.
func New(cfg Config) Module {
	return &module{
		createBookHandler:     commands.NewCreateBookHandler(cfg.BookRepository),
		updateBookHandler:     commands.NewUpdateBookHandler(cfg.BookRepository),
		deleteBookHandler:     commands.NewDeleteBookHandler(cfg.BookRepository),
		createCategoryHandler: commands.NewCreateCategoryHandler(cfg.CategoryRepository),
		updateCategoryHandler: commands.NewUpdateCategoryHandler(cfg.CategoryRepository),
		deleteCategoryHandler: commands.NewDeleteCategoryHandler(cfg.CategoryRepository),
		getBookHandler:        queries.NewGetBookHandler(cfg.BookRepository),
		listBooksHandler:      queries.NewListBooksHandler(cfg.BookRepository),
		searchBooksHandler:    queries.NewSearchBooksHandler(cfg.BookRepository),
		getCategoryHandler:    queries.NewGetCategoryHandler(cfg.CategoryRepository),
		listCategoriesHandler: queries.NewListCategoriesHandler(cfg.CategoryRepository),
		booksByCategory:       queries.NewListBooksByCategoryHandler(cfg.BookRepository),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux,
		m.createBookHandler, m.updateBookHandler, m.deleteBookHandler,
		m.createCategoryHandler, m.updateCategoryHandler, m.deleteCategoryHandler,
		m.getBookHandler, m.listBooksHandler, m.searchBooksHandler,
		m.getCategoryHandler, m.listCategoriesHandler, m.booksByCategory,
	)
}

func (m *module) BookByID(ctx context.Context, bookID string) (*queries.BookDTO, error) {
	return m.getBookHandler.Handle(ctx, queries.GetBookQuery{BookID: bookID})
}
