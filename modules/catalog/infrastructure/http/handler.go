// Package http provides HTTP handlers for the catalog module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/application/commands"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/application/queries"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/catalog/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

type Handler struct {
	createBook     *commands.CreateBookHandler
	updateBook     *commands.UpdateBookHandler
	deleteBook     *commands.DeleteBookHandler
	createCategory *commands.CreateCategoryHandler
	updateCategory *commands.UpdateCategoryHandler
	deleteCategory *commands.DeleteCategoryHandler

	getBook         *queries.GetBookHandler
	listBooks       *queries.ListBooksHandler
	searchBooks     *queries.SearchBooksHandler
	getCategory     *queries.GetCategoryHandler
	listCategories  *queries.ListCategoriesHandler
	booksByCategory *queries.ListBooksByCategoryHandler
}

// RegisterRoutes registers the catalog module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	createBook *commands.CreateBookHandler,
	updateBook *commands.UpdateBookHandler,
	deleteBook *commands.DeleteBookHandler,
	createCategory *commands.CreateCategoryHandler,
	updateCategory *commands.UpdateCategoryHandler,
	deleteCategory *commands.DeleteCategoryHandler,
	getBook *queries.GetBookHandler,
	listBooks *queries.ListBooksHandler,
	searchBooks *queries.SearchBooksHandler,
	getCategory *queries.GetCategoryHandler,
	listCategories *queries.ListCategoriesHandler,
	booksByCategory *queries.ListBooksByCategoryHandler,
) {
	h := &Handler{
		createBook:      createBook,
		updateBook:      updateBook,
		deleteBook:      deleteBook,
		createCategory:  createCategory,
		updateCategory:  updateCategory,
		deleteCategory:  deleteCategory,
		getBook:         getBook,
		listBooks:       listBooks,
		searchBooks:     searchBooks,
		getCategory:     getCategory,
		listCategories:  listCategories,
		booksByCategory: booksByCategory,
	}

	mux.HandleFunc("GET /api/v1/books", h.handleListBooks)
	mux.HandleFunc("GET /api/v1/books/search", h.handleSearchBooks)
	mux.HandleFunc("GET /api/v1/books/{id}", h.handleGetBook)
	mux.HandleFunc("POST /api/v1/books", h.handleCreateBook)
	mux.HandleFunc("PUT /api/v1/books/{id}", h.handleUpdateBook)
	mux.HandleFunc("DELETE /api/v1/books/{id}", h.handleDeleteBook)

	mux.HandleFunc("GET /api/v1/categories", h.handleListCategories)
	mux.HandleFunc("GET /api/v1/categories/{id}", h.handleGetCategory)
	mux.HandleFunc("GET /api/v1/categories/{id}/books", h.handleListBooksByCategory)
	mux.HandleFunc("POST /api/v1/categories", h.handleCreateCategory)
	mux.HandleFunc("PUT /api/v1/categories/{id}", h.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/v1/categories/{id}", h.handleDeleteCategory)
}

// Request/Response DTOs

type bookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ISBN        string   `json:"isbn"`
	Price       string   `json:"price"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	CoverImage  string   `json:"cover_image"`
	CategoryIDs []string `json:"category_ids"`
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Book handlers

func (h *Handler) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.CreateBookCommand{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Currency:    req.Currency,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		CategoryIDs: req.CategoryIDs,
	}
	id, err := h.createBook.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.UpdateBookCommand{
		BookID:      r.PathValue("id"),
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Currency:    req.Currency,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		CategoryIDs: req.CategoryIDs,
	}
	if err := h.updateBook.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteBookCommand{BookID: r.PathValue("id")}
	if err := h.deleteBook.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetBook(w http.ResponseWriter, r *http.Request) {
	query := queries.GetBookQuery{BookID: r.PathValue("id")}
	book, err := h.getBook.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) handleListBooks(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	result, err := h.listBooks.Handle(r.Context(), queries.ListBooksQuery{Offset: offset, Limit: limit})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)

	// Every non-pagination query parameter is a candidate filter field;
	// unknown fields are rejected by the application layer.
	filters := map[string][]string{}
	for key, values := range r.URL.Query() {
		if key == "offset" || key == "limit" {
			continue
		}
		filters[key] = values
	}

	result, err := h.searchBooks.Handle(r.Context(), queries.SearchBooksQuery{
		Filters: filters,
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListBooksByCategory(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	query := queries.ListBooksByCategoryQuery{
		CategoryID: r.PathValue("id"),
		Offset:     offset,
		Limit:      limit,
	}
	result, err := h.booksByCategory.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Category handlers

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.CreateCategoryCommand{Name: req.Name, Description: req.Description}
	id, err := h.createCategory.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.UpdateCategoryCommand{
		CategoryID:  r.PathValue("id"),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.updateCategory.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteCategoryCommand{CategoryID: r.PathValue("id")}
	if err := h.deleteCategory.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)
	result, err := h.listCategories.Handle(r.Context(), queries.ListCategoriesQuery{Offset: offset, Limit: limit})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	query := queries.GetCategoryQuery{CategoryID: r.PathValue("id")}
	category, err := h.getCategory.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Helper functions

func pagination(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return offset, limit
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateISBN):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnknownFilterField),
		errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrAuthorRequired),
		errors.Is(err, domain.ErrISBNRequired),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrCategoryNameRequired),
		errors.Is(err, types.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
