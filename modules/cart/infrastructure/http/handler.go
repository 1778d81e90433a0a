// Package http provides HTTP handlers for the cart module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/application/commands"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/application/queries"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/cart/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// userIDHeader carries the acting user's id, set by the authenticating
// proxy in front of this service.
const userIDHeader = "X-User-ID"

type Handler struct {
	addItem    *commands.AddItemHandler
	updateItem *commands.UpdateItemHandler
	removeItem *commands.RemoveItemHandler
	getCart    *queries.GetCartHandler
}

// RegisterRoutes registers the cart module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	addItem *commands.AddItemHandler,
	updateItem *commands.UpdateItemHandler,
	removeItem *commands.RemoveItemHandler,
	getCart *queries.GetCartHandler,
) {
	h := &Handler{
		addItem:    addItem,
		updateItem: updateItem,
		removeItem: removeItem,
		getCart:    getCart,
	}

	mux.HandleFunc("GET /api/v1/cart", h.handleGetCart)
	mux.HandleFunc("POST /api/v1/cart/items", h.handleAddItem)
	mux.HandleFunc("PUT /api/v1/cart/items/{lineId}", h.handleUpdateItem)
	mux.HandleFunc("DELETE /api/v1/cart/items/{lineId}", h.handleRemoveItem)
}

// Request DTOs

type addItemRequest struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cart, err := h.getCart.Handle(r.Context(), queries.GetCartQuery{UserID: userID})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.AddItemCommand{
		UserID:   userID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	}
	cart, err := h.addItem.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.UpdateItemCommand{
		UserID:   userID,
		LineID:   r.PathValue("lineId"),
		Quantity: req.Quantity,
	}
	cart, err := h.updateItem.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	cmd := commands.RemoveItemCommand{
		UserID: userID,
		LineID: r.PathValue("lineId"),
	}
	cart, err := h.removeItem.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Helper functions

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing "+userIDHeader+" header")
		return "", false
	}
	return userID, true
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrBookNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity),
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
