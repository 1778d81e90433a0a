// Package http provides HTTP handlers for the orders module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/application/commands"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/application/queries"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/orders/domain"
	"github.com/Oleksandr-Tymoshenko/Online-Book-Store/modules/shared/types"
)

// userIDHeader carries the acting user's id, set by the authenticating
// proxy in front of this service.
const userIDHeader = "X-User-ID"

type Handler struct {
	placeOrder   *commands.PlaceOrderHandler
	updateStatus *commands.UpdateStatusHandler
	listOrders   *queries.ListOrdersHandler
	listLines    *queries.ListOrderLinesHandler
	getLine      *queries.GetOrderLineHandler
}

// RegisterRoutes registers the orders module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	placeOrder *commands.PlaceOrderHandler,
	updateStatus *commands.UpdateStatusHandler,
	listOrders *queries.ListOrdersHandler,
	listLines *queries.ListOrderLinesHandler,
	getLine *queries.GetOrderLineHandler,
) {
	h := &Handler{
		placeOrder:   placeOrder,
		updateStatus: updateStatus,
		listOrders:   listOrders,
		listLines:    listLines,
		getLine:      getLine,
	}

	mux.HandleFunc("POST /api/v1/orders", h.handlePlaceOrder)
	mux.HandleFunc("GET /api/v1/orders", h.handleListOrders)
	mux.HandleFunc("GET /api/v1/orders/{orderId}/lines", h.handleListOrderLines)
	mux.HandleFunc("GET /api/v1/orders/{orderId}/lines/{lineId}", h.handleGetOrderLine)
	mux.HandleFunc("PATCH /api/v1/orders/{orderId}", h.handleUpdateStatus)
}

// Request/Response DTOs

type placeOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

type placeOrderResponse struct {
	ID string `json:"id"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.PlaceOrderCommand{
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
	}
	id, err := h.placeOrder.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, placeOrderResponse{ID: id})
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	query := queries.ListOrdersQuery{
		UserID: userID,
		Offset: offset,
		Limit:  limit,
	}
	result, err := h.listOrders.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListOrderLines(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := queries.ListOrderLinesQuery{
		UserID:  userID,
		OrderID: r.PathValue("orderId"),
	}
	lines, err := h.listLines.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

func (h *Handler) handleGetOrderLine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := queries.GetOrderLineQuery{
		UserID:  userID,
		OrderID: r.PathValue("orderId"),
		LineID:  r.PathValue("lineId"),
	}
	line, err := h.getLine.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, line)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := commands.UpdateStatusCommand{
		OrderID: r.PathValue("orderId"),
		Status:  req.Status,
	}
	if err := h.updateStatus.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
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
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrCartNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrBlankShippingAddress),
		errors.Is(err, domain.ErrShippingAddressTooLong),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrOrderEmpty),
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
