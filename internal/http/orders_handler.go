package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/domain"
)

const CheckoutStatusHeader = "X-Checkout-Status"

type CheckoutService interface {
	Checkout(ctx context.Context, req checkout.Request) (*checkout.Result, error)
}

type OrderLister interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}

type OrdersHandler struct {
	checkout CheckoutService
	orders   OrderLister
}

func NewOrdersHandler(svc CheckoutService, orders OrderLister) *OrdersHandler {
	return &OrdersHandler{
		checkout: svc,
		orders:   orders,
	}
}

type CreateOrderRequestDTO struct {
	UserID *int64            `json:"user_id"`
	CartID *int64            `json:"cart_id"`
	Items  []domain.CartItem `json:"items"`
	Total  float64           `json:"total"`
}

// POST /orders
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.UserID == nil || *req.UserID == 0 || req.CartID == nil || *req.CartID == 0 || req.Items == nil {
		respondError(w, http.StatusBadRequest, "missing_fields", "user_id, cart_id, and items required")
		return
	}

	res, err := h.checkout.Checkout(r.Context(), checkout.Request{
		UserID: *req.UserID,
		CartID: *req.CartID,
		Items:  req.Items,
		Total:  req.Total,
	})
	switch {
	case err == nil:
	case errors.Is(err, checkout.ErrPartialCheckout) && res != nil:
		// the order is recorded; the client learns the cart was left as is from the header
		slog.WarnContext(r.Context(), "checkout returned with cart not cleared", "order_id", res.Order.ID, "error", err)
	default:
		handleError(w, r, err)
		return
	}

	w.Header().Set(CheckoutStatusHeader, res.Status.String())
	respondJSON(w, http.StatusCreated, res.Order)
}

// GET /orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
