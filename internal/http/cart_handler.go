package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/fjod/storefront/internal/domain"
)

type CartService interface {
	AddItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error)
	GetCart(ctx context.Context, userID int64) (*domain.Cart, error)
	ListCarts(ctx context.Context) ([]*domain.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

type CartHandler struct {
	carts CartService
}

func NewCartHandler(carts CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type AddItemRequestDTO struct {
	UserID   *int64 `json:"user_id"`
	ItemID   *int64 `json:"item_id"`
	Quantity *int   `json:"quantity,omitempty"`
}

// POST /carts
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.UserID == nil || *req.UserID == 0 || req.ItemID == nil || *req.ItemID == 0 {
		respondError(w, http.StatusBadRequest, "missing_fields", "user_id and item_id required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.carts.AddItem(r.Context(), *req.UserID, *req.ItemID, quantity)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// GET /carts lists every cart. With ?userId=N it returns that user's cart only.
func (h *CartHandler) GetCarts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has("userId") {
		userID, ok := parseUserID(w, r)
		if !ok {
			return
		}
		cart, err := h.carts.GetCart(r.Context(), userID)
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Cart not found")
			return
		}
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, cart)
		return
	}

	carts, err := h.carts.ListCarts(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, carts)
}

// DELETE /carts?userId=N
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	err := h.carts.ClearCart(r.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "Cart not found")
		return
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Cart cleared"})
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("userId")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "missing_user_id", "userId required")
		return 0, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "userId must be an integer")
		return 0, false
	}
	return userID, true
}
