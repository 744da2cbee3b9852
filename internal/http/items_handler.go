package http

import (
	"context"
	"net/http"

	"github.com/fjod/storefront/internal/domain"
)

type Catalog interface {
	ListItems(ctx context.Context) ([]*domain.Item, error)
	CreateItem(ctx context.Context, name, description string, price float64) (*domain.Item, error)
}

type ItemsHandler struct {
	catalog Catalog
}

func NewItemsHandler(catalog Catalog) *ItemsHandler {
	return &ItemsHandler{catalog: catalog}
}

type CreateItemRequestDTO struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

// GET /items
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// POST /items
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Price == nil {
		respondError(w, http.StatusBadRequest, "missing_fields", "Name and price required")
		return
	}

	item, err := h.catalog.CreateItem(r.Context(), req.Name, req.Description, *req.Price)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}
