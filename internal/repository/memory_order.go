package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/domain"
)

// MemoryOrderStore is an append-only ledger of placed orders.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders []*domain.Order
	nextID int64
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{nextID: 1}
}

// CreateOrder records a snapshot of items. The total is stored as supplied.
func (s *MemoryOrderStore) CreateOrder(ctx context.Context, userID, cartID int64, items []domain.CartItem, total float64) (*domain.Order, error) {
	if userID <= 0 || cartID <= 0 || items == nil {
		return nil, fmt.Errorf("%w: user_id, cart_id, and items required", domain.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := &domain.Order{
		ID:        s.nextID,
		UserID:    userID,
		CartID:    cartID,
		Items:     domain.CloneItems(items),
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.orders = append(s.orders, order)

	return order.Clone(), nil
}

func (s *MemoryOrderStore) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		result = append(result, o.Clone())
	}
	return result, nil
}
