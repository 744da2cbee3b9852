package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/domain"
)

// MemoryCartStore implements CartRepository with in-memory storage.
type MemoryCartStore struct {
	mu     sync.RWMutex
	carts  map[int64]*domain.Cart // userID -> cart
	order  []int64                // userIDs in cart creation order
	nextID int64
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts:  make(map[int64]*domain.Cart),
		nextID: 1,
	}
}

// AddItem merges quantity into the user's cart, creating the cart on first use.
// Zero and negative quantities are stored as supplied.
func (s *MemoryCartStore) AddItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error) {
	if userID <= 0 || itemID <= 0 {
		return nil, fmt.Errorf("%w: user_id and item_id required", domain.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[userID]
	if !exists {
		cart = &domain.Cart{
			ID:        s.nextID,
			UserID:    userID,
			Items:     []domain.CartItem{},
			CreatedAt: time.Now().UTC(),
		}
		s.nextID++
		s.carts[userID] = cart
		s.order = append(s.order, userID)
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ItemID == itemID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.CartItem{ItemID: itemID, Quantity: quantity})
	}

	return cart.Clone(), nil
}

func (s *MemoryCartStore) GetCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[userID]
	if !exists {
		return nil, ErrCartNotFound
	}
	return cart.Clone(), nil
}

// ListCarts returns every tracked cart across all users, oldest first.
func (s *MemoryCartStore) ListCarts(ctx context.Context) ([]*domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Cart, 0, len(s.order))
	for _, userID := range s.order {
		result = append(result, s.carts[userID].Clone())
	}
	return result, nil
}

// ClearCart empties the cart but keeps it, so the cart id survives checkout.
func (s *MemoryCartStore) ClearCart(ctx context.Context, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[userID]
	if !exists {
		return ErrCartNotFound
	}
	cart.Items = []domain.CartItem{}
	return nil
}
