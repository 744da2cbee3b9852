package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/domain"
)

// DefaultItems is the catalog the storefront starts with.
var DefaultItems = []domain.Item{
	{ID: 1, Name: "Laptop", Price: 999.99, Description: "High-performance laptop"},
	{ID: 2, Name: "Wireless Mouse", Price: 29.99, Description: "Ergonomic wireless mouse"},
	{ID: 3, Name: "USB-C Cable", Price: 14.99, Description: "Durable USB-C charging cable"},
	{ID: 4, Name: "Mechanical Keyboard", Price: 129.99, Description: "RGB mechanical keyboard"},
	{ID: 5, Name: "4K Monitor", Price: 399.99, Description: "Ultra HD 4K display"},
	{ID: 6, Name: "Headphones", Price: 199.99, Description: "Noise-cancelling headphones"},
	{ID: 7, Name: "Phone Stand", Price: 19.99, Description: "Adjustable phone stand"},
	{ID: 8, Name: "Webcam", Price: 79.99, Description: "1080p HD webcam"},
}

type MemoryItemStore struct {
	mu    sync.RWMutex
	items []*domain.Item
}

// NewMemoryItemStore creates a catalog seeded with the given items.
func NewMemoryItemStore(seed []domain.Item) *MemoryItemStore {
	s := &MemoryItemStore{items: make([]*domain.Item, 0, len(seed))}
	now := time.Now().UTC()
	for _, it := range seed {
		it := it // per-iteration copy (go directive is 1.21; pre-1.22 loop variable semantics)
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		s.items = append(s.items, &it)
	}
	return s
}

func (s *MemoryItemStore) ListItems(ctx context.Context) ([]*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Item, 0, len(s.items))
	for _, it := range s.items {
		cp := *it
		result = append(result, &cp)
	}
	return result, nil
}

func (s *MemoryItemStore) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, ErrItemNotFound
}

// CreateItem appends an item with id one above the current maximum.
func (s *MemoryItemStore) CreateItem(ctx context.Context, name, description string, price float64) (*domain.Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name and price required", domain.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, it := range s.items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	item := &domain.Item{
		ID:          maxID + 1,
		Name:        name,
		Description: description,
		Price:       price,
		CreatedAt:   time.Now().UTC(),
	}
	s.items = append(s.items, item)

	cp := *item
	return &cp, nil
}
