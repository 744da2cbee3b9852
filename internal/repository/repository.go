package repository

import (
	"context"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
)

var (
	ErrCartNotFound  = fmt.Errorf("%w: cart not found", domain.ErrNotFound)
	ErrItemNotFound  = fmt.Errorf("%w: item not found", domain.ErrNotFound)
	ErrUserNotFound  = fmt.Errorf("%w: user not found", domain.ErrNotFound)
	ErrUsernameTaken = fmt.Errorf("%w: username", domain.ErrConflict)
)

// CartRepository owns the single active cart of every user.
type CartRepository interface {
	AddItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error)
	GetCart(ctx context.Context, userID int64) (*domain.Cart, error)
	ListCarts(ctx context.Context) ([]*domain.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

// OrderRepository is the append-only order ledger.
type OrderRepository interface {
	CreateOrder(ctx context.Context, userID, cartID int64, items []domain.CartItem, total float64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}

type ItemRepository interface {
	ListItems(ctx context.Context) ([]*domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	CreateItem(ctx context.Context, name, description string, price float64) (*domain.Item, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, username, password string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
