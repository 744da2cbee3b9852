package cache

import (
	"context"
	"errors"

	"github.com/fjod/storefront/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, userID int64) (*domain.Cart, error)
	Set(ctx context.Context, userID int64, cart *domain.Cart) error
	Delete(ctx context.Context, userID int64) error
}

var ErrCacheMiss = errors.New("cache miss")

// NoopCache is used when no Redis address is configured. Every Get misses.
type NoopCache struct{}

func (NoopCache) Get(context.Context, int64) (*domain.Cart, error) { return nil, ErrCacheMiss }
func (NoopCache) Set(context.Context, int64, *domain.Cart) error { return nil }
func (NoopCache) Delete(context.Context, int64) error { return nil }
