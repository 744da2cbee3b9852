package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/fjod/storefront/internal/cache"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/repository"
	"golang.org/x/sync/singleflight"
)

type CartService struct {
	repo   repository.CartRepository
	cache  cache.CartCache
	sfg    singleflight.Group // Prevents cache stampede
	logger *slog.Logger
}

func NewCartService(repo repository.CartRepository, c cache.CartCache, logger *slog.Logger) *CartService {
	if c == nil {
		c = cache.NoopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CartService{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

// AddItem merges the item into the user's cart and returns the updated cart.
func (s *CartService) AddItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.repo.AddItem(ctx, userID, itemID, quantity)
	if err != nil {
		s.logger.WarnContext(ctx, "repo add item failed", "user_id", userID, "item_id", itemID, "error", err)
		return nil, err
	}

	s.invalidateCache(ctx, userID)
	return cart, nil
}

// GetCart returns the user's cart, reading through the cache.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	key := strconv.FormatInt(userID, 10)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "cache get failed", "user_id", userID, "error", err)
		}

		cart, err = s.repo.GetCart(ctx, userID)
		if err != nil {
			return nil, err
		}

		go func(c *domain.Cart) {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(setCtx, userID, c); err != nil {
				s.logger.Warn("cache set failed", "user_id", userID, "error", err)
			}
		}(cart.Clone())

		return cart, nil
	})
	if err != nil {
		return nil, err
	}

	// singleflight shares one result between callers; hand each its own copy
	return v.(*domain.Cart).Clone(), nil
}

func (s *CartService) ListCarts(ctx context.Context) ([]*domain.Cart, error) {
	return s.repo.ListCarts(ctx)
}

func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	if err := s.repo.ClearCart(ctx, userID); err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			s.logger.WarnContext(ctx, "repo clear cart failed", "user_id", userID, "error", err)
		}
		return err
	}

	s.invalidateCache(ctx, userID)
	return nil
}

func (s *CartService) invalidateCache(ctx context.Context, userID int64) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "cache invalidate failed", "user_id", userID, "error", err)
	}
}
