package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	calls int
	cart  *domain.Cart
	err   error
}

func (c *countingCache) Get(context.Context, int64) (*domain.Cart, error) {
	c.calls++
	return c.cart, c.err
}

func (c *countingCache) Set(context.Context, int64, *domain.Cart) error {
	c.calls++
	return c.err
}

func (c *countingCache) Delete(context.Context, int64) error {
	c.calls++
	return c.err
}

func TestBreakerCache_PassesThrough(t *testing.T) {
	inner := &countingCache{cart: &domain.Cart{ID: 1, UserID: 2}}
	b := NewBreakerCache(inner, BreakerSettings{}, nil)

	cart, err := b.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cart.ID)
	assert.Equal(t, 1, inner.calls)
}

func TestBreakerCache_MissDoesNotTrip(t *testing.T) {
	inner := &countingCache{err: ErrCacheMiss}
	b := NewBreakerCache(inner, BreakerSettings{ConsecutiveFailures: 2}, nil)

	for i := 0; i < 5; i++ {
		_, err := b.Get(context.Background(), 1)
		assert.ErrorIs(t, err, ErrCacheMiss)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, 5, inner.calls)
}

func TestBreakerCache_OpensAfterFailures(t *testing.T) {
	inner := &countingCache{err: errors.New("redis get failed: connection refused")}
	b := NewBreakerCache(inner, BreakerSettings{ConsecutiveFailures: 3, OpenTimeout: time.Minute}, nil)

	for i := 0; i < 3; i++ {
		_, err := b.Get(context.Background(), 1)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	err := b.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, inner.calls, "open breaker must not call the cache")
}
