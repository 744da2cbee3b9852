package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, 15*time.Minute), mr
}

func TestGet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := &domain.Cart{
		ID:     3,
		UserID: 123,
		Items: []domain.CartItem{
			{ItemID: 1, Quantity: 2},
			{ItemID: 2, Quantity: 3},
		},
		CreatedAt: time.Now(),
	}

	cartJSON, _ := json.Marshal(cart)
	require.NoError(t, mr.Set(cacheKey(123), string(cartJSON)))

	result, err := cache.Get(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.ID)
	assert.Equal(t, int64(123), result.UserID)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(1), result.Items[0].ItemID)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	result, err := cache.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(cacheKey(1), `{"id":1,"ite`))

	_, err := cache.Get(context.Background(), 1)
	require.ErrorContains(t, err, "unmarshal cart failed")
}

func TestGet_NullItemsBecomeEmpty(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(cacheKey(1), `{"id":1,"user_id":1,"items":null}`))

	result, err := cache.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}

func TestGet_RedisError(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.SetError("server down")

	_, err := cache.Get(context.Background(), 1)
	require.ErrorContains(t, err, "redis get failed")
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)

	cart := &domain.Cart{
		ID:     1,
		UserID: 456,
		Items:  []domain.CartItem{{ItemID: 10, Quantity: 5}},
	}

	require.NoError(t, cache.Set(context.Background(), 456, cart))

	stored, err := mr.Get(cacheKey(456))
	require.NoError(t, err)

	var storedCart domain.Cart
	require.NoError(t, json.Unmarshal([]byte(stored), &storedCart))
	assert.Equal(t, int64(456), storedCart.UserID)
	assert.Len(t, storedCart.Items, 1)
}

func TestSet_WithTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)

	err := cache.Set(context.Background(), 789, &domain.Cart{UserID: 789, Items: []domain.CartItem{}})
	require.NoError(t, err)

	ttl := mr.TTL(cacheKey(789))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute, "TTL should be at least base TTL")
	assert.LessOrEqual(t, ttl, 20*time.Minute, "TTL should be base + max jitter")
}

func TestDelete_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(cacheKey(999), `{"user_id":999}`))
	assert.True(t, mr.Exists(cacheKey(999)))

	require.NoError(t, cache.Delete(context.Background(), 999))
	assert.False(t, mr.Exists(cacheKey(999)))
}

func TestDelete_NonExistentKey(t *testing.T) {
	cache, _ := setupTestRedis(t)

	assert.NoError(t, cache.Delete(context.Background(), 12345))
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "cart:42", cacheKey(42))
}
