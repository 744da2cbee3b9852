package repository

import (
	"context"
	"testing"

	"github.com/fjod/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryItemStore_Seeded(t *testing.T) {
	store := NewMemoryItemStore(DefaultItems)

	items, err := store.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 8)
	assert.Equal(t, "Laptop", items[0].Name)
	assert.Equal(t, 999.99, items[0].Price)
}

func TestMemoryItemStore_CreateItem_NextID(t *testing.T) {
	store := NewMemoryItemStore(DefaultItems)
	ctx := context.Background()

	item, err := store.CreateItem(ctx, "Desk Lamp", "", 24.5)
	require.NoError(t, err)
	assert.Equal(t, int64(9), item.ID)

	got, err := store.GetItem(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", got.Name)
}

func TestMemoryItemStore_CreateItem_EmptyCatalog(t *testing.T) {
	store := NewMemoryItemStore(nil)

	item, err := store.CreateItem(context.Background(), "First", "", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
}

func TestMemoryItemStore_Errors(t *testing.T) {
	store := NewMemoryItemStore(DefaultItems)
	ctx := context.Background()

	_, err := store.CreateItem(ctx, "  ", "", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = store.GetItem(ctx, 404)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
