package services

import (
	"context"
	"testing"
	"time"

	"github.com/h4ks-com/farmstead/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemService_CRUD(t *testing.T) {
	itemService := NewItemService(repository.NewItemRepository(setupTestDB(t)))
	ctx := context.Background()

	item, err := itemService.CreateItem(ctx, ItemInput{Name: "Urea", Type: "fertilizer", Quantity: 10, Price: 5})
	require.NoError(t, err)

	updated, err := itemService.UpdateItem(ctx, item.ID, ItemInput{Name: "Urea 46", Type: "fertilizer", Quantity: 8, Price: 5.5})
	require.NoError(t, err)
	assert.Equal(t, "Urea 46", updated.Name)
	assert.Equal(t, 8, updated.Quantity)

	items, err := itemService.ListItems(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = itemService.DeleteItem(ctx, item.ID)
	require.NoError(t, err)
	_, err = itemService.GetItem(ctx, item.ID)
	assert.Equal(t, ErrItemNotFound, err)
}

func TestItemService_ImportMergesByName(t *testing.T) {
	itemService := NewItemService(repository.NewItemRepository(setupTestDB(t)))
	ctx := context.Background()

	first, created, err := itemService.ImportItem(ctx, ItemInput{Name: "Urea", Type: "fertilizer", Quantity: 10, Price: 5})
	require.NoError(t, err)
	assert.True(t, created)

	merged, created, err := itemService.ImportItem(ctx, ItemInput{Name: "Urea", Quantity: 4})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 14, merged.Quantity)
	assert.Equal(t, 5.0, merged.Price)
	assert.Equal(t, "fertilizer", merged.Type)
}

func TestAssetService_CreateStampsPurchaseDate(t *testing.T) {
	assetService := NewAssetService(repository.NewAssetRepository(setupTestDB(t)))
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	assetService.now = func() time.Time { return fixed }

	asset, err := assetService.CreateAsset(ctx, "Tractor", "machine", 15000)
	require.NoError(t, err)
	assert.True(t, fixed.Equal(asset.PurchaseDate))

	stored, err := assetService.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tractor", stored.Name)

	deleted, err := assetService.DeleteAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, deleted.Value)

	assets, err := assetService.ListAssets(ctx, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, assets)

	_, err = assetService.GetAsset(ctx, asset.ID)
	assert.Equal(t, ErrAssetNotFound, err)
}
