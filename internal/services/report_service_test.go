package services

import (
	"context"
	"testing"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReportService_Reports(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	farmerRepo := repository.NewFarmerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	itemRepo := repository.NewItemRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	taskService := NewTaskService(taskRepo, farmerRepo)
	transactionService := NewTransactionService(itemRepo, repository.NewTransactionRepository(db), db, zap.NewNop())
	reportService := NewReportService(repository.NewReportRepository(db))

	ravi := &models.Farmer{Name: "Ravi", Phone: "555"}
	mina := &models.Farmer{Name: "Mina"}
	require.NoError(t, farmerRepo.Create(ctx, ravi))
	require.NoError(t, farmerRepo.Create(ctx, mina))

	_, err := taskService.CreateTask(ctx, "Plough", "", ravi.ID)
	require.NoError(t, err)
	_, err = taskService.CreateTask(ctx, "Weed", models.TaskStatusCompleted, ravi.ID)
	require.NoError(t, err)
	_, err = taskService.CreateTask(ctx, "Irrigate", "In Progress", ravi.ID)
	require.NoError(t, err)

	seed := &models.Item{Name: "Seed", Type: "seed", Quantity: 10, Price: 5.0}
	tools := &models.Item{Name: "Hoe", Type: "tool", Quantity: 2, Price: 12.25}
	require.NoError(t, itemRepo.Create(ctx, seed))
	require.NoError(t, itemRepo.Create(ctx, tools))

	_, err = transactionService.RecordTransaction(ctx, NewTransaction{ItemID: seed.ID, Type: models.TransactionTypeBuy, Quantity: 5, PricePerUnit: 6.0})
	require.NoError(t, err)
	_, err = transactionService.RecordTransaction(ctx, NewTransaction{ItemID: seed.ID, Type: models.TransactionTypeSell, Quantity: 3, PricePerUnit: 10.0})
	require.NoError(t, err)

	require.NoError(t, assetRepo.Create(ctx, &models.Asset{Name: "Tractor", Value: 1000.5}))

	summary, err := reportService.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Farmers.Total)
	assert.Equal(t, TaskSummary{Total: 3, Pending: 1, Completed: 1, InProgress: 1}, summary.Tasks)
	assert.Equal(t, int64(2), summary.Items.Total)
	// seed: 12 * 5.0, hoe: 2 * 12.25
	assert.Equal(t, 84.5, summary.Items.InventoryValue)
	assert.Equal(t, TransactionSummary{
		Total:               2,
		Purchases:           1,
		Sales:               1,
		TotalPurchaseAmount: 30,
		TotalSalesAmount:    30,
		NetProfit:           0,
	}, summary.Transactions)
	assert.Equal(t, AssetSummary{Total: 1, TotalValue: 1000.5}, summary.Assets)

	farmers, err := reportService.Farmers(ctx)
	require.NoError(t, err)
	require.Len(t, farmers, 2)
	assert.Equal(t, FarmerReport{ID: ravi.ID, Name: "Ravi", Phone: "555", TotalTasks: 3, CompletedTasks: 1, PendingTasks: 2}, farmers[0])
	assert.Equal(t, int64(0), farmers[1].TotalTasks)

	items, err := reportService.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ItemReport{
		ID:               seed.ID,
		Name:             "Seed",
		Type:             "seed",
		CurrentQuantity:  12,
		PricePerUnit:     5.0,
		InventoryValue:   60,
		TotalBought:      5,
		TotalSold:        3,
		BuyTransactions:  1,
		SellTransactions: 1,
	}, items[0])
	assert.Equal(t, int64(0), items[1].BuyTransactions)

	byType, err := reportService.TransactionSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, TypeTotals{TransactionCount: 1, TotalQuantity: 5, TotalAmount: 30}, byType.Buy)
	assert.Equal(t, TypeTotals{TransactionCount: 1, TotalQuantity: 3, TotalAmount: 30}, byType.Sell)
	assert.Equal(t, 0.0, byType.Profit)
}

func TestReportService_Empty(t *testing.T) {
	reportService := NewReportService(repository.NewReportRepository(setupTestDB(t)))

	summary, err := reportService.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, *summary)

	byType, err := reportService.TransactionSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeSummary{}, *byType)
}
