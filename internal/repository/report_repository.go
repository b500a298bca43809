package repository

import (
	"context"

	"github.com/h4ks-com/farmstead/internal/models"
	"gorm.io/gorm"
)

// ReportRepository runs the read-only aggregate queries behind /reports.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type TaskCounts struct {
	FarmerID  uint
	Total     int64
	Completed int64
}

type TransactionTotals struct {
	Type          string
	Count         int64
	TotalQuantity int64
	TotalAmount   float64
}

type ItemTransactionTotals struct {
	ItemID        uint
	Type          string
	Count         int64
	TotalQuantity int64
}

func (r *ReportRepository) Count(ctx context.Context, model interface{}) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountTasksByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ReportRepository) InventoryValue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Item{}).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ReportRepository) AssetValue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}

// TransactionTotalsByType groups every transaction by its type. Types with no rows are absent.
func (r *ReportRepository) TransactionTotalsByType(ctx context.Context) ([]TransactionTotals, error) {
	var totals []TransactionTotals
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("type, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS total_quantity, COALESCE(SUM(total_price), 0) AS total_amount").
		Group("type").
		Scan(&totals).Error
	return totals, err
}

func (r *ReportRepository) ItemTransactionTotals(ctx context.Context) ([]ItemTransactionTotals, error) {
	var totals []ItemTransactionTotals
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("item_id, type, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS total_quantity").
		Group("item_id, type").
		Scan(&totals).Error
	return totals, err
}

func (r *ReportRepository) TaskCountsByFarmer(ctx context.Context) ([]TaskCounts, error) {
	var counts []TaskCounts
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Select("farmer_id, COUNT(*) AS total, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed",
			models.TaskStatusCompleted).
		Group("farmer_id").
		Scan(&counts).Error
	return counts, err
}

func (r *ReportRepository) AllFarmers(ctx context.Context) ([]models.Farmer, error) {
	var farmers []models.Farmer
	err := r.db.WithContext(ctx).Order("id").Find(&farmers).Error
	return farmers, err
}

func (r *ReportRepository) AllItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}
