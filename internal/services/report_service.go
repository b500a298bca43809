package services

import (
	"context"
	"math"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/repository"
)

type Summary struct {
	Farmers      FarmerSummary      `json:"farmers"`
	Tasks        TaskSummary        `json:"tasks"`
	Items        ItemSummary        `json:"items"`
	Transactions TransactionSummary `json:"transactions"`
	Assets       AssetSummary       `json:"assets"`
}

type FarmerSummary struct {
	Total int64 `json:"total"`
}

type TaskSummary struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Completed  int64 `json:"completed"`
	InProgress int64 `json:"in_progress"`
}

type ItemSummary struct {
	Total          int64   `json:"total"`
	InventoryValue float64 `json:"inventory_value"`
}

type TransactionSummary struct {
	Total               int64   `json:"total"`
	Purchases           int64   `json:"purchases"`
	Sales               int64   `json:"sales"`
	TotalPurchaseAmount float64 `json:"total_purchase_amount"`
	TotalSalesAmount    float64 `json:"total_sales_amount"`
	NetProfit           float64 `json:"net_profit"`
}

type AssetSummary struct {
	Total      int64   `json:"total"`
	TotalValue float64 `json:"total_value"`
}

type FarmerReport struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	TotalTasks     int64  `json:"total_tasks"`
	CompletedTasks int64  `json:"completed_tasks"`
	PendingTasks   int64  `json:"pending_tasks"`
}

type ItemReport struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	CurrentQuantity  int     `json:"current_quantity"`
	PricePerUnit     float64 `json:"price_per_unit"`
	InventoryValue   float64 `json:"inventory_value"`
	TotalBought      int64   `json:"total_bought"`
	TotalSold        int64   `json:"total_sold"`
	BuyTransactions  int64   `json:"buy_transactions"`
	SellTransactions int64   `json:"sell_transactions"`
}

type TypeTotals struct {
	TransactionCount int64   `json:"transaction_count"`
	TotalQuantity    int64   `json:"total_quantity"`
	TotalAmount      float64 `json:"total_amount"`
}

type TransactionTypeSummary struct {
	Buy    TypeTotals `json:"buy"`
	Sell   TypeTotals `json:"sell"`
	Profit float64    `json:"profit"`
}

type ReportService struct {
	reportRepo *repository.ReportRepository
}

func NewReportService(reportRepo *repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

func (s *ReportService) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary
	var err error

	if summary.Farmers.Total, err = s.reportRepo.Count(ctx, &models.Farmer{}); err != nil {
		return nil, err
	}

	if summary.Tasks.Total, err = s.reportRepo.Count(ctx, &models.Task{}); err != nil {
		return nil, err
	}
	if summary.Tasks.Pending, err = s.reportRepo.CountTasksByStatus(ctx, models.TaskStatusPending); err != nil {
		return nil, err
	}
	if summary.Tasks.Completed, err = s.reportRepo.CountTasksByStatus(ctx, models.TaskStatusCompleted); err != nil {
		return nil, err
	}
	// any status other than Pending/Completed counts as in progress
	summary.Tasks.InProgress = summary.Tasks.Total - summary.Tasks.Pending - summary.Tasks.Completed

	if summary.Items.Total, err = s.reportRepo.Count(ctx, &models.Item{}); err != nil {
		return nil, err
	}
	inventoryValue, err := s.reportRepo.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	summary.Items.InventoryValue = round2(inventoryValue)

	byType, err := s.transactionTotals(ctx)
	if err != nil {
		return nil, err
	}
	buy, sell := byType[models.TransactionTypeBuy], byType[models.TransactionTypeSell]
	if summary.Transactions.Total, err = s.reportRepo.Count(ctx, &models.Transaction{}); err != nil {
		return nil, err
	}
	summary.Transactions.Purchases = buy.TransactionCount
	summary.Transactions.Sales = sell.TransactionCount
	summary.Transactions.TotalPurchaseAmount = round2(buy.TotalAmount)
	summary.Transactions.TotalSalesAmount = round2(sell.TotalAmount)
	summary.Transactions.NetProfit = round2(sell.TotalAmount - buy.TotalAmount)

	if summary.Assets.Total, err = s.reportRepo.Count(ctx, &models.Asset{}); err != nil {
		return nil, err
	}
	assetValue, err := s.reportRepo.AssetValue(ctx)
	if err != nil {
		return nil, err
	}
	summary.Assets.TotalValue = round2(assetValue)

	return &summary, nil
}

func (s *ReportService) Farmers(ctx context.Context) ([]FarmerReport, error) {
	farmers, err := s.reportRepo.AllFarmers(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.reportRepo.TaskCountsByFarmer(ctx)
	if err != nil {
		return nil, err
	}

	byFarmer := make(map[uint]repository.TaskCounts, len(counts))
	for _, c := range counts {
		byFarmer[c.FarmerID] = c
	}

	reports := make([]FarmerReport, len(farmers))
	for i, farmer := range farmers {
		c := byFarmer[farmer.ID]
		reports[i] = FarmerReport{
			ID:             farmer.ID,
			Name:           farmer.Name,
			Phone:          farmer.Phone,
			Address:        farmer.Address,
			TotalTasks:     c.Total,
			CompletedTasks: c.Completed,
			PendingTasks:   c.Total - c.Completed,
		}
	}
	return reports, nil
}

func (s *ReportService) Items(ctx context.Context) ([]ItemReport, error) {
	items, err := s.reportRepo.AllItems(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.reportRepo.ItemTransactionTotals(ctx)
	if err != nil {
		return nil, err
	}

	type key struct {
		itemID uint
		kind   string
	}
	byItem := make(map[key]repository.ItemTransactionTotals, len(totals))
	for _, t := range totals {
		byItem[key{t.ItemID, t.Type}] = t
	}

	reports := make([]ItemReport, len(items))
	for i, item := range items {
		bought := byItem[key{item.ID, models.TransactionTypeBuy}]
		sold := byItem[key{item.ID, models.TransactionTypeSell}]
		reports[i] = ItemReport{
			ID:               item.ID,
			Name:             item.Name,
			Type:             item.Type,
			CurrentQuantity:  item.Quantity,
			PricePerUnit:     item.Price,
			InventoryValue:   round2(float64(item.Quantity) * item.Price),
			TotalBought:      bought.TotalQuantity,
			TotalSold:        sold.TotalQuantity,
			BuyTransactions:  bought.Count,
			SellTransactions: sold.Count,
		}
	}
	return reports, nil
}

func (s *ReportService) TransactionSummary(ctx context.Context) (*TransactionTypeSummary, error) {
	byType, err := s.transactionTotals(ctx)
	if err != nil {
		return nil, err
	}
	buy, sell := byType[models.TransactionTypeBuy], byType[models.TransactionTypeSell]
	profit := sell.TotalAmount - buy.TotalAmount
	buy.TotalAmount = round2(buy.TotalAmount)
	sell.TotalAmount = round2(sell.TotalAmount)

	return &TransactionTypeSummary{
		Buy:    buy,
		Sell:   sell,
		Profit: round2(profit),
	}, nil
}

func (s *ReportService) transactionTotals(ctx context.Context) (map[string]TypeTotals, error) {
	rows, err := s.reportRepo.TransactionTotalsByType(ctx)
	if err != nil {
		return nil, err
	}
	byType := make(map[string]TypeTotals, len(rows))
	for _, row := range rows {
		byType[row.Type] = TypeTotals{
			TransactionCount: row.Count,
			TotalQuantity:    row.TotalQuantity,
			TotalAmount:      row.TotalAmount,
		}
	}
	return byType, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
