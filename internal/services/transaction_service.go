package services

import (
	"context"
	"errors"
	"time"

	"github.com/h4ks-com/farmstead/internal/metrics"
	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidPrice        = errors.New("price_per_unit must not be negative")
	ErrInvalidType         = errors.New("type must be buy or sell")
)

type NewTransaction struct {
	ItemID       uint
	Type         string
	Quantity     int
	PricePerUnit float64
	BuyerName    *string
}

// TransactionService records buys and sells against inventory items.
type TransactionService struct {
	itemRepo        *repository.ItemRepository
	transactionRepo *repository.TransactionRepository
	db              *gorm.DB
	logger          *zap.Logger
	now             func() time.Time
}

func NewTransactionService(itemRepo *repository.ItemRepository, transactionRepo *repository.TransactionRepository, db *gorm.DB, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		itemRepo:        itemRepo,
		transactionRepo: transactionRepo,
		db:              db,
		logger:          logger,
		now:             time.Now,
	}
}

// RecordTransaction stores the transaction and applies its quantity to the referenced item
// in one database transaction: buys add, sells subtract, and nothing stops the quantity from
// going negative. When the item does not exist the transaction is still stored and no
// inventory changes.
func (s *TransactionService) RecordTransaction(ctx context.Context, in NewTransaction) (*models.Transaction, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if in.PricePerUnit < 0 {
		return nil, ErrInvalidPrice
	}

	var delta int
	switch in.Type {
	case models.TransactionTypeBuy:
		delta = in.Quantity
	case models.TransactionTypeSell:
		delta = -in.Quantity
	default:
		return nil, ErrInvalidType
	}

	transaction := &models.Transaction{
		ItemID:       in.ItemID,
		Type:         in.Type,
		Quantity:     in.Quantity,
		PricePerUnit: in.PricePerUnit,
		TotalPrice:   float64(in.Quantity) * in.PricePerUnit,
		BuyerName:    in.BuyerName,
		Date:         s.now().UTC(),
	}

	var item *models.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.itemRepo.FindByIDForUpdate(tx, in.ItemID)
		if err != nil {
			return err
		}

		if item != nil {
			if err := s.itemRepo.AdjustQuantityInTx(tx, item, delta); err != nil {
				return err
			}
		}

		return s.transactionRepo.Create(tx, transaction)
	})
	if err != nil {
		return nil, err
	}

	metrics.InventoryTransactions.WithLabelValues(transaction.Type).Inc()

	if item == nil {
		s.logger.Warn("Transaction recorded for unknown item, inventory unchanged",
			zap.Uint("transaction_id", transaction.ID),
			zap.Uint("item_id", in.ItemID))
		return transaction, nil
	}

	if item.Quantity < 0 {
		s.logger.Warn("Item quantity is negative after sale",
			zap.Uint("item_id", item.ID),
			zap.Int("quantity", item.Quantity))
	}
	s.logger.Info("Transaction recorded",
		zap.Uint("transaction_id", transaction.ID),
		zap.Uint("item_id", item.ID),
		zap.String("type", transaction.Type),
		zap.Int("quantity", transaction.Quantity),
		zap.Float64("total_price", transaction.TotalPrice))

	return transaction, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, skip, limit int) ([]models.Transaction, error) {
	return s.transactionRepo.FindAll(ctx, skip, limit)
}

func (s *TransactionService) ItemTransactions(ctx context.Context, itemID uint) ([]models.Transaction, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return s.transactionRepo.FindByItemID(ctx, itemID)
}
