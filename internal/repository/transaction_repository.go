package repository

import (
	"context"

	"github.com/h4ks-com/farmstead/internal/models"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *gorm.DB, transaction *models.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).First(&transaction, id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) FindAll(ctx context.Context, skip, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := Page(r.db.WithContext(ctx), skip, limit).
		Order("date DESC").
		Order("id DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) FindByItemID(ctx context.Context, itemID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("date DESC").
		Order("id DESC").
		Find(&transactions).Error
	return transactions, err
}
