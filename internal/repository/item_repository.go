package repository

import (
	"context"

	"github.com/h4ks-com/farmstead/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ItemRepository) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate locks the item row for the rest of tx. Returns nil, nil when absent.
func (r *ItemRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Item, error) {
	var item models.Item
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) FindAll(ctx context.Context, skip, limit int) ([]models.Item, error) {
	var items []models.Item
	err := Page(r.db.WithContext(ctx), skip, limit).Order("id").Find(&items).Error
	return items, err
}

func (r *ItemRepository) FindByName(ctx context.Context, name string) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&item).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// AdjustQuantityInTx adds delta to the stored quantity in a single UPDATE so the change
// composes with concurrent writers instead of overwriting them.
func (r *ItemRepository) AdjustQuantityInTx(tx *gorm.DB, item *models.Item, delta int) error {
	err := tx.Model(item).Update("quantity", gorm.Expr("quantity + ?", delta)).Error
	if err != nil {
		return err
	}
	item.Quantity += delta
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Item{}, id).Error
}
