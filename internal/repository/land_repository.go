package repository

import (
	"context"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/patch"
	"gorm.io/gorm"
)

type LandRepository struct {
	db *gorm.DB
}

func NewLandRepository(db *gorm.DB) *LandRepository {
	return &LandRepository{db: db}
}

func (r *LandRepository) Create(ctx context.Context, land *models.Land) error {
	return r.db.WithContext(ctx).Create(land).Error
}

func (r *LandRepository) FindByID(ctx context.Context, id uint) (*models.Land, error) {
	var land models.Land
	err := r.db.WithContext(ctx).First(&land, id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &land, nil
}

func (r *LandRepository) FindAll(ctx context.Context, skip, limit int) ([]models.Land, error) {
	var lands []models.Land
	err := Page(r.db.WithContext(ctx), skip, limit).Order("id").Find(&lands).Error
	return lands, err
}

func (r *LandRepository) FindByFarmerID(ctx context.Context, farmerID uint) ([]models.Land, error) {
	var lands []models.Land
	err := r.db.WithContext(ctx).Where("farmer_id = ?", farmerID).Order("id").Find(&lands).Error
	return lands, err
}

func (r *LandRepository) Patch(ctx context.Context, land *models.Land, updates patch.Updates) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(land).Updates(map[string]interface{}(updates)).Error
}

func (r *LandRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Land{}, id).Error
}
