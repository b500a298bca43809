package repository

import (
	"context"

	"github.com/h4ks-com/farmstead/internal/models"
	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *AssetRepository) FindByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).First(&asset, id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

func (r *AssetRepository) FindAll(ctx context.Context, skip, limit int) ([]models.Asset, error) {
	var assets []models.Asset
	err := Page(r.db.WithContext(ctx), skip, limit).Order("id").Find(&assets).Error
	return assets, err
}

func (r *AssetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Asset{}, id).Error
}
