package repository

import (
	"context"

	"github.com/h4ks-com/farmstead/internal/models"
	"gorm.io/gorm"
)

type FarmerRepository struct {
	db *gorm.DB
}

func NewFarmerRepository(db *gorm.DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

func (r *FarmerRepository) Create(ctx context.Context, farmer *models.Farmer) error {
	return r.db.WithContext(ctx).Create(farmer).Error
}

func (r *FarmerRepository) FindByID(ctx context.Context, id uint) (*models.Farmer, error) {
	var farmer models.Farmer
	err := r.db.WithContext(ctx).First(&farmer, id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &farmer, nil
}

func (r *FarmerRepository) FindAll(ctx context.Context, skip, limit int) ([]models.Farmer, error) {
	var farmers []models.Farmer
	err := Page(r.db.WithContext(ctx), skip, limit).Order("id").Find(&farmers).Error
	return farmers, err
}

func (r *FarmerRepository) Update(ctx context.Context, farmer *models.Farmer) error {
	return r.db.WithContext(ctx).Save(farmer).Error
}

func (r *FarmerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Farmer{}, id).Error
}
