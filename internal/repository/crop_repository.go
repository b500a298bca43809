package repository

import (
	"context"
	"time"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/patch"
	"gorm.io/gorm"
)

type CropRepository struct {
	db *gorm.DB
}

func NewCropRepository(db *gorm.DB) *CropRepository {
	return &CropRepository{db: db}
}

func (r *CropRepository) Create(ctx context.Context, crop *models.Crop) error {
	return r.db.WithContext(ctx).Create(crop).Error
}

func (r *CropRepository) FindByID(ctx context.Context, id uint) (*models.Crop, error) {
	var crop models.Crop
	err := r.db.WithContext(ctx).First(&crop, id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &crop, nil
}

func (r *CropRepository) FindAll(ctx context.Context, skip, limit int) ([]models.Crop, error) {
	var crops []models.Crop
	err := Page(r.db.WithContext(ctx), skip, limit).Order("id").Find(&crops).Error
	return crops, err
}

func (r *CropRepository) FindByLandID(ctx context.Context, landID uint) ([]models.Crop, error) {
	var crops []models.Crop
	err := r.db.WithContext(ctx).Where("land_id = ?", landID).Order("planting_date").Find(&crops).Error
	return crops, err
}

// FindByLandPlantedWithin returns crops of a land planted at or after from whose expected
// harvest falls at or before to.
func (r *CropRepository) FindByLandPlantedWithin(ctx context.Context, landID uint, from, to time.Time) ([]models.Crop, error) {
	var crops []models.Crop
	err := r.db.WithContext(ctx).
		Where("land_id = ? AND planting_date >= ? AND expected_harvest_date <= ?", landID, from, to).
		Order("planting_date").
		Find(&crops).Error
	return crops, err
}

func (r *CropRepository) Patch(ctx context.Context, crop *models.Crop, updates patch.Updates) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(crop).Updates(map[string]interface{}(updates)).Error
}

func (r *CropRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Crop{}, id).Error
}
