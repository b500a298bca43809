package services

import (
	"context"
	"errors"
	"time"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/patch"
	"github.com/h4ks-com/farmstead/internal/repository"
)

// PlanningWindow is the look-ahead used by UpcomingCrops, roughly four months.
const PlanningWindow = 120 * 24 * time.Hour

var (
	ErrCropNotFound      = errors.New("crop not found")
	ErrInvalidCropStatus = errors.New("status must be Planned, Growing or Harvested")
)

type CropInput struct {
	LandID              uint
	CropName            string
	Variety             *string
	PlantingDate        time.Time
	ExpectedHarvestDate time.Time
	ExpectedYield       *float64
	Notes               *string
}

type CropPatch struct {
	CropName            patch.Field[string]     `json:"crop_name"`
	Variety             patch.Field[string]     `json:"variety"`
	PlantingDate        patch.Field[patch.Date] `json:"planting_date"`
	ExpectedHarvestDate patch.Field[patch.Date] `json:"expected_harvest_date"`
	ActualHarvestDate   patch.Field[patch.Date] `json:"actual_harvest_date"`
	Status              patch.Field[string]     `json:"status"`
	ExpectedYield       patch.Field[float64]    `json:"expected_yield"`
	ActualYield         patch.Field[float64]    `json:"actual_yield"`
	Notes               patch.Field[string]     `json:"notes"`
}

type CropService struct {
	cropRepo *repository.CropRepository
	landRepo *repository.LandRepository
	now      func() time.Time
}

func NewCropService(cropRepo *repository.CropRepository, landRepo *repository.LandRepository) *CropService {
	return &CropService{
		cropRepo: cropRepo,
		landRepo: landRepo,
		now:      time.Now,
	}
}

// CreateCrop records a planting in the Planned state.
func (s *CropService) CreateCrop(ctx context.Context, in CropInput) (*models.Crop, error) {
	if err := s.requireLand(ctx, in.LandID); err != nil {
		return nil, err
	}

	crop := &models.Crop{
		LandID:              in.LandID,
		CropName:            in.CropName,
		Variety:             in.Variety,
		PlantingDate:        in.PlantingDate.UTC(),
		ExpectedHarvestDate: in.ExpectedHarvestDate.UTC(),
		Status:              models.CropStatusPlanned,
		ExpectedYield:       in.ExpectedYield,
		Notes:               in.Notes,
	}
	if err := s.cropRepo.Create(ctx, crop); err != nil {
		return nil, err
	}
	return crop, nil
}

func (s *CropService) GetCrop(ctx context.Context, id uint) (*models.Crop, error) {
	crop, err := s.cropRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if crop == nil {
		return nil, ErrCropNotFound
	}
	return crop, nil
}

func (s *CropService) ListCrops(ctx context.Context, skip, limit int) ([]models.Crop, error) {
	return s.cropRepo.FindAll(ctx, skip, limit)
}

func (s *CropService) LandCrops(ctx context.Context, landID uint) ([]models.Crop, error) {
	return s.cropRepo.FindByLandID(ctx, landID)
}

// UpcomingCrops lists crops on the land planted from now on whose expected harvest falls
// within PlanningWindow.
func (s *CropService) UpcomingCrops(ctx context.Context, landID uint) ([]models.Crop, error) {
	now := s.now().UTC()
	return s.cropRepo.FindByLandPlantedWithin(ctx, landID, now, now.Add(PlanningWindow))
}

// UpdateCrop applies only the fields present in p.
func (s *CropService) UpdateCrop(ctx context.Context, id uint, p CropPatch) (*models.Crop, error) {
	crop, err := s.GetCrop(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status.Set && !p.Status.Null && !validCropStatus(p.Status.Value) {
		return nil, ErrInvalidCropStatus
	}

	updates := patch.Updates{}
	if err := patch.Required(updates, "crop_name", p.CropName); err != nil {
		return nil, err
	}
	if err := patch.Required(updates, "planting_date", patch.Map(p.PlantingDate, dateTime)); err != nil {
		return nil, err
	}
	if err := patch.Required(updates, "expected_harvest_date", patch.Map(p.ExpectedHarvestDate, dateTime)); err != nil {
		return nil, err
	}
	if err := patch.Required(updates, "status", p.Status); err != nil {
		return nil, err
	}
	patch.Nullable(updates, "variety", p.Variety)
	patch.Nullable(updates, "actual_harvest_date", patch.Map(p.ActualHarvestDate, dateTime))
	patch.Nullable(updates, "expected_yield", p.ExpectedYield)
	patch.Nullable(updates, "actual_yield", p.ActualYield)
	patch.Nullable(updates, "notes", p.Notes)

	if err := s.cropRepo.Patch(ctx, crop, updates); err != nil {
		return nil, err
	}
	return s.GetCrop(ctx, id)
}

func (s *CropService) DeleteCrop(ctx context.Context, id uint) (*models.Crop, error) {
	crop, err := s.GetCrop(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cropRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return crop, nil
}

func (s *CropService) requireLand(ctx context.Context, landID uint) error {
	land, err := s.landRepo.FindByID(ctx, landID)
	if err != nil {
		return err
	}
	if land == nil {
		return ErrLandNotFound
	}
	return nil
}

func dateTime(d patch.Date) time.Time {
	return d.Time
}

func validCropStatus(status string) bool {
	switch status {
	case models.CropStatusPlanned, models.CropStatusGrowing, models.CropStatusHarvested:
		return true
	}
	return false
}
