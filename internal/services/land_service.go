package services

import (
	"context"
	"errors"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/patch"
	"github.com/h4ks-com/farmstead/internal/repository"
)

var ErrLandNotFound = errors.New("land not found")

type LandInput struct {
	Name      string
	Location  string
	Size      float64
	SoilType  *string
	TaxAmount *float64
	FarmerID  *uint
}

type LandPatch struct {
	Name      patch.Field[string]  `json:"name"`
	Location  patch.Field[string]  `json:"location"`
	Size      patch.Field[float64] `json:"size"`
	SoilType  patch.Field[string]  `json:"soil_type"`
	TaxAmount patch.Field[float64] `json:"tax_amount"`
	FarmerID  patch.Field[uint]    `json:"farmer_id"`
}

type LandService struct {
	landRepo   *repository.LandRepository
	farmerRepo *repository.FarmerRepository
}

func NewLandService(landRepo *repository.LandRepository, farmerRepo *repository.FarmerRepository) *LandService {
	return &LandService{
		landRepo:   landRepo,
		farmerRepo: farmerRepo,
	}
}

func (s *LandService) CreateLand(ctx context.Context, in LandInput) (*models.Land, error) {
	if in.FarmerID != nil {
		if err := s.requireFarmer(ctx, *in.FarmerID); err != nil {
			return nil, err
		}
	}
	taxAmount := in.TaxAmount
	if taxAmount == nil {
		zero := 0.0
		taxAmount = &zero
	}

	land := &models.Land{
		Name:      in.Name,
		Location:  in.Location,
		Size:      in.Size,
		SoilType:  in.SoilType,
		TaxAmount: taxAmount,
		FarmerID:  in.FarmerID,
	}
	if err := s.landRepo.Create(ctx, land); err != nil {
		return nil, err
	}
	return land, nil
}

func (s *LandService) GetLand(ctx context.Context, id uint) (*models.Land, error) {
	land, err := s.landRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if land == nil {
		return nil, ErrLandNotFound
	}
	return land, nil
}

func (s *LandService) ListLands(ctx context.Context, skip, limit int) ([]models.Land, error) {
	return s.landRepo.FindAll(ctx, skip, limit)
}

// UpdateLand applies only the fields present in p. Explicit nulls clear soil_type,
// tax_amount and farmer_id.
func (s *LandService) UpdateLand(ctx context.Context, id uint, p LandPatch) (*models.Land, error) {
	land, err := s.GetLand(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := patch.Updates{}
	if err := patch.Required(updates, "name", p.Name); err != nil {
		return nil, err
	}
	if err := patch.Required(updates, "location", p.Location); err != nil {
		return nil, err
	}
	if err := patch.Required(updates, "size", p.Size); err != nil {
		return nil, err
	}
	patch.Nullable(updates, "soil_type", p.SoilType)
	patch.Nullable(updates, "tax_amount", p.TaxAmount)
	patch.Nullable(updates, "farmer_id", p.FarmerID)

	if p.FarmerID.Set && !p.FarmerID.Null {
		if err := s.requireFarmer(ctx, p.FarmerID.Value); err != nil {
			return nil, err
		}
	}

	if err := s.landRepo.Patch(ctx, land, updates); err != nil {
		return nil, err
	}
	return s.GetLand(ctx, id)
}

// AssignFarmer makes farmerID the owner of the land, replacing any previous owner.
func (s *LandService) AssignFarmer(ctx context.Context, landID, farmerID uint) (*models.Land, error) {
	return s.UpdateLand(ctx, landID, LandPatch{FarmerID: patch.Of(farmerID)})
}

func (s *LandService) DeleteLand(ctx context.Context, id uint) (*models.Land, error) {
	land, err := s.GetLand(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.landRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return land, nil
}

func (s *LandService) requireFarmer(ctx context.Context, farmerID uint) error {
	farmer, err := s.farmerRepo.FindByID(ctx, farmerID)
	if err != nil {
		return err
	}
	if farmer == nil {
		return ErrFarmerNotFound
	}
	return nil
}
