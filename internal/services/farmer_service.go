package services

import (
	"context"
	"errors"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/repository"
)

var ErrFarmerNotFound = errors.New("farmer not found")

type FarmerInput struct {
	Name    string
	Phone   string
	Address string
}

type FarmerService struct {
	farmerRepo *repository.FarmerRepository
	taskRepo   *repository.TaskRepository
	landRepo   *repository.LandRepository
}

func NewFarmerService(farmerRepo *repository.FarmerRepository, taskRepo *repository.TaskRepository, landRepo *repository.LandRepository) *FarmerService {
	return &FarmerService{
		farmerRepo: farmerRepo,
		taskRepo:   taskRepo,
		landRepo:   landRepo,
	}
}

func (s *FarmerService) CreateFarmer(ctx context.Context, in FarmerInput) (*models.Farmer, error) {
	farmer := &models.Farmer{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if err := s.farmerRepo.Create(ctx, farmer); err != nil {
		return nil, err
	}
	return farmer, nil
}

func (s *FarmerService) GetFarmer(ctx context.Context, id uint) (*models.Farmer, error) {
	farmer, err := s.farmerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}
	return farmer, nil
}

func (s *FarmerService) ListFarmers(ctx context.Context, skip, limit int) ([]models.Farmer, error) {
	return s.farmerRepo.FindAll(ctx, skip, limit)
}

// UpdateFarmer replaces every editable field of the farmer.
func (s *FarmerService) UpdateFarmer(ctx context.Context, id uint, in FarmerInput) (*models.Farmer, error) {
	farmer, err := s.GetFarmer(ctx, id)
	if err != nil {
		return nil, err
	}

	farmer.Name = in.Name
	farmer.Phone = in.Phone
	farmer.Address = in.Address

	if err := s.farmerRepo.Update(ctx, farmer); err != nil {
		return nil, err
	}
	return farmer, nil
}

// DeleteFarmer removes only the farmer; its tasks and lands keep their farmer_id.
func (s *FarmerService) DeleteFarmer(ctx context.Context, id uint) (*models.Farmer, error) {
	farmer, err := s.GetFarmer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.farmerRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return farmer, nil
}

func (s *FarmerService) FarmerTasks(ctx context.Context, id uint) ([]models.Task, error) {
	if _, err := s.GetFarmer(ctx, id); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByFarmerID(ctx, id)
}

func (s *FarmerService) FarmerLands(ctx context.Context, id uint) ([]models.Land, error) {
	if _, err := s.GetFarmer(ctx, id); err != nil {
		return nil, err
	}
	return s.landRepo.FindByFarmerID(ctx, id)
}
