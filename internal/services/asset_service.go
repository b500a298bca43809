package services

import (
	"context"
	"errors"
	"time"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/repository"
)

var ErrAssetNotFound = errors.New("asset not found")

type AssetService struct {
	assetRepo *repository.AssetRepository
	now       func() time.Time
}

func NewAssetService(assetRepo *repository.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo, now: time.Now}
}

// CreateAsset stamps the purchase date with the current time.
func (s *AssetService) CreateAsset(ctx context.Context, name, assetType string, value float64) (*models.Asset, error) {
	asset := &models.Asset{
		Name:         name,
		Type:         assetType,
		Value:        value,
		PurchaseDate: s.now().UTC(),
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *AssetService) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}

func (s *AssetService) ListAssets(ctx context.Context, skip, limit int) ([]models.Asset, error) {
	return s.assetRepo.FindAll(ctx, skip, limit)
}

func (s *AssetService) DeleteAsset(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.assetRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return asset, nil
}
