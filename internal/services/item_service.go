package services

import (
	"context"
	"errors"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/repository"
)

var ErrItemNotFound = errors.New("item not found")

type ItemInput struct {
	Name     string
	Type     string
	Quantity int
	Price    float64
}

type ItemService struct {
	itemRepo *repository.ItemRepository
}

func NewItemService(itemRepo *repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

func (s *ItemService) CreateItem(ctx context.Context, in ItemInput) (*models.Item, error) {
	item := &models.Item{
		Name:     in.Name,
		Type:     in.Type,
		Quantity: in.Quantity,
		Price:    in.Price,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *ItemService) ListItems(ctx context.Context, skip, limit int) ([]models.Item, error) {
	return s.itemRepo.FindAll(ctx, skip, limit)
}

// UpdateItem replaces every editable field of the item.
func (s *ItemService) UpdateItem(ctx context.Context, id uint, in ItemInput) (*models.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = in.Name
	item.Type = in.Type
	item.Quantity = in.Quantity
	item.Price = in.Price

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return item, nil
}

// ImportItem adds quantity to an existing item with the same name, or creates it.
// It reports whether a new item was created.
func (s *ItemService) ImportItem(ctx context.Context, in ItemInput) (*models.Item, bool, error) {
	item, err := s.itemRepo.FindByName(ctx, in.Name)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		item, err = s.CreateItem(ctx, in)
		return item, err == nil, err
	}

	item.Quantity += in.Quantity
	if in.Type != "" {
		item.Type = in.Type
	}
	if in.Price != 0 {
		item.Price = in.Price
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, false, err
	}
	return item, false, nil
}
