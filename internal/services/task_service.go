package services

import (
	"context"
	"errors"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/patch"
	"github.com/h4ks-com/farmstead/internal/repository"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskPatch struct {
	Description patch.Field[string] `json:"description"`
	Status      patch.Field[string] `json:"status"`
	FarmerID    patch.Field[uint]   `json:"farmer_id"`
}

type TaskService struct {
	taskRepo   *repository.TaskRepository
	farmerRepo *repository.FarmerRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, farmerRepo *repository.FarmerRepository) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		farmerRepo: farmerRepo,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, description, status string, farmerID uint) (*models.Task, error) {
	if err := s.requireFarmer(ctx, farmerID); err != nil {
		return nil, err
	}
	if status == "" {
		status = models.TaskStatusPending
	}

	task := &models.Task{
		Description: description,
		Status:      status,
		FarmerID:    farmerID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, skip, limit int) ([]models.Task, error) {
	return s.taskRepo.FindAll(ctx, skip, limit)
}

// UpdateTask applies only the fields present in p.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, p TaskPatch) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := patch.Updates{}
	if err := patch.Required(updates, "description", p.Description); err != nil {
		return nil, err
	}
	if err := patch.Required(updates, "status", p.Status); err != nil {
		return nil, err
	}
	if err := patch.Required(updates, "farmer_id", p.FarmerID); err != nil {
		return nil, err
	}
	if p.FarmerID.Set {
		if err := s.requireFarmer(ctx, p.FarmerID.Value); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Patch(ctx, task, updates); err != nil {
		return nil, err
	}
	return s.GetTask(ctx, id)
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) requireFarmer(ctx context.Context, farmerID uint) error {
	farmer, err := s.farmerRepo.FindByID(ctx, farmerID)
	if err != nil {
		return err
	}
	if farmer == nil {
		return ErrFarmerNotFound
	}
	return nil
}
