package repository

import (
	"context"

	"github.com/h4ks-com/farmstead/internal/models"
	"github.com/h4ks-com/farmstead/internal/patch"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindAll(ctx context.Context, skip, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := Page(r.db.WithContext(ctx), skip, limit).Order("id").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) FindByFarmerID(ctx context.Context, farmerID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where("farmer_id = ?", farmerID).Order("id").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Patch(ctx context.Context, task *models.Task, updates patch.Updates) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(task).Updates(map[string]interface{}(updates)).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}
