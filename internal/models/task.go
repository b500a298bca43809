package models

import "gorm.io/gorm"

const (
	TaskStatusPending   = "Pending"
	TaskStatusCompleted = "Completed"
)

type Task struct {
	gorm.Model
	Description string `gorm:"not null"`
	Status      string `gorm:"not null;default:Pending;index"`
	FarmerID    uint   `gorm:"not null;index"`
}
