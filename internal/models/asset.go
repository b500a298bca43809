package models

import (
	"time"

	"gorm.io/gorm"
)

type Asset struct {
	gorm.Model
	Name         string `gorm:"not null;index"`
	Type         string
	Value        float64
	PurchaseDate time.Time `gorm:"not null"`
}
