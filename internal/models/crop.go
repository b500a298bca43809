package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CropStatusPlanned   = "Planned"
	CropStatusGrowing   = "Growing"
	CropStatusHarvested = "Harvested"
)

type Crop struct {
	gorm.Model
	LandID              uint   `gorm:"not null;index"`
	CropName            string `gorm:"not null;index"`
	Variety             *string
	PlantingDate        time.Time `gorm:"not null;index"`
	ExpectedHarvestDate time.Time `gorm:"not null;index"`
	ActualHarvestDate   *time.Time
	Status              string `gorm:"not null;default:Planned"`
	ExpectedYield       *float64
	ActualYield         *float64
	Notes               *string
}
