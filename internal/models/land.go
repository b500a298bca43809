package models

import "gorm.io/gorm"

type Land struct {
	gorm.Model
	Name      string `gorm:"not null;index"`
	Location  string
	Size      float64
	SoilType  *string
	TaxAmount *float64 `gorm:"default:0"`
	FarmerID  *uint    `gorm:"index"`
}
