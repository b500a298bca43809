package models

import "gorm.io/gorm"

// Item is an inventory line. Quantity has no floor: overselling drives it negative.
type Item struct {
	gorm.Model
	Name     string `gorm:"not null;index"`
	Type     string
	Quantity int     `gorm:"not null;default:0"`
	Price    float64 `gorm:"not null;default:0"`
}
