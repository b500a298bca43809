package models

import "gorm.io/gorm"

// Farmer owns Tasks and Lands through their FarmerID columns.
type Farmer struct {
	gorm.Model
	Name    string `gorm:"not null;index"`
	Phone   string
	Address string
}
