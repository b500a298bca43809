package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TransactionTypeBuy  = "buy"
	TransactionTypeSell = "sell"
)

// Transaction records a purchase or sale of an Item. Rows are never updated.
type Transaction struct {
	gorm.Model
	ItemID       uint    `gorm:"not null;index"`
	Type         string  `gorm:"not null;size:8;index"`
	Quantity     int     `gorm:"not null"`
	PricePerUnit float64 `gorm:"not null"`
	TotalPrice   float64 `gorm:"not null"`
	BuyerName    *string
	Date         time.Time `gorm:"not null;index"`
}
