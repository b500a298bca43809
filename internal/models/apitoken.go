package models

import (
	"time"

	"gorm.io/gorm"
)

// APIToken is the ledger row for an issued bearer token, keyed by the JWT ID.
// A token is only accepted while its row exists and has not expired.
type APIToken struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index"`
	TokenID   string    `gorm:"uniqueIndex;not null;size:36"`
	ExpiresAt time.Time `gorm:"not null;index"`
}
