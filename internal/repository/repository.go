package repository

import (
	"errors"

	"gorm.io/gorm"
)

const DefaultLimit = 100

// Page applies skip/limit the way list endpoints expect: non-positive limits fall back to
// DefaultLimit and negative skips to zero.
func Page(db *gorm.DB, skip, limit int) *gorm.DB {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return db.Offset(skip).Limit(limit)
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
