package models

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleFarmer = "farmer"
)

type User struct {
	gorm.Model
	Username       string `gorm:"uniqueIndex;not null"`
	HashedPassword string `gorm:"not null"`
	Role           string `gorm:"not null;default:farmer"`
	IsActive       bool   `gorm:"not null"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
