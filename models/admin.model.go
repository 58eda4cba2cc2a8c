package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a back-office user. Login is by emailed OTP only.
type Admin struct {
	gorm.Model
	Email     string     `gorm:"size:160;uniqueIndex;not null" json:"email"`
	Name      string     `gorm:"size:120;default:''" json:"name"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false" json:"is_deleted"`
}

func (Admin) TableName() string {
	return "admins"
}
