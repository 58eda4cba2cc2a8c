package models

import "time"

// LoginTracking records every successful admin sign-in.
type LoginTracking struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID   uint      `gorm:"not null;index" json:"admin_id"`
	IPAddress string    `gorm:"size:64" json:"ip_address"`
	Device    string    `gorm:"size:255" json:"device"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

func (LoginTracking) TableName() string {
	return "admin_login_tracking"
}
