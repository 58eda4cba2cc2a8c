package models

import "gorm.io/gorm"

// ClaimStatus is the admin-managed lookup table for claim states.
type ClaimStatus struct {
	gorm.Model
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	IsDeleted   bool   `gorm:"default:false" json:"is_deleted"`
}

func (ClaimStatus) TableName() string {
	return "claim_statuses"
}

func (s *ClaimStatus) BeforeSave(tx *gorm.DB) error {
	s.Name = NormalizeStatusName(s.Name)
	return nil
}
