package models

import "gorm.io/gorm"

// WarrantyStatus is the admin-managed lookup table for warranty states.
type WarrantyStatus struct {
	gorm.Model
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	IsDeleted   bool   `gorm:"default:false" json:"is_deleted"`
}

func (WarrantyStatus) TableName() string {
	return "warranty_statuses"
}

// BeforeSave keeps names lowercase so lookups by name stay stable.
func (s *WarrantyStatus) BeforeSave(tx *gorm.DB) error {
	s.Name = NormalizeStatusName(s.Name)
	return nil
}
