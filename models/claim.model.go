package models

import (
	"time"

	"gorm.io/gorm"
)

// Claim is a defect claim filed against a warranty.
type Claim struct {
	gorm.Model
	ExternalID        string     `gorm:"size:40;uniqueIndex;not null" json:"external_id"`
	WarrantyID        uint       `gorm:"not null;index" json:"warranty_id"`
	DefectDescription string     `gorm:"type:text;not null" json:"defect_description"`
	PhotoURL          string     `gorm:"type:text;not null" json:"photo_url"`
	PhotoFileID       string     `gorm:"size:255" json:"photo_file_id"`
	VideoURL          string     `gorm:"type:text" json:"video_url,omitempty"`
	VideoFileID       string     `gorm:"size:255" json:"video_file_id,omitempty"`
	ClaimStatusID     uint       `gorm:"not null;index" json:"claim_status_id"`
	AdminNotes        *string    `gorm:"type:text" json:"admin_notes"`
	ClaimRegisterDate time.Time  `gorm:"not null;index" json:"claim_register_date"`
	ClaimResultDate   *time.Time `json:"claim_result_date"`
	IsDeleted         bool       `gorm:"default:false" json:"is_deleted"`

	// Relations
	Warranty *Warranty   `gorm:"foreignKey:WarrantyID" json:"warranty,omitempty"`
	Status   ClaimStatus `gorm:"foreignKey:ClaimStatusID" json:"status"`
}

func (Claim) TableName() string {
	return "claims"
}
