package models

import "time"

// ClaimStatusHistory is the append-only audit log of claim status changes.
// Rows are only ever inserted.
type ClaimStatusHistory struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClaimID       uint      `gorm:"not null;index" json:"claim_id"`
	ClaimStatusID uint      `gorm:"not null" json:"claim_status_id"`
	ChangedBy     *uint     `gorm:"index" json:"changed_by"`
	AdminNotes    *string   `gorm:"type:text" json:"admin_notes"`
	ChangedAt     time.Time `gorm:"not null;index" json:"changed_at"`

	// Relations
	Claim  Claim       `gorm:"foreignKey:ClaimID" json:"-"`
	Status ClaimStatus `gorm:"foreignKey:ClaimStatusID" json:"status"`
	Admin  *Admin      `gorm:"foreignKey:ChangedBy" json:"admin,omitempty"`
}

func (ClaimStatusHistory) TableName() string {
	return "claim_status_history"
}
