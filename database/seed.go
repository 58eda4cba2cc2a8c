package database

import (
	"fmt"
	"strings"

	"warrantyhub/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var defaultWarrantyStatuses = []models.WarrantyStatus{
	{Name: models.WarrantyStatusRegistered, Description: "Warranty registered and active"},
	{Name: models.WarrantyStatusClaimed, Description: "A claim against this warranty was honoured"},
	{Name: models.WarrantyStatusExpired, Description: "Warranty period has ended"},
	{Name: models.WarrantyStatusVoid, Description: "Warranty voided by an administrator"},
}

var defaultClaimStatuses = []models.ClaimStatus{
	{Name: models.ClaimStatusPending, Description: "Claim received"},
	{Name: models.ClaimStatusUnderReview, Description: "Claim is being reviewed"},
	{Name: models.ClaimStatusApproved, Description: "Claim approved"},
	{Name: models.ClaimStatusRejected, Description: "Claim rejected"},
	{Name: models.ClaimStatusShipped, Description: "Replacement or repaired unit shipped"},
	{Name: models.ClaimStatusCompleted, Description: "Claim closed"},
}

// SeedLookups inserts the built-in statuses and the bootstrap admin when missing.
// It is safe to run on every boot.
func SeedLookups(db *gorm.DB, adminEmail, adminName string) error {
	for _, s := range defaultWarrantyStatuses {
		row := s
		if err := db.Where("name = ?", row.Name).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed warranty status %s: %w", s.Name, err)
		}
	}

	for _, s := range defaultClaimStatuses {
		row := s
		if err := db.Where("name = ?", row.Name).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("seed claim status %s: %w", s.Name, err)
		}
	}

	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	if adminEmail == "" {
		logrus.Warn("ADMIN_EMAIL not set, skipping bootstrap admin")
		return nil
	}

	admin := models.Admin{Email: adminEmail, Name: adminName, IsActive: true}
	if err := db.Where("email = ?", adminEmail).FirstOrCreate(&admin).Error; err != nil {
		return fmt.Errorf("seed admin %s: %w", adminEmail, err)
	}

	return nil
}
