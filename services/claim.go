package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"warrantyhub/models"
	"warrantyhub/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateClaimInput is a customer claim with already stored media.
type CreateClaimInput struct {
	WarrantyExternalID string
	DefectDescription  string
	Photo              utils.StoredFile
	Video              utils.StoredFile
}

// UpdateClaimStatusInput is an admin decision on a claim.
// A nil AdminNotes leaves the stored notes unchanged; a non-nil empty string clears them.
type UpdateClaimStatusInput struct {
	ExternalID string
	StatusID   uint
	AdminNotes *string
	ChangedBy  *uint
}

// ClaimUpdate is the refreshed claim after a status change.
type ClaimUpdate struct {
	Claim           *models.Claim
	WarrantyClaimed bool
}

// ClaimSummary is the public view of a claim shown next to its history.
type ClaimSummary struct {
	ExternalID         string     `json:"external_id"`
	WarrantyExternalID string     `json:"warranty_external_id"`
	CustomerName       string     `json:"customer_name"`
	ProductName        string     `json:"product_name"`
	DefectDescription  string     `json:"defect_description"`
	Status             string     `json:"status"`
	AdminNotes         *string    `json:"admin_notes"`
	ClaimRegisterDate  time.Time  `json:"claim_register_date"`
	ClaimResultDate    *time.Time `json:"claim_result_date"`
}

// HistoryEntry is one row of a claim's audit trail.
type HistoryEntry struct {
	ID         uint      `json:"id"`
	Status     string    `json:"status"`
	AdminNotes *string   `json:"admin_notes"`
	ChangedBy  *uint     `json:"changed_by"`
	AdminName  string    `json:"admin_name,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}

// ClaimHistory is a claim summary with its history newest first.
type ClaimHistory struct {
	Claim   ClaimSummary   `json:"claim"`
	History []HistoryEntry `json:"history"`
}

func validateClaimInput(in *CreateClaimInput) error {
	in.WarrantyExternalID = strings.ToUpper(strings.TrimSpace(in.WarrantyExternalID))
	in.DefectDescription = strings.TrimSpace(in.DefectDescription)

	errs := fieldErrors{}
	if in.WarrantyExternalID == "" {
		errs.add("warranty_id", "Warranty ID is required!")
	}
	if in.DefectDescription == "" {
		errs.add("defect_description", "Defect description is required!")
	} else if len(in.DefectDescription) > 2000 {
		errs.add("defect_description", "Defect description must not exceed 2000 characters!")
	}
	if strings.TrimSpace(in.Photo.URL) == "" {
		errs.add("photo", "A photo of the defect is required!")
	}
	return errs.err()
}

// CreateClaim files a claim against a warranty. At most one claim in an active
// status may exist per warranty; the warranty row is locked while checking.
func CreateClaim(ctx context.Context, db *gorm.DB, in CreateClaimInput) (*models.Claim, error) {
	if err := validateClaimInput(&in); err != nil {
		return nil, err
	}

	var claim models.Claim
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var warranty models.Warranty
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_id = ? AND is_deleted = ?", in.WarrantyExternalID, false).
			First(&warranty).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "Warranty not found!")
		}
		if err != nil {
			return err
		}

		existing, err := latestClaim(tx, warranty.ID)
		if err != nil {
			return err
		}
		if existing != nil && models.IsActiveClaimStatus(existing.Status.Name) {
			return newError(ErrActiveClaim, "An active claim (%s) already exists for this warranty!", existing.ExternalID)
		}

		status, err := claimStatusByName(tx, models.ClaimStatusUnderReview)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		externalID, err := utils.GenerateClaimExternalID(now)
		if err != nil {
			return err
		}

		claim = models.Claim{
			ExternalID:        externalID,
			WarrantyID:        warranty.ID,
			DefectDescription: in.DefectDescription,
			PhotoURL:          in.Photo.URL,
			PhotoFileID:       in.Photo.FileID,
			VideoURL:          in.Video.URL,
			VideoFileID:       in.Video.FileID,
			ClaimStatusID:     status.ID,
			ClaimRegisterDate: now,
		}
		if err := tx.Create(&claim).Error; err != nil {
			return err
		}

		claim.Status = *status
		claim.Warranty = &warranty
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.ClaimsCreated.Inc()
	logrus.WithFields(logrus.Fields{"claim_id": claim.ExternalID, "warranty_id": in.WarrantyExternalID}).Info("Claim created")
	return &claim, nil
}

func findClaim(tx *gorm.DB, externalID string) (*models.Claim, error) {
	var claim models.Claim
	err := tx.Preload("Status").Preload("Warranty").Preload("Warranty.Status").
		Where("external_id = ? AND is_deleted = ?", strings.ToUpper(strings.TrimSpace(externalID)), false).
		First(&claim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Claim not found!")
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindClaimByExternalID returns a claim with its status and parent warranty.
func FindClaimByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*models.Claim, error) {
	return findClaim(db.WithContext(ctx), externalID)
}

// UpdateClaimStatus records an admin decision. The claim update, the history row
// and the warranty cascade commit together.
func UpdateClaimStatus(ctx context.Context, db *gorm.DB, in UpdateClaimStatusInput) (*ClaimUpdate, error) {
	if in.StatusID == 0 {
		return nil, &ValidationError{Fields: map[string]string{"status_id": "Status is required!"}}
	}

	out := &ClaimUpdate{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim, err := findClaim(tx, in.ExternalID)
		if err != nil {
			return err
		}

		status, err := claimStatusByID(tx, in.StatusID)
		if errors.Is(err, ErrNotFound) {
			return &ValidationError{Fields: map[string]string{"status_id": "Invalid claim status!"}}
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"claim_status_id":   status.ID,
			"claim_result_date": now,
		}
		notes := claim.AdminNotes
		if in.AdminNotes != nil {
			trimmed := strings.TrimSpace(*in.AdminNotes)
			notes = &trimmed
			updates["admin_notes"] = trimmed
		}
		if err := tx.Model(&models.Claim{}).Where("id = ?", claim.ID).Updates(updates).Error; err != nil {
			return err
		}

		history := models.ClaimStatusHistory{
			ClaimID:       claim.ID,
			ClaimStatusID: status.ID,
			ChangedBy:     in.ChangedBy,
			AdminNotes:    notes,
			ChangedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		if models.CascadesToWarranty(status.Name) {
			claimed, err := warrantyStatusByName(tx, models.WarrantyStatusClaimed)
			if err != nil {
				return err
			}
			if err := tx.Model(&models.Warranty{}).Where("id = ?", claim.WarrantyID).
				Update("warranty_status_id", claimed.ID).Error; err != nil {
				return err
			}
			out.WarrantyClaimed = true
		}

		out.Claim, err = findClaim(tx, claim.ExternalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.ClaimStatusChanges.WithLabelValues(out.Claim.Status.Name).Inc()
	logrus.WithFields(logrus.Fields{
		"claim_id":         out.Claim.ExternalID,
		"status":           out.Claim.Status.Name,
		"warranty_claimed": out.WarrantyClaimed,
	}).Info("Claim status updated")
	return out, nil
}

// GetClaimHistory returns a claim summary and its status changes, newest first.
func GetClaimHistory(ctx context.Context, db *gorm.DB, externalID string) (*ClaimHistory, error) {
	tx := db.WithContext(ctx)

	claim, err := findClaim(tx, externalID)
	if err != nil {
		return nil, err
	}

	var rows []models.ClaimStatusHistory
	err = tx.Preload("Status").Preload("Admin").
		Where("claim_id = ?", claim.ID).
		Order("changed_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := ClaimSummary{
		ExternalID:        claim.ExternalID,
		DefectDescription: claim.DefectDescription,
		Status:            claim.Status.Name,
		AdminNotes:        claim.AdminNotes,
		ClaimRegisterDate: claim.ClaimRegisterDate,
		ClaimResultDate:   claim.ClaimResultDate,
	}
	if claim.Warranty != nil {
		summary.WarrantyExternalID = claim.Warranty.ExternalID
		summary.CustomerName = claim.Warranty.CustomerName
		summary.ProductName = claim.Warranty.ProductName
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, r := range rows {
		e := HistoryEntry{
			ID:         r.ID,
			Status:     r.Status.Name,
			AdminNotes: r.AdminNotes,
			ChangedBy:  r.ChangedBy,
			ChangedAt:  r.ChangedAt,
		}
		if r.Admin != nil {
			e.AdminName = r.Admin.Name
		}
		entries = append(entries, e)
	}

	return &ClaimHistory{Claim: summary, History: entries}, nil
}

// ClaimFilter drives the admin claim list.
type ClaimFilter struct {
	Page     int
	Limit    int
	StatusID uint
	Search   string
	SortBy   string
	Order    string
}

// ClaimPage is one page of claims plus the total match count.
type ClaimPage struct {
	Claims     []models.Claim `json:"claims"`
	Pagination Pagination     `json:"pagination"`
}

// ListClaims pages through live claims with their warranty for the admin console.
func ListClaims(ctx context.Context, db *gorm.DB, f ClaimFilter) (*ClaimPage, error) {
	orderBy, err := ClaimSortClause(f.SortBy, f.Order)
	if err != nil {
		return nil, err
	}
	page, limit := normalizePage(f.Page, f.Limit)

	query := db.WithContext(ctx).Model(&models.Claim{}).
		Joins("JOIN warranties ON warranties.id = claims.warranty_id").
		Where("claims.is_deleted = ?", false)
	if f.StatusID != 0 {
		query = query.Where("claims.claim_status_id = ?", f.StatusID)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		query = query.Where("LOWER(claims.external_id) LIKE ? OR LOWER(warranties.external_id) LIKE ? OR LOWER(warranties.customer_name) LIKE ? OR warranties.email LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var claims []models.Claim
	err = query.Preload("Status").Preload("Warranty").Preload("Warranty.Status").
		Order(orderBy).Order("claims.id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&claims).Error
	if err != nil {
		return nil, err
	}

	return &ClaimPage{
		Claims:     claims,
		Pagination: Pagination{Total: total, Page: page, Limit: limit},
	}, nil
}

// SoftDeleteClaim hides a claim. Its history rows stay untouched.
func SoftDeleteClaim(ctx context.Context, db *gorm.DB, externalID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claim, err := findClaim(tx, externalID)
		if err != nil {
			return err
		}
		return tx.Model(&models.Claim{}).Where("id = ?", claim.ID).Update("is_deleted", true).Error
	})
}

// StaleClaimCount counts live claims that have sat in status for longer than age.
func StaleClaimCount(ctx context.Context, db *gorm.DB, status string, age time.Duration) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.Claim{}).
		Joins("JOIN claim_statuses ON claim_statuses.id = claims.claim_status_id").
		Where("claims.is_deleted = ? AND claim_statuses.name = ?", false, models.NormalizeStatusName(status)).
		Where("COALESCE(claims.claim_result_date, claims.claim_register_date) < ?", time.Now().UTC().Add(-age)).
		Count(&n).Error
	return n, err
}
