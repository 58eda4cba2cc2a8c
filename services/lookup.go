package services

import (
	"context"
	"errors"
	"strings"

	"warrantyhub/models"

	"gorm.io/gorm"
)

// StatusInput is the payload for creating or editing a lookup-table row.
type StatusInput struct {
	Name        string
	Description string
}

func validateStatusInput(in *StatusInput) error {
	in.Name = models.NormalizeStatusName(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	errs := fieldErrors{}
	if in.Name == "" {
		errs.add("name", "Name is required!")
	} else if len(in.Name) > 50 {
		errs.add("name", "Name must not exceed 50 characters!")
	}
	if len(in.Description) > 255 {
		errs.add("description", "Description must not exceed 255 characters!")
	}
	return errs.err()
}

// warrantyStatusByName finds a live warranty status by its normalized name.
func warrantyStatusByName(tx *gorm.DB, name string) (*models.WarrantyStatus, error) {
	var status models.WarrantyStatus
	err := tx.Where("name = ? AND is_deleted = ?", models.NormalizeStatusName(name), false).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Warranty status %q is not configured", name)
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// claimStatusByName finds a live claim status by its normalized name.
func claimStatusByName(tx *gorm.DB, name string) (*models.ClaimStatus, error) {
	var status models.ClaimStatus
	err := tx.Where("name = ? AND is_deleted = ?", models.NormalizeStatusName(name), false).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Claim status %q is not configured", name)
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func warrantyStatusByID(tx *gorm.DB, id uint) (*models.WarrantyStatus, error) {
	var status models.WarrantyStatus
	err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Warranty status not found!")
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func claimStatusByID(tx *gorm.DB, id uint) (*models.ClaimStatus, error) {
	var status models.ClaimStatus
	err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Claim status not found!")
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ListWarrantyStatuses returns the live warranty statuses ordered by id.
func ListWarrantyStatuses(ctx context.Context, db *gorm.DB) ([]models.WarrantyStatus, error) {
	var statuses []models.WarrantyStatus
	err := db.WithContext(ctx).Where("is_deleted = ?", false).Order("id ASC").Find(&statuses).Error
	return statuses, err
}

// ListClaimStatuses returns the live claim statuses ordered by id.
func ListClaimStatuses(ctx context.Context, db *gorm.DB) ([]models.ClaimStatus, error) {
	var statuses []models.ClaimStatus
	err := db.WithContext(ctx).Where("is_deleted = ?", false).Order("id ASC").Find(&statuses).Error
	return statuses, err
}

// CreateWarrantyStatus adds a warranty status. Names are unique among live rows;
// a previously deleted row with the same name is revived.
func CreateWarrantyStatus(ctx context.Context, db *gorm.DB, in StatusInput) (*models.WarrantyStatus, error) {
	if err := validateStatusInput(&in); err != nil {
		return nil, err
	}

	var status models.WarrantyStatus
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", in.Name).First(&status).Error
		switch {
		case err == nil && !status.IsDeleted:
			return newError(ErrConflict, "Warranty status %q already exists!", in.Name)
		case err == nil:
			status.IsDeleted = false
			status.Description = in.Description
			return tx.Model(&status).Updates(map[string]interface{}{
				"is_deleted":  false,
				"description": in.Description,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			status = models.WarrantyStatus{Name: in.Name, Description: in.Description}
			return tx.Create(&status).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// UpdateWarrantyStatusRow renames or re-describes a warranty status.
func UpdateWarrantyStatusRow(ctx context.Context, db *gorm.DB, id uint, in StatusInput) (*models.WarrantyStatus, error) {
	if err := validateStatusInput(&in); err != nil {
		return nil, err
	}

	var out *models.WarrantyStatus
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		status, err := warrantyStatusByID(tx, id)
		if err != nil {
			return err
		}
		if status.Name != in.Name {
			if models.ReservedWarrantyStatuses.Has(status.Name) {
				return newError(ErrInUse, "Warranty status %q is built in and cannot be renamed!", status.Name)
			}
			var n int64
			if err := tx.Model(&models.WarrantyStatus{}).Where("name = ? AND id <> ?", in.Name, id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return newError(ErrConflict, "Warranty status %q already exists!", in.Name)
			}
		}
		status.Name = in.Name
		status.Description = in.Description
		if err := tx.Save(status).Error; err != nil {
			return err
		}
		out = status
		return nil
	})
	return out, err
}

// DeleteWarrantyStatus soft-deletes a status that no warranty references.
func DeleteWarrantyStatus(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		status, err := warrantyStatusByID(tx, id)
		if err != nil {
			return err
		}
		if models.ReservedWarrantyStatuses.Has(status.Name) {
			return newError(ErrInUse, "Warranty status %q is built in and cannot be deleted!", status.Name)
		}

		// soft-deleted warranties still hold the reference
		var refs int64
		if err := tx.Model(&models.Warranty{}).
			Where("warranty_status_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return newError(ErrInUse, "Warranty status %q is used by %d warranties and cannot be deleted!", status.Name, refs)
		}

		return tx.Model(status).Update("is_deleted", true).Error
	})
}

// CreateClaimStatus adds a claim status, reviving a deleted row with the same name.
func CreateClaimStatus(ctx context.Context, db *gorm.DB, in StatusInput) (*models.ClaimStatus, error) {
	if err := validateStatusInput(&in); err != nil {
		return nil, err
	}

	var status models.ClaimStatus
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", in.Name).First(&status).Error
		switch {
		case err == nil && !status.IsDeleted:
			return newError(ErrConflict, "Claim status %q already exists!", in.Name)
		case err == nil:
			status.IsDeleted = false
			status.Description = in.Description
			return tx.Model(&status).Updates(map[string]interface{}{
				"is_deleted":  false,
				"description": in.Description,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			status = models.ClaimStatus{Name: in.Name, Description: in.Description}
			return tx.Create(&status).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// UpdateClaimStatusRow renames or re-describes a claim status.
func UpdateClaimStatusRow(ctx context.Context, db *gorm.DB, id uint, in StatusInput) (*models.ClaimStatus, error) {
	if err := validateStatusInput(&in); err != nil {
		return nil, err
	}

	var out *models.ClaimStatus
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		status, err := claimStatusByID(tx, id)
		if err != nil {
			return err
		}
		if status.Name != in.Name {
			if models.ReservedClaimStatuses.Has(status.Name) {
				return newError(ErrInUse, "Claim status %q is built in and cannot be renamed!", status.Name)
			}
			var n int64
			if err := tx.Model(&models.ClaimStatus{}).Where("name = ? AND id <> ?", in.Name, id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return newError(ErrConflict, "Claim status %q already exists!", in.Name)
			}
		}
		status.Name = in.Name
		status.Description = in.Description
		if err := tx.Save(status).Error; err != nil {
			return err
		}
		out = status
		return nil
	})
	return out, err
}

// DeleteClaimStatus soft-deletes a claim status that no claim or history row references.
func DeleteClaimStatus(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		status, err := claimStatusByID(tx, id)
		if err != nil {
			return err
		}
		if models.ReservedClaimStatuses.Has(status.Name) {
			return newError(ErrInUse, "Claim status %q is built in and cannot be deleted!", status.Name)
		}

		var refs, historyRefs int64
		if err := tx.Model(&models.Claim{}).
			Where("claim_status_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ClaimStatusHistory{}).
			Where("claim_status_id = ?", id).
			Count(&historyRefs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return newError(ErrInUse, "Claim status %q is used by %d claims and cannot be deleted!", status.Name, refs)
		}
		if historyRefs > 0 {
			return newError(ErrInUse, "Claim status %q appears in claim history and cannot be deleted!", status.Name)
		}

		return tx.Model(status).Update("is_deleted", true).Error
	})
}
