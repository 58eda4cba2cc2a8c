package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"warrantyhub/models"
	"warrantyhub/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxExternalIDAttempts = 5

var mobileRx = regexp.MustCompile(`^\+?\d{10,15}$`)

// RegisterWarrantyInput is a customer registration with already stored documents.
type RegisterWarrantyInput struct {
	CustomerName   string
	Email          string
	Mobile         string
	Address        string
	City           string
	Pincode        string
	ProductName    string
	ProductModel   string
	PurchaseDate   time.Time
	PurchasePrice  float64
	PurchaseSource string
	Invoice        utils.StoredFile
	WarrantyCard   utils.StoredFile
}

// WarrantyLookup is a warranty with the most recent claim filed against it, if any.
type WarrantyLookup struct {
	Warranty      models.Warranty `json:"warranty"`
	ExistingClaim *models.Claim   `json:"existing_claim"`
}

func validateRegistration(in *RegisterWarrantyInput) error {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Email = utils.NormalizeEmail(in.Email)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.PurchaseSource = strings.ToLower(strings.TrimSpace(in.PurchaseSource))

	errs := fieldErrors{}
	if in.CustomerName == "" {
		errs.add("customer_name", "Customer name is required!")
	}
	if _, err := mail.ParseAddress(in.Email); in.Email == "" || err != nil {
		errs.add("email", "A valid email is required!")
	}
	if !mobileRx.MatchString(in.Mobile) {
		errs.add("mobile", "A valid mobile number is required!")
	}
	if in.PurchaseDate.IsZero() {
		errs.add("purchase_date", "Purchase date is required!")
	} else if in.PurchaseDate.After(time.Now().Add(24 * time.Hour)) {
		errs.add("purchase_date", "Purchase date cannot be in the future!")
	}
	if in.PurchasePrice <= 0 {
		errs.add("purchase_price", "Purchase price must be greater than 0!")
	}
	if !isPurchaseSource(in.PurchaseSource) {
		errs.add("purchase_source", "Invalid purchase source! Allowed: "+strings.Join(models.PurchaseSources, ", "))
	}
	if strings.TrimSpace(in.Invoice.URL) == "" {
		errs.add("invoice", "Invoice document is required!")
	}
	if strings.TrimSpace(in.WarrantyCard.URL) == "" {
		errs.add("warranty_card", "Warranty card document is required!")
	}
	return errs.err()
}

func isPurchaseSource(s string) bool {
	for _, v := range models.PurchaseSources {
		if v == s {
			return true
		}
	}
	return false
}

// newWarrantyExternalID draws random ids until one is not already in use.
func newWarrantyExternalID(tx *gorm.DB) (string, error) {
	for attempt := 1; attempt <= maxExternalIDAttempts; attempt++ {
		id, err := utils.GenerateWarrantyExternalID()
		if err != nil {
			return "", err
		}

		var n int64
		if err := tx.Model(&models.Warranty{}).Where("external_id = ?", id).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return id, nil
		}
		logrus.WithField("external_id", id).Warn("Warranty id collision, retrying")
	}
	return "", fmt.Errorf("could not allocate a unique warranty id after %d attempts", maxExternalIDAttempts)
}

// RegisterWarranty stores a new warranty in the "registered" status.
func RegisterWarranty(ctx context.Context, db *gorm.DB, in RegisterWarrantyInput) (*models.Warranty, error) {
	if err := validateRegistration(&in); err != nil {
		return nil, err
	}

	var warranty models.Warranty
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		status, err := warrantyStatusByName(tx, models.WarrantyStatusRegistered)
		if err != nil {
			return err
		}

		externalID, err := newWarrantyExternalID(tx)
		if err != nil {
			return err
		}

		warranty = models.Warranty{
			ExternalID:         externalID,
			CustomerName:       in.CustomerName,
			Email:              in.Email,
			Mobile:             in.Mobile,
			Address:            strings.TrimSpace(in.Address),
			City:               strings.TrimSpace(in.City),
			Pincode:            strings.TrimSpace(in.Pincode),
			ProductName:        strings.TrimSpace(in.ProductName),
			ProductModel:       strings.TrimSpace(in.ProductModel),
			PurchaseDate:       datatypes.Date(in.PurchaseDate),
			PurchasePrice:      in.PurchasePrice,
			PurchaseSource:     in.PurchaseSource,
			InvoiceURL:         in.Invoice.URL,
			InvoiceFileID:      in.Invoice.FileID,
			WarrantyCardURL:    in.WarrantyCard.URL,
			WarrantyCardFileID: in.WarrantyCard.FileID,
			WarrantyStatusID:   status.ID,
			RegistrationDate:   time.Now().UTC(),
		}
		if err := tx.Create(&warranty).Error; err != nil {
			return err
		}
		warranty.Status = *status
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.WarrantyRegistrations.Inc()
	logrus.WithFields(logrus.Fields{"warranty_id": warranty.ExternalID, "email": warranty.Email}).Info("Warranty registered")
	return &warranty, nil
}

func findWarranty(tx *gorm.DB, externalID string) (*models.Warranty, error) {
	var warranty models.Warranty
	err := tx.Preload("Status").
		Where("external_id = ? AND is_deleted = ?", strings.ToUpper(strings.TrimSpace(externalID)), false).
		First(&warranty).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Warranty not found!")
	}
	if err != nil {
		return nil, err
	}
	return &warranty, nil
}

// latestClaim returns the most recently registered live claim for a warranty, or nil.
func latestClaim(tx *gorm.DB, warrantyID uint) (*models.Claim, error) {
	var claim models.Claim
	err := tx.Preload("Status").
		Where("warranty_id = ? AND is_deleted = ?", warrantyID, false).
		Order("claim_register_date DESC").
		Order("id DESC").
		First(&claim).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindWarrantyByExternalID returns the warranty with its latest claim regardless of that claim's status.
func FindWarrantyByExternalID(ctx context.Context, db *gorm.DB, externalID string) (*WarrantyLookup, error) {
	tx := db.WithContext(ctx)

	warranty, err := findWarranty(tx, externalID)
	if err != nil {
		return nil, err
	}

	claim, err := latestClaim(tx, warranty.ID)
	if err != nil {
		return nil, err
	}

	return &WarrantyLookup{Warranty: *warranty, ExistingClaim: claim}, nil
}

// FindWarrantiesByEmail lists the live warranties registered under an email, newest first.
func FindWarrantiesByEmail(ctx context.Context, db *gorm.DB, email string) ([]models.Warranty, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, &ValidationError{Fields: map[string]string{"email": "Email is required!"}}
	}

	var warranties []models.Warranty
	err := db.WithContext(ctx).Preload("Status").
		Where("email = ? AND is_deleted = ?", email, false).
		Order("registration_date DESC").
		Find(&warranties).Error
	if err != nil {
		return nil, err
	}
	if len(warranties) == 0 {
		return nil, newError(ErrNotFound, "No warranties found for this email!")
	}
	return warranties, nil
}

// UpdateWarrantyStatus moves a warranty to another status. Claims are not touched.
func UpdateWarrantyStatus(ctx context.Context, db *gorm.DB, externalID string, statusID uint) (*models.Warranty, error) {
	var out *models.Warranty
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		warranty, err := findWarranty(tx, externalID)
		if err != nil {
			return err
		}

		status, err := warrantyStatusByID(tx, statusID)
		if errors.Is(err, ErrNotFound) {
			return &ValidationError{Fields: map[string]string{"status_id": "Invalid warranty status!"}}
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Warranty{}).Where("id = ?", warranty.ID).
			Update("warranty_status_id", status.ID).Error; err != nil {
			return err
		}

		out, err = findWarranty(tx, warranty.ExternalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"warranty_id": out.ExternalID, "status": out.Status.Name}).Info("Warranty status updated")
	return out, nil
}

// WarrantyDetailsInput edits customer facing fields. Nil fields are left as they are.
type WarrantyDetailsInput struct {
	CustomerName *string
	Email        *string
	Mobile       *string
	Address      *string
	City         *string
	Pincode      *string
	ProductName  *string
	ProductModel *string
}

// UpdateWarrantyDetails corrects registration details. Status, dates and documents are not editable here.
func UpdateWarrantyDetails(ctx context.Context, db *gorm.DB, externalID string, in WarrantyDetailsInput) (*models.Warranty, error) {
	updates := map[string]interface{}{}
	errs := fieldErrors{}

	if in.CustomerName != nil {
		if v := strings.TrimSpace(*in.CustomerName); v == "" {
			errs.add("customer_name", "Customer name is required!")
		} else {
			updates["customer_name"] = v
		}
	}
	if in.Email != nil {
		v := utils.NormalizeEmail(*in.Email)
		if _, err := mail.ParseAddress(v); v == "" || err != nil {
			errs.add("email", "A valid email is required!")
		} else {
			updates["email"] = v
		}
	}
	if in.Mobile != nil {
		if v := strings.TrimSpace(*in.Mobile); !mobileRx.MatchString(v) {
			errs.add("mobile", "A valid mobile number is required!")
		} else {
			updates["mobile"] = v
		}
	}
	for column, value := range map[string]*string{
		"address":       in.Address,
		"city":          in.City,
		"pincode":       in.Pincode,
		"product_name":  in.ProductName,
		"product_model": in.ProductModel,
	} {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var out *models.Warranty
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		warranty, err := findWarranty(tx, externalID)
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Warranty{}).Where("id = ?", warranty.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		out, err = findWarranty(tx, warranty.ExternalID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WarrantyFilter drives the admin warranty list.
type WarrantyFilter struct {
	Page     int
	Limit    int
	StatusID uint
	Search   string
	SortBy   string
	Order    string
}

// WarrantyPage is one page of warranties plus the total match count.
type WarrantyPage struct {
	Warranties []models.Warranty `json:"warranties"`
	Pagination Pagination        `json:"pagination"`
}

// ListWarranties pages through live warranties for the admin console.
func ListWarranties(ctx context.Context, db *gorm.DB, f WarrantyFilter) (*WarrantyPage, error) {
	orderBy, err := WarrantySortClause(f.SortBy, f.Order)
	if err != nil {
		return nil, err
	}
	page, limit := normalizePage(f.Page, f.Limit)

	q := db.WithContext(ctx).Model(&models.Warranty{}).Where("warranties.is_deleted = ?", false)
	if f.StatusID != 0 {
		q = q.Where("warranties.warranty_status_id = ?", f.StatusID)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(warranties.external_id) LIKE ? OR LOWER(warranties.customer_name) LIKE ? OR warranties.email LIKE ? OR warranties.mobile LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var warranties []models.Warranty
	if err := q.Preload("Status").Order(orderBy).Offset((page - 1) * limit).Limit(limit).Find(&warranties).Error; err != nil {
		return nil, err
	}

	return &WarrantyPage{
		Warranties: warranties,
		Pagination: Pagination{Total: total, Page: page, Limit: limit},
	}, nil
}

// SoftDeleteWarranty hides a warranty from every lookup. Rows are never removed.
func SoftDeleteWarranty(ctx context.Context, db *gorm.DB, externalID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		warranty, err := findWarranty(tx, externalID)
		if err != nil {
			return err
		}
		return tx.Model(&models.Warranty{}).Where("id = ?", warranty.ID).Update("is_deleted", true).Error
	})
}
