package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"warrantyhub/models"
	"warrantyhub/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminInput is the payload for creating a back-office account.
type AdminInput struct {
	Email string
	Name  string
}

// FindActiveAdminByEmail returns an admin that may log in.
func FindActiveAdminByEmail(ctx context.Context, db *gorm.DB, email string) (*models.Admin, error) {
	var admin models.Admin
	err := db.WithContext(ctx).
		Where("email = ? AND is_deleted = ? AND is_active = ?", utils.NormalizeEmail(email), false, true).
		First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Admin not found!")
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// LoginInfo is the client detail captured on sign-in.
type LoginInfo struct {
	IPAddress string
	Device    string
}

// RecordAdminLogin stamps last_login and appends a login tracking row.
func RecordAdminLogin(ctx context.Context, db *gorm.DB, adminID uint, info LoginInfo) error {
	now := time.Now().UTC()
	if len(info.Device) > 255 {
		info.Device = info.Device[:255]
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Admin{}).Where("id = ?", adminID).
			Update("last_login", now).Error; err != nil {
			return err
		}
		return tx.Create(&models.LoginTracking{
			AdminID:   adminID,
			IPAddress: info.IPAddress,
			Device:    info.Device,
			Timestamp: now,
		}).Error
	})
}

// LoginHistoryPage is one page of an admin's sign-ins, newest first.
type LoginHistoryPage struct {
	Logins     []models.LoginTracking `json:"logins"`
	Pagination Pagination             `json:"pagination"`
}

func ListAdminLogins(ctx context.Context, db *gorm.DB, adminID uint, page, limit int) (*LoginHistoryPage, error) {
	page, limit = normalizePage(page, limit)
	query := db.WithContext(ctx).Model(&models.LoginTracking{}).Where("admin_id = ?", adminID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	logins := []models.LoginTracking{}
	err := query.Order("timestamp DESC").Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logins).Error
	if err != nil {
		return nil, err
	}

	return &LoginHistoryPage{
		Logins:     logins,
		Pagination: Pagination{Total: total, Page: page, Limit: limit},
	}, nil
}

// ListAdmins returns every live admin ordered by id.
func ListAdmins(ctx context.Context, db *gorm.DB) ([]models.Admin, error) {
	var admins []models.Admin
	err := db.WithContext(ctx).Where("is_deleted = ?", false).Order("id ASC").Find(&admins).Error
	return admins, err
}

// CreateAdmin adds an active admin. Emails are unique.
func CreateAdmin(ctx context.Context, db *gorm.DB, in AdminInput) (*models.Admin, error) {
	in.Email = utils.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	errs := fieldErrors{}
	if _, err := mail.ParseAddress(in.Email); in.Email == "" || err != nil {
		errs.add("email", "A valid email is required!")
	}
	if in.Name == "" {
		errs.add("name", "Name is required!")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var admin models.Admin
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Admin{}).Where("email = ?", in.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return newError(ErrConflict, "An admin with this email already exists!")
		}
		admin = models.Admin{Email: in.Email, Name: in.Name, IsActive: true}
		return tx.Create(&admin).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"admin_id": admin.ID, "email": admin.Email}).Info("Admin created")
	return &admin, nil
}

// SetAdminActive enables or disables an admin. An admin cannot disable themselves.
func SetAdminActive(ctx context.Context, db *gorm.DB, actorID, adminID uint, active bool) (*models.Admin, error) {
	if actorID == adminID && !active {
		return nil, &ValidationError{Fields: map[string]string{"is_active": "You cannot deactivate your own account!"}}
	}

	var admin models.Admin
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND is_deleted = ?", adminID, false).First(&admin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotFound, "Admin not found!")
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&admin).Update("is_active", active).Error; err != nil {
			return err
		}
		admin.IsActive = active
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"admin_id": admin.ID, "is_active": active, "by": actorID}).Info("Admin status changed")
	return &admin, nil
}
