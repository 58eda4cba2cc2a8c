package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"warrantyhub/database"
	"warrantyhub/models"
	"warrantyhub/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAdminEmail = "ops@example.com"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedLookups(db, testAdminEmail, "Ops"))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

var errStatusLookup = errors.New("connection reset by peer")

// failStatusLookups makes by-id lookups on a status table fail. Preloads are left alone.
func failStatusLookups(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Query().After("gorm:query").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table && strings.Contains(tx.Statement.SQL.String(), "is_deleted") {
			tx.AddError(errStatusLookup)
		}
	})
	require.NoError(t, err)
}

func validRegistration() RegisterWarrantyInput {
	return RegisterWarrantyInput{
		CustomerName:   "Asha Rao",
		Email:          "Asha@Example.com ",
		Mobile:         "9876543210",
		Address:        "12 MG Road",
		City:           "Pune",
		Pincode:        "411001",
		ProductName:    "Air Purifier",
		ProductModel:   "AP-200",
		PurchaseDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PurchasePrice:  12999,
		PurchaseSource: "Online_Store",
		Invoice:        utils.StoredFile{URL: "https://cdn.example.com/invoices/a.pdf", FileID: "invoices/a.pdf"},
		WarrantyCard:   utils.StoredFile{URL: "https://cdn.example.com/cards/a.jpg", FileID: "cards/a.jpg"},
	}
}

func mustRegister(t *testing.T, db *gorm.DB) *models.Warranty {
	t.Helper()
	w, err := RegisterWarranty(context.Background(), db, validRegistration())
	require.NoError(t, err)
	return w
}

func mustClaim(t *testing.T, db *gorm.DB, warrantyID string) *models.Claim {
	t.Helper()
	c, err := CreateClaim(context.Background(), db, CreateClaimInput{
		WarrantyExternalID: warrantyID,
		DefectDescription:  "Fan stopped working",
		Photo:              utils.StoredFile{URL: "https://cdn.example.com/photos/p.jpg", FileID: "photos/p.jpg"},
	})
	require.NoError(t, err)
	return c
}

func claimStatusID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	s, err := claimStatusByName(db, name)
	require.NoError(t, err)
	return s.ID
}

func warrantyStatusID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	s, err := warrantyStatusByName(db, name)
	require.NoError(t, err)
	return s.ID
}

func adminID(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	a, err := FindActiveAdminByEmail(context.Background(), db, testAdminEmail)
	require.NoError(t, err)
	return a.ID
}

func strPtr(s string) *string { return &s }
