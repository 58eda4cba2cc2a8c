package services

import (
	"context"
	"testing"

	"warrantyhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededStatuses(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	ws, err := ListWarrantyStatuses(ctx, db)
	require.NoError(t, err)
	assert.Len(t, ws, 4)

	cs, err := ListClaimStatuses(ctx, db)
	require.NoError(t, err)
	assert.Len(t, cs, 6)
}

func TestCreateClaimStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s, err := CreateClaimStatus(ctx, db, StatusInput{Name: "  Awaiting_Parts ", Description: "Waiting on spares"})
	require.NoError(t, err)
	assert.Equal(t, "awaiting_parts", s.Name)

	_, err = CreateClaimStatus(ctx, db, StatusInput{Name: "AWAITING_PARTS"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = CreateClaimStatus(ctx, db, StatusInput{Name: " "})
	assert.ErrorIs(t, err, ErrValidation)

	// deleted names can be reused
	require.NoError(t, DeleteClaimStatus(ctx, db, s.ID))
	revived, err := CreateClaimStatus(ctx, db, StatusInput{Name: "awaiting_parts", Description: "Back again"})
	require.NoError(t, err)
	assert.Equal(t, s.ID, revived.ID)
	assert.False(t, revived.IsDeleted)
}

func TestDeleteReservedStatuses(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := DeleteWarrantyStatus(ctx, db, warrantyStatusID(t, db, models.WarrantyStatusClaimed))
	assert.ErrorIs(t, err, ErrInUse)

	err = DeleteClaimStatus(ctx, db, claimStatusID(t, db, models.ClaimStatusUnderReview))
	assert.ErrorIs(t, err, ErrInUse)

	_, err = UpdateClaimStatusRow(ctx, db, claimStatusID(t, db, models.ClaimStatusApproved), StatusInput{Name: "ok"})
	assert.ErrorIs(t, err, ErrInUse)

	// reserved rows may still get a new description
	row, err := UpdateWarrantyStatusRow(ctx, db, warrantyStatusID(t, db, models.WarrantyStatusRegistered), StatusInput{Name: "registered", Description: "Live"})
	require.NoError(t, err)
	assert.Equal(t, "Live", row.Description)
}

func TestDeleteStatusInUse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := mustRegister(t, db)
	c := mustClaim(t, db, w.ExternalID)

	voidID := warrantyStatusID(t, db, models.WarrantyStatusVoid)
	_, err := UpdateWarrantyStatus(ctx, db, w.ExternalID, voidID)
	require.NoError(t, err)
	assert.ErrorIs(t, DeleteWarrantyStatus(ctx, db, voidID), ErrInUse)

	rejectedID := claimStatusID(t, db, models.ClaimStatusRejected)
	_, err = UpdateClaimStatus(ctx, db, UpdateClaimStatusInput{ExternalID: c.ExternalID, StatusID: rejectedID})
	require.NoError(t, err)
	assert.ErrorIs(t, DeleteClaimStatus(ctx, db, rejectedID), ErrInUse)

	// once nothing points at it the row can go
	expiredID := warrantyStatusID(t, db, models.WarrantyStatusExpired)
	require.NoError(t, DeleteWarrantyStatus(ctx, db, expiredID))

	ws, err := ListWarrantyStatuses(ctx, db)
	require.NoError(t, err)
	for _, s := range ws {
		assert.NotEqual(t, models.WarrantyStatusExpired, s.Name)
	}

	_, err = UpdateWarrantyStatus(ctx, db, w.ExternalID, expiredID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteStatusHeldBySoftDeletedRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := mustRegister(t, db)
	c := mustClaim(t, db, w.ExternalID)

	voidID := warrantyStatusID(t, db, models.WarrantyStatusVoid)
	_, err := UpdateWarrantyStatus(ctx, db, w.ExternalID, voidID)
	require.NoError(t, err)
	require.NoError(t, SoftDeleteWarranty(ctx, db, w.ExternalID))
	assert.ErrorIs(t, DeleteWarrantyStatus(ctx, db, voidID), ErrInUse)

	rejectedID := claimStatusID(t, db, models.ClaimStatusRejected)
	_, err = UpdateClaimStatus(ctx, db, UpdateClaimStatusInput{ExternalID: c.ExternalID, StatusID: rejectedID})
	require.NoError(t, err)
	require.NoError(t, SoftDeleteClaim(ctx, db, c.ExternalID))
	assert.ErrorIs(t, DeleteClaimStatus(ctx, db, rejectedID), ErrInUse)
}

func TestDeleteClaimStatusInHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := mustRegister(t, db)
	c := mustClaim(t, db, w.ExternalID)

	rejectedID := claimStatusID(t, db, models.ClaimStatusRejected)
	_, err := UpdateClaimStatus(ctx, db, UpdateClaimStatusInput{ExternalID: c.ExternalID, StatusID: rejectedID})
	require.NoError(t, err)
	_, err = UpdateClaimStatus(ctx, db, UpdateClaimStatusInput{ExternalID: c.ExternalID, StatusID: claimStatusID(t, db, models.ClaimStatusCompleted)})
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteClaimStatus(ctx, db, rejectedID), ErrInUse)
}

func TestRenameStatusConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := UpdateWarrantyStatusRow(ctx, db, warrantyStatusID(t, db, models.WarrantyStatusVoid), StatusInput{Name: "expired"})
	assert.ErrorIs(t, err, ErrConflict)

	row, err := UpdateWarrantyStatusRow(ctx, db, warrantyStatusID(t, db, models.WarrantyStatusVoid), StatusInput{Name: "Cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", row.Name)

	_, err = UpdateClaimStatusRow(ctx, db, 999, StatusInput{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}
