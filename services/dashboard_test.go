package services

import (
	"context"
	"testing"
	"time"

	"warrantyhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	w1 := mustRegister(t, db)
	w2 := mustRegister(t, db)
	mustRegister(t, db)
	mustClaim(t, db, w1.ExternalID)
	c2 := mustClaim(t, db, w2.ExternalID)

	_, err := UpdateClaimStatus(ctx, db, UpdateClaimStatusInput{ExternalID: c2.ExternalID, StatusID: claimStatusID(t, db, models.ClaimStatusApproved)})
	require.NoError(t, err)

	d, err := GetDashboard(ctx, db, time.Now())
	require.NoError(t, err)

	assert.EqualValues(t, 3, d.TotalWarranties)
	assert.EqualValues(t, 3, d.WarrantiesThisMonth)
	assert.EqualValues(t, 2, d.TotalClaims)
	assert.EqualValues(t, 2, d.ClaimsThisWeek)
	assert.EqualValues(t, 1, d.ActiveClaims)
	assert.EqualValues(t, 1, d.ClaimsByStatus[models.ClaimStatusUnderReview])
	assert.EqualValues(t, 1, d.ClaimsByStatus[models.ClaimStatusApproved])
	assert.EqualValues(t, 2, d.WarrantiesByStatus[models.WarrantyStatusRegistered])
	assert.EqualValues(t, 1, d.WarrantiesByStatus[models.WarrantyStatusClaimed])
	assert.Zero(t, d.StaleUnderReview)

	// next year nothing is recent
	d, err = GetDashboard(ctx, db, time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 3, d.TotalWarranties)
	assert.EqualValues(t, 0, d.WarrantiesThisMonth)
	assert.EqualValues(t, 0, d.ClaimsThisWeek)
}
