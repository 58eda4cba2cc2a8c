package services

import (
	"context"
	"time"

	"warrantyhub/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Dashboard holds the admin overview counters.
type Dashboard struct {
	TotalWarranties     int64            `json:"total_warranties"`
	WarrantiesThisMonth int64            `json:"warranties_this_month"`
	TotalClaims         int64            `json:"total_claims"`
	ClaimsThisWeek      int64            `json:"claims_this_week"`
	ActiveClaims        int64            `json:"active_claims"`
	ClaimsByStatus      map[string]int64 `json:"claims_by_status"`
	WarrantiesByStatus  map[string]int64 `json:"warranties_by_status"`
	StaleUnderReview    int64            `json:"stale_under_review"`
}

// StaleClaimAge is how long a claim may wait in review before it is reported.
const StaleClaimAge = 7 * 24 * time.Hour

type statusCount struct {
	Name  string
	Total int64
}

// GetDashboard computes the overview counters relative to t.
func GetDashboard(ctx context.Context, db *gorm.DB, t time.Time) (*Dashboard, error) {
	tx := db.WithContext(ctx)
	clock := now.With(t.UTC())
	d := &Dashboard{
		ClaimsByStatus:     map[string]int64{},
		WarrantiesByStatus: map[string]int64{},
	}

	liveWarranties := tx.Model(&models.Warranty{}).Where("is_deleted = ?", false).Session(&gorm.Session{})
	if err := liveWarranties.Count(&d.TotalWarranties).Error; err != nil {
		return nil, err
	}
	if err := liveWarranties.Where("registration_date >= ?", clock.BeginningOfMonth()).
		Count(&d.WarrantiesThisMonth).Error; err != nil {
		return nil, err
	}

	liveClaims := tx.Model(&models.Claim{}).Where("is_deleted = ?", false).Session(&gorm.Session{})
	if err := liveClaims.Count(&d.TotalClaims).Error; err != nil {
		return nil, err
	}
	if err := liveClaims.Where("claim_register_date >= ?", clock.BeginningOfWeek()).
		Count(&d.ClaimsThisWeek).Error; err != nil {
		return nil, err
	}

	var claimCounts []statusCount
	err := tx.Model(&models.Claim{}).
		Select("claim_statuses.name AS name, COUNT(*) AS total").
		Joins("JOIN claim_statuses ON claim_statuses.id = claims.claim_status_id").
		Where("claims.is_deleted = ?", false).
		Group("claim_statuses.name").
		Scan(&claimCounts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range claimCounts {
		d.ClaimsByStatus[c.Name] = c.Total
		if models.IsActiveClaimStatus(c.Name) {
			d.ActiveClaims += c.Total
		}
	}

	var warrantyCounts []statusCount
	err = tx.Model(&models.Warranty{}).
		Select("warranty_statuses.name AS name, COUNT(*) AS total").
		Joins("JOIN warranty_statuses ON warranty_statuses.id = warranties.warranty_status_id").
		Where("warranties.is_deleted = ?", false).
		Group("warranty_statuses.name").
		Scan(&warrantyCounts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range warrantyCounts {
		d.WarrantiesByStatus[c.Name] = c.Total
	}

	d.StaleUnderReview, err = StaleClaimCount(ctx, db, models.ClaimStatusUnderReview, StaleClaimAge)
	if err != nil {
		return nil, err
	}
	return d, nil
}
