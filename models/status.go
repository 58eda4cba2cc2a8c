package models

import "strings"

// Warranty status names the workflows depend on. Admins may add more rows.
const (
	WarrantyStatusRegistered = "registered"
	WarrantyStatusClaimed    = "claimed"
	WarrantyStatusExpired    = "expired"
	WarrantyStatusVoid       = "void"
)

// Claim status names the workflows depend on. Admins may add more rows.
const (
	ClaimStatusPending     = "pending"
	ClaimStatusUnderReview = "under_review"
	ClaimStatusApproved    = "approved"
	ClaimStatusRejected    = "rejected"
	ClaimStatusShipped     = "shipped"
	ClaimStatusCompleted   = "completed"
)

// StatusSet is a set of normalized status names.
type StatusSet map[string]struct{}

func newStatusSet(names ...string) StatusSet {
	s := make(StatusSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name (case-insensitive) is in the set.
func (s StatusSet) Has(name string) bool {
	_, ok := s[NormalizeStatusName(name)]
	return ok
}

var (
	// ActiveClaimStatuses block a new claim on the same warranty.
	ActiveClaimStatuses = newStatusSet(ClaimStatusPending, ClaimStatusUnderReview)

	// WarrantyCascadeClaimStatuses promote the parent warranty to "claimed".
	WarrantyCascadeClaimStatuses = newStatusSet(ClaimStatusApproved, ClaimStatusShipped)

	// ReservedWarrantyStatuses and ReservedClaimStatuses are looked up by name
	// at runtime and cannot be renamed or removed from the lookup tables.
	ReservedWarrantyStatuses = newStatusSet(WarrantyStatusRegistered, WarrantyStatusClaimed)
	ReservedClaimStatuses    = newStatusSet(ClaimStatusPending, ClaimStatusUnderReview, ClaimStatusApproved, ClaimStatusShipped)
)

// IsActiveClaimStatus reports whether a claim in this status blocks new claims.
func IsActiveClaimStatus(name string) bool {
	return ActiveClaimStatuses.Has(name)
}

// CascadesToWarranty reports whether moving a claim into this status marks the warranty as claimed.
func CascadesToWarranty(name string) bool {
	return WarrantyCascadeClaimStatuses.Has(name)
}

// NormalizeStatusName trims and lowercases a lookup-table name.
func NormalizeStatusName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
