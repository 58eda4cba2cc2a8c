package services

import (
	"strings"

	"gorm.io/gorm/clause"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Pagination describes a page of a list endpoint.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// Sort keys map to fixed columns. User input never reaches the ORDER BY text.
var (
	warrantySortColumns = map[string]string{
		"registration_date": "warranties.registration_date",
		"purchase_date":     "warranties.purchase_date",
		"purchase_price":    "warranties.purchase_price",
		"customer_name":     "warranties.customer_name",
		"external_id":       "warranties.external_id",
	}
	claimSortColumns = map[string]string{
		"claim_register_date": "claims.claim_register_date",
		"claim_result_date":   "claims.claim_result_date",
		"external_id":         "claims.external_id",
	}
)

func sortClause(columns map[string]string, fallback, sortBy, order string) (clause.OrderByColumn, error) {
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	if sortBy == "" {
		sortBy = fallback
	}
	col, ok := columns[sortBy]
	if !ok {
		return clause.OrderByColumn{}, &ValidationError{Fields: map[string]string{"sort_by": "Unsupported sort field: " + sortBy}}
	}

	desc := true
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return clause.OrderByColumn{}, &ValidationError{Fields: map[string]string{"order": "Order must be asc or desc"}}
	}

	return clause.OrderByColumn{Column: clause.Column{Name: col, Raw: true}, Desc: desc}, nil
}

// WarrantySortClause resolves a sort key and direction for the warranty list.
func WarrantySortClause(sortBy, order string) (clause.OrderByColumn, error) {
	return sortClause(warrantySortColumns, "registration_date", sortBy, order)
}

// ClaimSortClause resolves a sort key and direction for the claim list.
func ClaimSortClause(sortBy, order string) (clause.OrderByColumn, error) {
	return sortClause(claimSortColumns, "claim_register_date", sortBy, order)
}
