package models

import "time"

// OTP is a pending one-time code. It lives in the OTP store, not in the database.
type OTP struct {
	Key       string    `json:"key"`               // normalized email or mobile
	CodeHash  string    `json:"code_hash"`         // bcrypt hash of the code
	ExpiresAt time.Time `json:"expires_at"`        // hard expiry, independent of store TTL
	Purpose   string    `json:"purpose,omitempty"` // e.g. "admin_login"
}

// Expired reports whether the code is past its expiry at t.
func (o OTP) Expired(t time.Time) bool {
	return t.After(o.ExpiresAt)
}
