package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	WarrantyIDPrefix = "IKG-"
	ClaimIDPrefix    = "CLM-"

	base36Digits = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// GenerateOTP generates a 6-digit numeric OTP
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateWarrantyExternalID returns "IKG-" followed by 12 uppercase hex characters.
func GenerateWarrantyExternalID() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate warranty id: %w", err)
	}
	return WarrantyIDPrefix + strings.ToUpper(hex.EncodeToString(b)), nil
}

// GenerateClaimExternalID returns "CLM-" + base36 millisecond timestamp + 5 random base36 chars.
func GenerateClaimExternalID(now time.Time) (string, error) {
	suffix := make([]byte, 5)
	max := big.NewInt(int64(len(base36Digits)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate claim id: %w", err)
		}
		suffix[i] = base36Digits[n.Int64()]
	}
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	return ClaimIDPrefix + strings.ToUpper(ts+string(suffix)), nil
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeOTPKey lowercases emails and trims mobiles so both map to a stable key.
func NormalizeOTPKey(emailOrMobile string) string {
	key := strings.TrimSpace(emailOrMobile)
	if strings.Contains(key, "@") {
		return strings.ToLower(key)
	}
	return key
}
