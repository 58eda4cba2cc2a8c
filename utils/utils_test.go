package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWarrantyExternalIDFormat(t *testing.T) {
	re := regexp.MustCompile(`^IKG-[0-9A-F]{12}$`)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id, err := GenerateWarrantyExternalID()
		require.NoError(t, err)
		assert.Regexp(t, re, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateClaimExternalID(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	id, err := GenerateClaimExternalID(now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, ClaimIDPrefix))
	assert.Regexp(t, `^CLM-[0-9A-Z]+$`, id)
	// timestamp part is the base36 millisecond clock
	assert.True(t, strings.HasPrefix(id, "CLM-LOYW3V28"), id)
	assert.Len(t, id, len("CLM-LOYW3V28")+5)
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}

func TestNormalizeOTPKey(t *testing.T) {
	assert.Equal(t, "admin@example.com", NormalizeOTPKey("  Admin@Example.COM "))
	assert.Equal(t, "9876543210", NormalizeOTPKey(" 9876543210 "))
}
