package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("JWT_EXPIRY_HOURS", "12")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ADMIN_EMAIL", " Ops@Example.com")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")
	t.Setenv("SCHEDULER_TZ", "")

	prev := AppConfig
	t.Cleanup(func() { AppConfig = prev })

	LoadConfig()
	require.NotNil(t, AppConfig)

	assert.Equal(t, "mysql", AppConfig.DBDriver)
	assert.Equal(t, 12, AppConfig.JWTExpiryHours)
	assert.True(t, AppConfig.CookieSecure)
	assert.Equal(t, "ops@example.com", AppConfig.AdminEmail)
	assert.Equal(t, 25, AppConfig.MaxUploadMB)
	assert.Equal(t, "Asia/Kolkata", AppConfig.SchedulerTZ)
	assert.False(t, AppConfig.IsProduction())
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "test", cfg.AppEnv)
	assert.Equal(t, "UTC", cfg.SchedulerTZ)
	assert.Positive(t, cfg.MaxUploadMB)
}
