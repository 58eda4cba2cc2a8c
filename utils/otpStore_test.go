package utils

import (
	"context"
	"testing"
	"time"

	"warrantyhub/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestRedisOTPStore(t *testing.T) (*RedisOTPStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisOTPStore(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisOTPStoreRoundTrip(t *testing.T) {
	store, mr := newTestRedisOTPStore(t)
	ctx := context.Background()

	expires := time.Date(2026, 1, 10, 9, 10, 0, 0, time.UTC)
	rec := models.OTP{Key: "ops@example.com", CodeHash: "hash", ExpiresAt: expires, Purpose: "admin_login"}
	require.NoError(t, store.Save(ctx, rec, 10*time.Minute))

	assert.True(t, mr.Exists("otp:ops@example.com"))
	assert.Equal(t, 10*time.Minute, mr.TTL("otp:ops@example.com"))

	got, err := store.Get(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.CodeHash)
	assert.Equal(t, "admin_login", got.Purpose)
	assert.True(t, expires.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "ops@example.com"))
	_, err = store.Get(ctx, "ops@example.com")
	assert.ErrorIs(t, err, ErrOTPStoreMiss)
}

func TestRedisOTPStoreMissAndCorruptValue(t *testing.T) {
	store, mr := newTestRedisOTPStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrOTPStoreMiss)

	require.NoError(t, mr.Set("otp:broken@example.com", "not-json"))
	_, err = store.Get(ctx, "broken@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOTPStoreMiss)

	removed, err := store.Sweep(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRedisOTPStoreKeyExpires(t *testing.T) {
	store, mr := newTestRedisOTPStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.OTP{Key: "a@b.co", CodeHash: "x", ExpiresAt: time.Now()}, time.Minute))
	mr.FastForward(time.Minute + time.Second)

	_, err := store.Get(ctx, "a@b.co")
	assert.ErrorIs(t, err, ErrOTPStoreMiss)
}

func TestOTPWithRedisReportsExpiry(t *testing.T) {
	store, mr := newTestRedisOTPStore(t)
	ctx := context.Background()

	clock := &fakeClock{t: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	m := NewOTPManager(store, 10*time.Minute, bcrypt.MinCost)
	m.Now = clock.now

	code := sendAndCapture(t, m, "Ops@Example.com")
	assert.Equal(t, 10*time.Minute+OTPRetention, mr.TTL("otp:ops@example.com"))

	clock.t = clock.t.Add(11 * time.Minute)
	mr.FastForward(11 * time.Minute)

	assert.ErrorIs(t, m.Verify(ctx, "ops@example.com", code), ErrOTPExpired)
	assert.False(t, mr.Exists("otp:ops@example.com"), "expired code is consumed")
}
