package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warrantyhub/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrOTPNotFound = errors.New("OTP not found or already used")
	ErrOTPExpired  = errors.New("OTP has expired")
	ErrOTPInvalid  = errors.New("invalid OTP")
)

// OTPManager issues and checks single-use codes.
type OTPManager struct {
	Store OTPStore
	TTL   time.Duration
	Cost  int // bcrypt cost
	Now   func() time.Time
}

// OTP is the process-wide manager, set up in main.
var OTP *OTPManager

// NewOTPManager returns a manager with sane defaults for zero values.
func NewOTPManager(store OTPStore, ttl time.Duration, cost int) *OTPManager {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &OTPManager{Store: store, TTL: ttl, Cost: cost, Now: time.Now}
}

// Send generates a code valid for TTL and hands it to dispatch. The record is
// kept for OTPRetention past expiry so Verify can still report it as expired.
// When dispatch fails the stored code is removed and the error is returned.
func (m *OTPManager) Send(ctx context.Context, key, purpose string, dispatch func(code string) error) error {
	key = NormalizeOTPKey(key)
	if key == "" {
		return errors.New("otp key is required")
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), m.Cost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	rec := models.OTP{
		Key:       key,
		CodeHash:  string(hash),
		ExpiresAt: m.Now().Add(m.TTL),
		Purpose:   purpose,
	}
	if err := m.Store.Save(ctx, rec, m.TTL+OTPRetention); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := dispatch(code); err != nil {
		if delErr := m.Store.Delete(ctx, key); delErr != nil {
			logrus.WithError(delErr).WithField("key", key).Warn("Failed to remove undelivered OTP")
		}
		return fmt.Errorf("deliver otp: %w", err)
	}

	return nil
}

// Verify checks code against the stored one. A wrong code keeps the stored
// code so the user can retry; success and expiry both consume it.
func (m *OTPManager) Verify(ctx context.Context, key, code string) error {
	key = NormalizeOTPKey(key)

	rec, err := m.Store.Get(ctx, key)
	if errors.Is(err, ErrOTPStoreMiss) {
		return ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}

	if rec.Expired(m.Now()) {
		_ = m.Store.Delete(ctx, key)
		return ErrOTPExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(strings.TrimSpace(code))) != nil {
		return ErrOTPInvalid
	}

	if err := m.Store.Delete(ctx, key); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	return nil
}
