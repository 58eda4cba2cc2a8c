package utils

import (
	"context"
	"time"

	"warrantyhub/config"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StaleClaimCounter reports how many claims have been waiting in review too long.
type StaleClaimCounter func(ctx context.Context) (int64, error)

func logScheduler(message string) {
	logrus.WithField("component", "scheduler").Info(message)
}

// sweepOTPs drops expired codes from stores that do not expire keys on their own.
func sweepOTPs(store OTPStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := store.Sweep(ctx, time.Now())
	if err != nil {
		logrus.WithError(err).Warn("OTP sweep failed")
		return
	}
	if n > 0 {
		logrus.WithField("removed", n).Debug("Expired OTPs removed")
	}
}

// sendStaleClaimDigest emails the bootstrap admin when claims sit in review.
func sendStaleClaimDigest(count StaleClaimCounter, adminEmail string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := count(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to count stale claims")
		return
	}
	if n == 0 || adminEmail == "" {
		return
	}

	NotifyBestEffort(NotifyAdminDigest, logrus.Fields{"stale_claims": n}, func(ctx context.Context) error {
		return SendStaleClaimDigest(ctx, adminEmail, n)
	})
}

// StartOTPSweepScheduler runs every minute.
func StartOTPSweepScheduler(c *cron.Cron, store OTPStore) {
	c.AddFunc("* * * * *", func() {
		sweepOTPs(store)
	})
	logScheduler("OTP sweep scheduler started - runs every minute")
}

// StartClaimDigestScheduler runs daily at 9 AM scheduler time.
func StartClaimDigestScheduler(c *cron.Cron, count StaleClaimCounter, adminEmail string) {
	c.AddFunc("0 9 * * *", func() {
		sendStaleClaimDigest(count, adminEmail)
	})
	logScheduler("Claim digest scheduler started - runs daily at 9 AM")
}

// InitializeSchedulers starts the background jobs and returns the running cron.
func InitializeSchedulers(cfg *config.Config, store OTPStore, count StaleClaimCounter) *cron.Cron {
	logScheduler("Initializing schedulers...")

	loc, err := time.LoadLocation(cfg.SchedulerTZ)
	if err != nil {
		logrus.WithError(err).Warnf("Unknown SCHEDULER_TZ %q, using UTC", cfg.SchedulerTZ)
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))

	StartOTPSweepScheduler(c, store)
	if count != nil {
		StartClaimDigestScheduler(c, count, cfg.AdminEmail)
	}

	c.Start()

	logScheduler("All schedulers initialized successfully")
	return c
}
