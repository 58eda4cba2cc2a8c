package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warrantyhub/config"
	"warrantyhub/database"
	"warrantyhub/models"
	"warrantyhub/routers"
	"warrantyhub/services"
	"warrantyhub/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	database.ConnectDb()

	storage, err := utils.NewFileStorage(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("File storage setup failed: %v", err)
	}
	utils.Storage = storage

	var otpStore utils.OTPStore = utils.NewMemoryOTPStore()
	if cfg.RedisAddr != "" {
		redisStore, err := utils.NewRedisOTPStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logrus.Fatalf("Redis connection failed: %v", err)
		}
		defer redisStore.Close()
		otpStore = redisStore
	} else {
		logrus.Warn("REDIS_ADDR not set, OTPs are kept in process memory")
	}
	utils.OTP = utils.NewOTPManager(otpStore, time.Duration(cfg.OTPTTLMinutes)*time.Minute, cfg.SaltRound)

	utils.Email = utils.NewMailer(cfg)
	utils.SMS = utils.NewSMSSender(cfg)

	scheduler := utils.InitializeSchedulers(cfg, otpStore, func(ctx context.Context) (int64, error) {
		return services.StaleClaimCount(ctx, database.Database.Db, models.ClaimStatusUnderReview, services.StaleClaimAge)
	})
	defer scheduler.Stop()

	app := routers.NewApp(cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logrus.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logrus.WithError(err).Error("Server shutdown failed")
		}
	}()

	logrus.Infof("Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Fatal(err)
	}
}
