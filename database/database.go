package database

import (
	"fmt"
	"os"
	"strings"
	"time"

	"warrantyhub/config"
	"warrantyhub/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, migrates it and seeds the lookup tables.
func ConnectDb() {
	cfg := config.AppConfig

	db, err := Open(cfg.DBDriver, BuildDSN(cfg))
	if err != nil {
		logrus.Fatalf("Failed to connect to %s: %v", cfg.DBDriver, err)
		os.Exit(2)
	}

	if err := Migrate(db); err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}

	if err := SeedLookups(db, cfg.AdminEmail, cfg.AdminName); err != nil {
		logrus.Fatalf("Seeding lookup tables failed: %v", err)
	}

	Database = DbInstance{Db: db}
}

// BuildDSN builds the driver specific connection string.
func BuildDSN(cfg *config.Config) string {
	switch cfg.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	case "sqlite":
		return cfg.DBName
	default:
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)
	}
}

// Open connects to the database with the named driver and sets up pooling.
func Open(driver, dsn string) (*gorm.DB, error) {
	driver = strings.ToLower(driver)

	var dialector gorm.Dialector
	switch driver {
	case "postgres", "postgresql", "":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if driver == "sqlite" {
		// a single connection keeps an in-memory database alive and avoids SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	logrus.Info("Running Migrations...")

	err := db.AutoMigrate(
		&models.WarrantyStatus{},
		&models.ClaimStatus{},
		&models.Admin{},
		&models.Warranty{},
		&models.Claim{},
		&models.ClaimStatusHistory{},
		&models.LoginTracking{},
	)
	if err != nil {
		return err
	}

	logrus.Info("Migrations completed successfully.")
	return nil
}
