package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	Port   string
	AppEnv string

	LogLevel  string
	LogFormat string

	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTKey         string
	JWTExpiryHours int
	CookieSecure   bool
	SaltRound      int // bcrypt cost used for stored OTP codes

	OTPTTLMinutes int
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SendGridAPIKey  string
	EmailSender     string
	EmailSenderName string
	SMTPHost        string
	SMTPPort        string
	Password        string // SMTP Password

	SMSApiURL   string
	SMSApiKey   string
	SMSSenderID string

	StorageDriver    string // s3 or local
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3AccessKeyID    string
	S3SecretKey      string
	S3PublicBaseURL  string
	UploadDir        string
	MaxUploadMB      int
	PublicBaseURL    string
	TrackingURL      string
	CORSAllowOrigins string

	AdminEmail  string
	AdminName   string
	SchedulerTZ string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		AppEnv: getEnv("APP_ENV", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "warranty"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTKey:         getEnv("JWT_SECRET_KEY", "defaultSecret"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 7*24),
		CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		SaltRound:      getEnvInt("SALT_ROUND", 10),

		OTPTTLMinutes: getEnvInt("OTP_TTL_MINUTES", 10),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", ""),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "Warranty Desk"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		Password:        getEnv("SMTP_PASSWORD", ""),

		SMSApiURL:   getEnv("SMS_API_URL", ""),
		SMSApiKey:   getEnv("SMS_API_KEY", ""),
		SMSSenderID: getEnv("SMS_SENDER_ID", ""),

		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Region:         getEnv("S3_REGION", "ap-south-1"),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:    getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:      getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL:  getEnv("S3_PUBLIC_BASE_URL", ""),
		UploadDir:        getEnv("UPLOAD_DIR", "./public/uploads"),
		MaxUploadMB:      getEnvInt("MAX_UPLOAD_MB", 25),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		TrackingURL:      getEnv("TRACKING_URL", "http://localhost:3000/track"),
		CORSAllowOrigins: getEnv("CORS_ORIGINS", "*"),

		AdminEmail: strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
		AdminName:  getEnv("ADMIN_NAME", "Administrator"),

		SchedulerTZ: getEnv("SCHEDULER_TZ", "Asia/Kolkata"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		logrus.Warn("Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.EmailSender == "" {
		logrus.Warn("EMAIL_SENDER is empty. Customer notifications will only be logged.")
	}
}

// Default returns a configuration suitable for tests and local tooling.
func Default() *Config {
	return &Config{
		Port:           "3000",
		AppEnv:         "test",
		LogLevel:       "warn",
		LogFormat:      "text",
		DBDriver:       "sqlite",
		DBName:         "file::memory:?cache=shared",
		JWTKey:         "test-secret",
		JWTExpiryHours: 7 * 24,
		SaltRound:      4,
		OTPTTLMinutes:  10,
		StorageDriver:  "local",
		UploadDir:      os.TempDir(),
		MaxUploadMB:    25,
		PublicBaseURL:  "http://localhost:3000",
		TrackingURL:    "http://localhost:3000/track",
		AdminName:      "Administrator",
		SchedulerTZ:    "UTC",
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		logrus.Warnf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}
