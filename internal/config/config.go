package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Admin    AdminConfig
	Shipping ShippingConfig
	Jobs     JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Host string
	Port string
	From string
}

// AdminConfig carries the back-office credential. PasswordHash is a bcrypt
// hash, never the plain password.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// ShippingConfig holds the volumetric-weight estimate parameters per region.
type ShippingConfig struct {
	BaseTRY          decimal.Decimal
	PerDesiTRY       decimal.Decimal
	FreeThresholdTRY decimal.Decimal
	BaseUSD          decimal.Decimal
	PerDesiUSD       decimal.Decimal
	FreeThresholdUSD decimal.Decimal
}

// JobConfig holds cron expressions for the scheduled jobs.
type JobConfig struct {
	DeactivateExpiredCouponsCron string
	PurgeActivityLogCron         string
	ActivityRetentionDays        int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Artstore API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "artstore"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-me-in-production"),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnv("SMTP_PORT", "1025"),
			From: getEnv("SMTP_FROM", "noreply@artstore.dev"),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", "admin@artstore.dev"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Shipping: ShippingConfig{
			BaseTRY:          getEnvDecimal("SHIPPING_BASE_TRY", "50"),
			PerDesiTRY:       getEnvDecimal("SHIPPING_PER_DESI_TRY", "10"),
			FreeThresholdTRY: getEnvDecimal("SHIPPING_FREE_THRESHOLD_TRY", "2500"),
			BaseUSD:          getEnvDecimal("SHIPPING_BASE_USD", "12"),
			PerDesiUSD:       getEnvDecimal("SHIPPING_PER_DESI_USD", "4"),
			FreeThresholdUSD: getEnvDecimal("SHIPPING_FREE_THRESHOLD_USD", "200"),
		},
		Jobs: JobConfig{
			DeactivateExpiredCouponsCron: getEnv("JOB_DEACTIVATE_COUPONS_CRON", "0 3 * * *"),
			PurgeActivityLogCron:         getEnv("JOB_PURGE_ACTIVITY_CRON", "30 3 * * *"),
			ActivityRetentionDays:        getEnvInt("ACTIVITY_RETENTION_DAYS", 180),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		parsed, _ = decimal.NewFromString(defaultValue)
	}
	return parsed
}
