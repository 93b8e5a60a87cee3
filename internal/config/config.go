package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Midtrans    MidtransConfig
	Platform    PlatformConfig
	Admin       AdminConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MidtransConfig struct {
	ServerKey  string
	ClientKey  string
	SnapURL    string
	Production bool
}

type PlatformConfig struct {
	// FeeRate is the platform's cut of each transaction's gross amount
	FeeRate float64
	// MinPayoutAmount is the smallest withdrawal a merchant may request
	MinPayoutAmount int64
	Currency        string
}

type AdminConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PLATFORM_FEE_RATE", "0.05")
	viper.SetDefault("MIN_PAYOUT_AMOUNT", "50000")
	viper.SetDefault("CURRENCY", "IDR")
	viper.SetDefault("ADMIN_TOKEN_TTL", "12h")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	feeRate, err := strconv.ParseFloat(getEnvOrViper("PLATFORM_FEE_RATE", "0.05"), 64)
	if err != nil || feeRate < 0 || feeRate >= 1 {
		return nil, fmt.Errorf("invalid PLATFORM_FEE_RATE: %q", getEnvOrViper("PLATFORM_FEE_RATE", ""))
	}

	minPayout, err := strconv.ParseInt(getEnvOrViper("MIN_PAYOUT_AMOUNT", "50000"), 10, 64)
	if err != nil || minPayout < 0 {
		return nil, fmt.Errorf("invalid MIN_PAYOUT_AMOUNT: %q", getEnvOrViper("MIN_PAYOUT_AMOUNT", ""))
	}

	tokenTTL, err := time.ParseDuration(getEnvOrViper("ADMIN_TOKEN_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TOKEN_TTL: %q", getEnvOrViper("ADMIN_TOKEN_TTL", ""))
	}

	environment := getEnvOrViper("ENVIRONMENT", "development")

	snapURL := getEnvOrViper("MIDTRANS_SNAP_URL", "")
	production := environment == "production"
	if snapURL == "" {
		snapURL = "https://app.sandbox.midtrans.com/snap/v1"
		if production {
			snapURL = "https://app.midtrans.com/snap/v1"
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: environment,
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "rupavo"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Midtrans: MidtransConfig{
			ServerKey:  getEnvOrViper("MIDTRANS_SERVER_KEY", ""),
			ClientKey:  getEnvOrViper("MIDTRANS_CLIENT_KEY", ""),
			SnapURL:    snapURL,
			Production: production,
		},
		Platform: PlatformConfig{
			FeeRate:         feeRate,
			MinPayoutAmount: minPayout,
			Currency:        getEnvOrViper("CURRENCY", "IDR"),
		},
		Admin: AdminConfig{
			JWTSecret: getEnvOrViper("ADMIN_JWT_SECRET", ""),
			TokenTTL:  tokenTTL,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Midtrans.ServerKey == "" {
		return nil, fmt.Errorf("MIDTRANS_SERVER_KEY is required")
	}
	if cfg.Admin.JWTSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
