package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrAPIURLMissing is returned when the seminar store base URL is not configured.
var ErrAPIURLMissing = errors.New("SEMINAR_API_URL is not defined in the environment variables")

// Config holds application configuration loaded from environment.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Dashboard DashboardConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	AWS       AWSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// StoreConfig points at the remote seminar store.
type StoreConfig struct {
	BaseURL    string
	TimeoutSec int
}

// Timeout returns the per-request timeout for store calls.
func (c StoreConfig) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// DashboardConfig holds dashboard presentation settings.
type DashboardConfig struct {
	PageSize int
}

// RedisConfig holds Redis connection settings. An empty Addr keeps the
// last-seminar-id counter in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig holds the PostgreSQL DSN of the activity log. Empty disables the log.
type DatabaseConfig struct {
	URL string
}

// AWSConfig holds AWS credentials and the photo bucket. An empty bucket disables uploads.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PhotosBucket    string
	PhotoMaxMB      int
}

// Load reads configuration from environment, with optional .env file.
// It fails when the seminar store URL is missing.
func Load() (*Config, error) {
	_ = godotenv.Load()      // .env
	_ = godotenv.Load("env") // env (no leading dot)

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Store: StoreConfig{
			BaseURL:    strings.TrimSpace(os.Getenv("SEMINAR_API_URL")),
			TimeoutSec: getEnvInt("SEMINAR_API_TIMEOUT_SEC", 10),
		},
		Dashboard: DashboardConfig{
			PageSize: getEnvInt("DASHBOARD_PAGE_SIZE", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			PhotosBucket:    getEnv("AWS_S3_PHOTOS_BUCKET", ""),
			PhotoMaxMB:      getEnvInt("PHOTO_MAX_MB", 5),
		},
	}
	if cfg.Store.BaseURL == "" {
		return nil, ErrAPIURLMissing
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
