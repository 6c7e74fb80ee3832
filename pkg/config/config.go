package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// SSOT: every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Model and preprocessing artifacts
	Artifacts ArtifactConfig

	// External credit bureau
	Bureau BureauConfig

	// Logging
	LogLevel  string
	LogFormat string

	// History retention
	HistoryRetentionDays int
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL     string
	Enabled bool

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ArtifactConfig holds paths to the fitted artifacts loaded at startup.
// The schema CSV is the single source of truth for feature names and order;
// the imputer and scaler are optional (the pipeline degrades without them).
type ArtifactConfig struct {
	SchemaPath  string
	MediansPath string
	ModelPath   string
	ImputerPath string
	ScalerPath  string
}

// BureauConfig holds external credit bureau API configuration.
type BureauConfig struct {
	BaseURL        string
	APIKey         string
	Enabled        bool
	RequestsPerSec int
}

// Load reads configuration from environment variables.
// SSOT: this is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Enabled:         getEnvAsBool("DATABASE_ENABLED", false),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// Artifacts
		Artifacts: ArtifactConfig{
			SchemaPath:  getEnv("SCHEMA_PATH", "data/features/feature_names.csv"),
			MediansPath: getEnv("MEDIANS_PATH", "data/processed/feature_medians.json"),
			ModelPath:   getEnv("MODEL_PATH", "models/model.json"),
			ImputerPath: getEnv("IMPUTER_PATH", "models/imputer.json"),
			ScalerPath:  getEnv("SCALER_PATH", "models/scaler.json"),
		},

		// Bureau
		Bureau: BureauConfig{
			BaseURL:        getEnv("BUREAU_BASE_URL", ""),
			APIKey:         getEnv("BUREAU_API_KEY", ""),
			Enabled:        getEnvAsBool("BUREAU_ENABLED", false),
			RequestsPerSec: getEnvAsInt("BUREAU_REQUESTS_PER_SEC", 5),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// History
		HistoryRetentionDays: getEnvAsInt("HISTORY_RETENTION_DAYS", 90),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Artifacts.SchemaPath == "" {
		return fmt.Errorf("SCHEMA_PATH is required")
	}
	if c.Artifacts.ModelPath == "" {
		return fmt.Errorf("MODEL_PATH is required")
	}

	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when DATABASE_ENABLED=true")
	}

	if c.Bureau.Enabled && c.Bureau.BaseURL == "" {
		return fmt.Errorf("BUREAU_BASE_URL is required when BUREAU_ENABLED=true")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
