package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the scoring system.
// Every environment variable is read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// Scoring
	Scoring ScoringConfig

	// Sector comparison
	Comparator ComparatorConfig

	// Cache
	Cache CacheConfig

	// Redis (optional cache backend)
	Redis RedisConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// ScoringConfig holds the category weights and batch settings.
type ScoringConfig struct {
	ValuationWeight       float64
	ProfitabilityWeight   float64
	GrowthWeight          float64
	FinancialHealthWeight float64
	EfficiencyWeight      float64

	BatchConcurrency int
}

// ComparatorConfig holds sector comparison settings.
type ComparatorConfig struct {
	MinSectorSize int
	OutlierMethod string // iqr, zscore
}

// CacheConfig holds cache settings for the sector comparator.
type CacheConfig struct {
	Backend string // memory, redis
	TTL     time.Duration
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Scoring: ScoringConfig{
			ValuationWeight:       getEnvAsFloat("WEIGHT_VALUATION", 0.25),
			ProfitabilityWeight:   getEnvAsFloat("WEIGHT_PROFITABILITY", 0.30),
			GrowthWeight:          getEnvAsFloat("WEIGHT_GROWTH", 0.20),
			FinancialHealthWeight: getEnvAsFloat("WEIGHT_FINANCIAL_HEALTH", 0.15),
			EfficiencyWeight:      getEnvAsFloat("WEIGHT_EFFICIENCY", 0.10),
			BatchConcurrency:      getEnvAsInt("BATCH_CONCURRENCY", 8),
		},

		Comparator: ComparatorConfig{
			MinSectorSize: getEnvAsInt("MIN_SECTOR_SIZE", 3),
			OutlierMethod: getEnv("OUTLIER_METHOD", "iqr"),
		},

		Cache: CacheConfig{
			Backend: getEnv("CACHE_BACKEND", "memory"),
			TTL:     getEnvAsDuration("CACHE_TTL", "1h"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Comparator.MinSectorSize < 1 {
		return fmt.Errorf("MIN_SECTOR_SIZE must be >= 1")
	}
	if c.Comparator.OutlierMethod != "iqr" && c.Comparator.OutlierMethod != "zscore" {
		return fmt.Errorf("OUTLIER_METHOD must be iqr or zscore")
	}

	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("CACHE_BACKEND must be memory or redis")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be > 0")
	}

	if c.Scoring.BatchConcurrency < 1 {
		return fmt.Errorf("BATCH_CONCURRENCY must be >= 1")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
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
