// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment    string
	Server         ServerConfig
	Database       DatabaseConfig
	Recommendation RecommendationConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	URL          string // full DSN; overrides the discrete fields when set
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type RecommendationConfig struct {
	DefaultLimit    int // results returned when the caller does not ask for a size
	MaxLimit        int // hard upper bound on requested result size
	ViewHistoryDays int // affinity window: only views newer than this feed category derivation
	TopCategories   int // number of affinity categories retained per user
	CategoryWeight  int // multiplier blending category affinity over product popularity
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "amazon_clone"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		Recommendation: RecommendationConfig{
			DefaultLimit:    getEnvAsInt("MAX_RECOMMENDATIONS", 10),
			MaxLimit:        getEnvAsInt("MAX_RECOMMENDATIONS_LIMIT", 50),
			ViewHistoryDays: getEnvAsInt("VIEW_HISTORY_DAYS", 30),
			TopCategories:   getEnvAsInt("TOP_CATEGORIES", 5),
			CategoryWeight:  getEnvAsInt("CATEGORY_WEIGHT", 10),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Database.Password == "" && c.Database.URL == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Recommendation.MaxLimit < 1 {
		return fmt.Errorf("MAX_RECOMMENDATIONS_LIMIT must be positive")
	}

	if c.Recommendation.DefaultLimit < 1 || c.Recommendation.DefaultLimit > c.Recommendation.MaxLimit {
		return fmt.Errorf("MAX_RECOMMENDATIONS must be between 1 and %d", c.Recommendation.MaxLimit)
	}

	if c.Recommendation.ViewHistoryDays < 1 {
		return fmt.Errorf("VIEW_HISTORY_DAYS must be positive")
	}

	if c.Recommendation.TopCategories < 1 {
		return fmt.Errorf("TOP_CATEGORIES must be positive")
	}

	if c.Recommendation.CategoryWeight < 1 {
		return fmt.Errorf("CATEGORY_WEIGHT must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
