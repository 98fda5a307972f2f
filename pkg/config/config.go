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
	// Runtime
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis (price history cache)
	Redis RedisConfig

	// External APIs
	NewsAPI  NewsAPIConfig
	SendGrid SendGridConfig

	// Mail
	MailSender    string
	MailRecipient string

	// Strategy file (weights, thresholds, universe)
	StrategyPath string

	// Scheduling
	AnalysisHour      int // daily analysis run hour (local time)
	AnalysisMinute    int
	PerformanceHour   int // daily performance check hour
	PerformanceMinute int

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

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

// NewsAPIConfig holds NewsAPI configuration. When the key is empty the
// sentiment analyzer falls back to headline scraping.
type NewsAPIConfig struct {
	APIKey  string
	BaseURL string
}

// SendGridConfig holds SendGrid mail API configuration.
type SendGridConfig struct {
	APIKey  string
	BaseURL string
}

// Load reads configuration from environment variables.
// SSOT: this is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		NewsAPI: NewsAPIConfig{
			APIKey:  getEnv("NEWS_API_KEY", ""),
			BaseURL: getEnv("NEWS_API_BASE_URL", "https://newsapi.org/v2"),
		},

		SendGrid: SendGridConfig{
			APIKey:  getEnv("SENDGRID_API_KEY", ""),
			BaseURL: getEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com/v3"),
		},

		MailSender:    getEnv("MAIL_SENDER", ""),
		MailRecipient: getEnv("MAIL_RECIPIENT", ""),

		StrategyPath: getEnv("STRATEGY_PATH", "config/strategy/borsa_v1.yaml"),

		AnalysisHour:      getEnvAsInt("DAILY_RUN_HOUR", 9),
		AnalysisMinute:    getEnvAsInt("DAILY_RUN_MINUTE", 30),
		PerformanceHour:   getEnvAsInt("PERFORMANCE_CHECK_HOUR", 18),
		PerformanceMinute: getEnvAsInt("PERFORMANCE_CHECK_MINUTE", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are consistent.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.AnalysisHour < 0 || c.AnalysisHour > 23 {
		return fmt.Errorf("DAILY_RUN_HOUR must be in [0,23]")
	}
	if c.AnalysisMinute < 0 || c.AnalysisMinute > 59 {
		return fmt.Errorf("DAILY_RUN_MINUTE must be in [0,59]")
	}

	return nil
}

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
