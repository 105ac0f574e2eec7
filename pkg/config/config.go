package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: every environment variable is read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Simulation defaults
	Simulation SimulationConfig

	// Metrics batch
	Metrics MetricsConfig

	// Scheduler
	Scheduler SchedulerConfig

	// API
	API APIConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool

	PoolSize    int
	DialTimeout time.Duration

	// PriceCacheTTL is how long a fetched price series stays cached
	PriceCacheTTL time.Duration
	// PriceCacheSchedule is when cached price series are invalidated
	PriceCacheSchedule string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// SimulationConfig holds defaults for the trading simulator
type SimulationConfig struct {
	InitialCash  float64
	StrategyFile string // optional YAML file with strategy parameters
}

// MetricsConfig holds the scheduled metrics batch settings
type MetricsConfig struct {
	Schedule string   // cron expression (with seconds)
	Symbols  []string // symbols refreshed on each run
}

// SchedulerConfig holds job run bounds
type SchedulerConfig struct {
	JobTimeout   time.Duration // zero disables the bound
	HistoryLimit int           // results kept per job
}

// APIConfig holds HTTP API limits
type APIConfig struct {
	RateLimit float64 // requests per second
	RateBurst int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: the only function that calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:          getEnv("REDIS_HOST", "localhost"),
			Port:          getEnv("REDIS_PORT", "6379"),
			Password:      getEnv("REDIS_PASSWORD", ""),
			DB:            getEnvAsInt("REDIS_DB", 0),
			Enabled:       getEnvAsBool("REDIS_ENABLED", false),
			PoolSize:      getEnvAsInt("REDIS_POOL_SIZE", 10),
			DialTimeout:   getEnvAsDuration("REDIS_DIAL_TIMEOUT", "5s"),
			PriceCacheTTL: getEnvAsDuration("PRICE_CACHE_TTL", "10m"),

			PriceCacheSchedule: getEnv("PRICE_CACHE_SCHEDULE", "0 0 6 * * MON-FRI"),
		},

		Simulation: SimulationConfig{
			InitialCash:  getEnvAsFloat("INITIAL_CASH", 10000),
			StrategyFile: getEnv("STRATEGY_FILE", ""),
		},

		Metrics: MetricsConfig{
			Schedule: getEnv("METRICS_SCHEDULE", "0 30 18 * * MON-FRI"),
			Symbols:  getEnvAsList("METRICS_SYMBOLS"),
		},

		Scheduler: SchedulerConfig{
			JobTimeout:   getEnvAsDuration("SCHEDULER_JOB_TIMEOUT", "30m"),
			HistoryLimit: getEnvAsInt("SCHEDULER_HISTORY_LIMIT", 100),
		},

		API: APIConfig{
			RateLimit: getEnvAsFloat("API_RATE_LIMIT", 5),
			RateBurst: getEnvAsInt("API_RATE_BURST", 10),

			ReadTimeout:  getEnvAsDuration("API_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("API_WRITE_TIMEOUT", "60s"),
			IdleTimeout:  getEnvAsDuration("API_IDLE_TIMEOUT", "60s"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Simulation.InitialCash < 0 || math.IsNaN(c.Simulation.InitialCash) || math.IsInf(c.Simulation.InitialCash, 0) {
		return fmt.Errorf("INITIAL_CASH must be a finite amount >= 0")
	}

	if c.API.RateLimit <= 0 || c.API.RateBurst <= 0 {
		return fmt.Errorf("API_RATE_LIMIT and API_RATE_BURST must be > 0")
	}

	if c.Scheduler.HistoryLimit < 1 {
		return fmt.Errorf("SCHEDULER_HISTORY_LIMIT must be >= 1")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

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

// getEnvAsList splits a comma separated value, dropping blanks and upper-casing symbols
func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(valueStr, ",") {
		if item := strings.ToUpper(strings.TrimSpace(part)); item != "" {
			items = append(items, item)
		}
	}
	return items
}
