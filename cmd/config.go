package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/jobs"

	"github.com/joho/godotenv"
)

// Config holds every setting of the service. Values come from the environment,
// optionally seeded from a .env file.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisURL enables the tracking view cache when set.
	RedisURL    string
	TrackingTTL time.Duration

	// BaseURL is the public application URL tracking links point to.
	BaseURL string

	LogLevel string
	// Env selects the log format: JSON in "production", text otherwise.
	Env string

	MaxMintAttempts int

	ProgressEnabled  bool
	ProgressSchedule string
	ProgressDwell    time.Duration
	ProgressBatch    int
}

// LoadConfig reads envFile when it exists, then the environment.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var errs []error
	config := Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSslMode:        getEnv("DB_SSLMODE", "disable"),
		RedisURL:         os.Getenv("REDIS_URL"),
		TrackingTTL:      durationEnv("TRACKING_CACHE_TTL", queries.DefaultTrackingTTL, &errs),
		BaseURL:          getEnv("APP_BASE_URL", "http://localhost:8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Env:              getEnv("APP_ENV", "development"),
		MaxMintAttempts:  intEnv("MAX_MINT_ATTEMPTS", commands.DefaultMaxMintAttempts, &errs),
		ProgressEnabled:  boolEnv("PROGRESS_JOB_ENABLED", false, &errs),
		ProgressSchedule: getEnv("PROGRESS_JOB_SCHEDULE", jobs.DefaultProgressSchedule),
		ProgressDwell:    durationEnv("PROGRESS_JOB_DWELL", 6*time.Hour, &errs),
		ProgressBatch:    intEnv("PROGRESS_JOB_BATCH", 100, &errs),
	}

	if config.DBUser == "" || config.DBName == "" {
		errs = append(errs, errors.New("DB_USER and DB_NAME are required"))
	}
	if _, err := config.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DSN returns the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return b
}

func durationEnv(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}
