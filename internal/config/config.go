package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	Attendance AttendanceConfig
	Cache      CacheConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// Timezone is the fixed organizational calendar; punch times and
	// reporting window bounds are all evaluated in this location.
	Timezone string
	// WeekStartsOn is the first day of the reporting week (1 = Monday).
	WeekStartsOn time.Weekday
}

// AttendanceConfig holds the wall-clock deadlines driving classification
// and the punch gate. All values are "HH:MM" strings.
type AttendanceConfig struct {
	PunchInDeadline  string // latest punch-in still counted as a full day
	PunchOutMinimum  string // earliest punch-out still counted as a full day
	NextDayPunchTime string // punches re-open at this time the next day
}

type CacheConfig struct {
	TTL time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine in deployed environments; env vars win anyway.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "satfield-sfa"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	weekStart, err := strconv.Atoi(getEnv("WEEK_STARTS_ON", "1"))
	if err != nil || weekStart < 0 || weekStart > 6 {
		return nil, fmt.Errorf("invalid WEEK_STARTS_ON: must be 0-6")
	}

	config.App = AppConfig{
		Port:         appPort,
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Timezone:     getEnv("ORG_TIMEZONE", "Asia/Kolkata"),
		WeekStartsOn: time.Weekday(weekStart),
	}

	config.Attendance = AttendanceConfig{
		PunchInDeadline:  getEnv("PUNCH_IN_DEADLINE", "09:45"),
		PunchOutMinimum:  getEnv("PUNCH_OUT_MINIMUM", "18:25"),
		NextDayPunchTime: getEnv("NEXT_DAY_PUNCH_TIME", "08:45"),
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	config.Cache = CacheConfig{TTL: cacheTTL}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid ORG_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

// Location resolves the organizational timezone. Validate has already
// checked that it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
