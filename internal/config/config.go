package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Upstream helpdesk API configuration
	Helpdesk HelpdeskConfig

	// Static department id -> name table
	Departments []DepartmentConfig

	// CORS configuration
	CORS CORSConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// HelpdeskConfig holds the upstream helpdesk API configuration
type HelpdeskConfig struct {
	BaseURL           string
	OrgID             string
	AuthToken         string
	RequestsPerMinute int
	Burst             int
	MaxRetries        int
	PageSize          int
	MetricsLimit      int
	CacheTTL          time.Duration
	Timeout           time.Duration
}

// DepartmentConfig is one entry of the static department table
type DepartmentConfig struct {
	ID   string
	Name string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", ":8080"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Helpdesk: HelpdeskConfig{
			BaseURL:           os.Getenv("HELPDESK_BASE_URL"),
			OrgID:             os.Getenv("HELPDESK_ORG_ID"),
			AuthToken:         os.Getenv("HELPDESK_AUTH_TOKEN"),
			RequestsPerMinute: getIntOrDefault("HELPDESK_REQUESTS_PER_MINUTE", 60),
			Burst:             getIntOrDefault("HELPDESK_BURST", 10),
			MaxRetries:        getIntOrDefault("HELPDESK_MAX_RETRIES", 3),
			PageSize:          getIntOrDefault("HELPDESK_PAGE_SIZE", 100),
			MetricsLimit:      getIntOrDefault("HELPDESK_METRICS_LIMIT", 200),
			CacheTTL:          getDurationOrDefault("HELPDESK_CACHE_TTL", 5*time.Minute),
			Timeout:           getDurationOrDefault("HELPDESK_TIMEOUT", 30*time.Second),
		},
		Departments: parseDepartments(os.Getenv("DEPARTMENTS")),
		CORS: CORSConfig{
			AllowedOrigins: getStringSliceOrDefault("CORS_ALLOWED_ORIGINS", []string{}),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 10),
			BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 20),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "ticket-dashboard"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	// Required fields
	if c.Helpdesk.BaseURL == "" {
		errs = append(errs, "HELPDESK_BASE_URL is required")
	}

	if c.Helpdesk.AuthToken == "" {
		errs = append(errs, "HELPDESK_AUTH_TOKEN is required")
	}

	// Security validations
	if c.App.Environment == "production" {
		if len(c.CORS.AllowedOrigins) == 0 {
			errs = append(errs, "CORS_ALLOWED_ORIGINS must be set in production")
		}
	}

	// Logical validations
	if c.Helpdesk.RequestsPerMinute < 1 {
		errs = append(errs, "HELPDESK_REQUESTS_PER_MINUTE must be at least 1")
	}

	if c.Helpdesk.PageSize < 1 {
		errs = append(errs, "HELPDESK_PAGE_SIZE must be at least 1")
	}

	if c.Helpdesk.MetricsLimit < 1 {
		errs = append(errs, "HELPDESK_METRICS_LIMIT must be at least 1")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// parseDepartments parses the static department table from a comma-separated
// list of id:name pairs, e.g. "d1:Billing,d2:Technical Support". Malformed
// pairs are skipped.
func parseDepartments(value string) []DepartmentConfig {
	if value == "" {
		return nil
	}

	var departments []DepartmentConfig
	for _, pair := range strings.Split(value, ",") {
		id, name, ok := strings.Cut(pair, ":")
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if !ok || id == "" || name == "" {
			continue
		}
		departments = append(departments, DepartmentConfig{ID: id, Name: name})
	}
	return departments
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// String returns a redacted string representation of the config (safe for logging)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s, Helpdesk: %s (token [REDACTED]), Departments: %d, RateLimit: %v, Environment: %s}",
		c.Server.Port,
		c.Helpdesk.BaseURL,
		len(c.Departments),
		c.RateLimit.Enabled,
		c.App.Environment,
	)
}
