// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	GuestModePersisted = "persisted"
	GuestModeDemo      = "demo"

	devJWTSecret = "dev-only-insecure-secret"
)

type Config struct {
	Port      string
	Env       string
	LogMode   string
	LogRedact bool

	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig
	Kit   KitConfig

	GuestMode          string
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	ProgressWindowDays int
	SubscriptionQueue  int
}

type DBConfig struct {
	Driver   string
	DSN      string
	Path     string
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type KitConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       strings.ToLower(getEnv("APP_ENV", "dev")),
		LogMode:   getEnv("LOG_MODE", "dev"),
		LogRedact: getEnvBool("LOG_REDACTION_ENABLED", true),
		DB: DBConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			DSN:      getEnv("DB_DSN", ""),
			Path:     getEnv("DB_PATH", "./data/tracker.db"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", "smokefree-tracker"),
			TokenTTL:  getEnvDuration("JWT_TTL", 30*24*time.Hour),
		},
		Kit: KitConfig{
			APIKey:     getEnv("KIT_API_KEY", ""),
			BaseURL:    getEnv("KIT_BASE_URL", "https://api.kit.com"),
			Timeout:    getEnvDuration("KIT_TIMEOUT", 10*time.Second),
			MaxRetries: getEnvInt("KIT_MAX_RETRIES", 2),
		},
		GuestMode:          strings.ToLower(getEnv("GUEST_MODE", GuestModePersisted)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ProgressWindowDays: getEnvInt("PROGRESS_WINDOW_DAYS", 30),
		SubscriptionQueue:  getEnvInt("SUBSCRIPTION_QUEUE_SIZE", 100),
	}

	if cfg.Auth.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.Auth.JWTSecret = devJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.DB.Driver {
	case DriverPgx, DriverPostgres:
		if c.DB.DSN == "" && (c.DB.User == "" || c.DB.Name == "") {
			return fmt.Errorf("DB_DSN or DB_USER and DB_NAME are required for driver %q", c.DB.Driver)
		}
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("DB_PATH cannot be empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.GuestMode {
	case GuestModePersisted, GuestModeDemo:
	default:
		return fmt.Errorf("GUEST_MODE must be %q or %q", GuestModePersisted, GuestModeDemo)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if c.ProgressWindowDays <= 0 {
		return fmt.Errorf("PROGRESS_WINDOW_DAYS must be > 0")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be > 0")
	}
	if c.SubscriptionQueue <= 0 {
		return fmt.Errorf("SUBSCRIPTION_QUEUE_SIZE must be > 0")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "dev" || c.Env == "development" || c.Env == "test"
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func (c *Config) KitEnabled() bool {
	return c.Kit.APIKey != ""
}

// PostgresDSN returns DB_DSN or assembles one from the discrete DB_* variables.
func (d DBConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
