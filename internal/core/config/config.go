package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	AppHost       string
	StoreBackend  string
	DatabaseURL   string
	RedisAddr     string
	RedisPrefix   string
	JWTSecret     string
	PasswordHash  string
	Password      string
	SessionTTL    time.Duration
	SeedOnStart   bool
	MigrationsDir string
	// TrustedProxies are the addresses or CIDRs whose X-Forwarded-For is believed.
	// Empty means client addresses come from the TCP connection only.
	TrustedProxies []string
	Sheets         SheetsConfig
}

type SheetsConfig struct {
	CredentialsJSON string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether both credentials and a target spreadsheet are configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsJSON != "" && s.SpreadsheetID != ""
}

// LoadDotEnv reads .env files without overriding variables already set in the
// environment. A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	existing := make([]string, 0, len(filenames))
	for _, name := range filenames {
		if _, err := os.Stat(name); err == nil {
			existing = append(existing, name)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load builds the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppHost:        getEnv("APP_HOST", ":8080"),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:    getEnv("REDIS_PREFIX", "techInventory"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		PasswordHash:   os.Getenv("APP_PASSWORD_HASH"),
		Password:       os.Getenv("APP_PASSWORD"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),
		Sheets: SheetsConfig{
			CredentialsJSON: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
			Range:           getEnv("GOOGLE_SHEETS_RANGE", "Inventory!A1"),
		},
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "120h")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.SeedOnStart, err = strconv.ParseBool(getEnv("SEED_ON_START", "true")); err != nil {
		return nil, fmt.Errorf("invalid SEED_ON_START: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_BACKEND=postgres"))
		}
	case BackendRedis, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q, expected postgres, redis or memory", c.StoreBackend))
	}

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is not set"))
	}
	if c.PasswordHash == "" && c.Password == "" {
		errs = append(errs, errors.New("either APP_PASSWORD_HASH or APP_PASSWORD must be set"))
	}
	for _, proxy := range c.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				errs = append(errs, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", proxy))
			}
		}
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
