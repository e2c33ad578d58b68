package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PASSWORD", "letmein")
	t.Setenv("DATABASE_URL", "postgres://localhost/inventory?sslmode=disable")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppHost)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "techInventory", cfg.RedisPrefix)
	assert.Equal(t, 120*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SeedOnStart)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
	assert.Equal(t, "Inventory!A1", cfg.Sheets.Range)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_JSON", "{}")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-1")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, 172.16.0.0/12 ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.SeedOnStart)
	assert.True(t, cfg.Sheets.Enabled())
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
		{"missing password", map[string]string{"APP_PASSWORD": ""}, "APP_PASSWORD_HASH"},
		{"unknown backend", map[string]string{"STORE_BACKEND": "sqlite"}, "unknown STORE_BACKEND"},
		{"postgres without url", map[string]string{"DATABASE_URL": ""}, "DATABASE_URL"},
		{"bad ttl", map[string]string{"SESSION_TTL": "forever"}, "SESSION_TTL"},
		{"bad proxy", map[string]string{"TRUSTED_PROXIES": "proxy.local"}, "TRUSTED_PROXIES"},
		{"bad seed flag", map[string]string{"SEED_ON_START": "maybe"}, "SEED_ON_START"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDotEnvKeepsExistingVariables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_PREFIX=fromFile\nREDIS_ADDR=redis:6379\n"), 0o600))

	t.Setenv("REDIS_PREFIX", "fromEnv")
	t.Setenv("REDIS_ADDR", "")
	os.Unsetenv("REDIS_ADDR")

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("REDIS_ADDR") })

	assert.Equal(t, "fromEnv", os.Getenv("REDIS_PREFIX"))
	assert.Equal(t, "redis:6379", os.Getenv("REDIS_ADDR"))
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
