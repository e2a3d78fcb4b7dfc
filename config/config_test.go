package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "RATE_LIMIT", "RATE_WINDOW", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"IDEMPOTENCY_ENABLED", "CORS_ORIGINS", "SWAGGER_USER", "SWAGGER_PASS",
	"CART_TAX_RATE", "CATALOG_FILE",
	"GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "ANALYSIS_TIMEOUT",
	"ANALYSIS_CACHE_SIZE", "ANALYSIS_CACHE_TTL",
	"ANALYSIS_CB_FAILURE_THRESHOLD", "ANALYSIS_CB_SUCCESS_THRESHOLD", "ANALYSIS_CB_TIMEOUT",
	"MONGODB_URI", "MONGODB_DATABASE", "MONGODB_LOGS_TTL", "MONGODB_ENABLED",
	"CIRCUIT_BREAKER_FAILURE_THRESHOLD", "CIRCUIT_BREAKER_SUCCESS_THRESHOLD", "CIRCUIT_BREAKER_TIMEOUT",
	"LOG_LEVEL", "LOG_PRETTY",
}

// clearEnv blanks every variable FromEnv reads; blank counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg := FromEnv()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.True(t, cfg.Server.EnableIdempotency)
		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.CORSOrigins)
		assert.True(t, decimal.RequireFromString("0.08").Equal(cfg.Cart.TaxRate))
		assert.Empty(t, cfg.Cart.CatalogFile)
		assert.Empty(t, cfg.Analysis.APIKey)
		assert.Equal(t, "gemini-2.5-flash", cfg.Analysis.Model)
		assert.Equal(t, 20*time.Second, cfg.Analysis.Timeout)
		assert.Less(t, cfg.Analysis.Timeout, cfg.Server.RequestTimeout)
		assert.Equal(t, 256, cfg.Analysis.CacheSize)
		assert.Equal(t, 3, cfg.Analysis.CircuitBreakerFailureThreshold)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "freshcart_pos", cfg.Database.DatabaseName)
		assert.Equal(t, 30, cfg.Database.LogsTTLDays())
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.False(t, cfg.Logging.Pretty)
	})

	t.Run("values from environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "9090")
		t.Setenv("RATE_LIMIT", "50")
		t.Setenv("REQUEST_TIMEOUT", "45s")
		t.Setenv("IDEMPOTENCY_ENABLED", "false")
		t.Setenv("CORS_ORIGINS", " https://till.example , ")
		t.Setenv("CART_TAX_RATE", "0.0725")
		t.Setenv("CATALOG_FILE", "/etc/freshcart/catalog.yaml")
		t.Setenv("GEMINI_API_KEY", "key-1")
		t.Setenv("ANALYSIS_TIMEOUT", "5s")
		t.Setenv("ANALYSIS_CACHE_TTL", "1m")
		t.Setenv("MONGODB_ENABLED", "true")
		t.Setenv("MONGODB_LOGS_TTL", "168h")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_PRETTY", "true")

		cfg := FromEnv()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
		assert.False(t, cfg.Server.EnableIdempotency)
		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000", "https://till.example"}, cfg.Server.CORSOrigins)
		assert.Equal(t, "0.0725", cfg.Cart.TaxRate.String())
		assert.Equal(t, "/etc/freshcart/catalog.yaml", cfg.Cart.CatalogFile)
		assert.Equal(t, "key-1", cfg.Analysis.APIKey)
		assert.Equal(t, 5*time.Second, cfg.Analysis.Timeout)
		assert.Equal(t, time.Minute, cfg.Analysis.CacheTTL)
		assert.True(t, cfg.Database.Enabled)
		assert.Equal(t, 7, cfg.Database.LogsTTLDays())
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.True(t, cfg.Logging.Pretty)
	})

	t.Run("API_KEY is a fallback for GEMINI_API_KEY", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "legacy")

		assert.Equal(t, "legacy", FromEnv().Analysis.APIKey)

		t.Setenv("GEMINI_API_KEY", "preferred")
		assert.Equal(t, "preferred", FromEnv().Analysis.APIKey)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RATE_LIMIT", "invalid")
		t.Setenv("RATE_WINDOW", "invalid")
		t.Setenv("MONGODB_ENABLED", "maybe")

		cfg := FromEnv()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.False(t, cfg.Database.Enabled)
	})
}

func TestGetEnvDecimal(t *testing.T) {
	def := decimal.RequireFromString("0.08")

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "valid", value: "0.05", want: "0.05"},
		{name: "zero", value: "0", want: "0"},
		{name: "negative", value: "-0.1", want: "0.08"},
		{name: "one or more", value: "1", want: "0.08"},
		{name: "not a number", value: "eight percent", want: "0.08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CART_TAX_RATE", tt.value)
			assert.Equal(t, tt.want, getEnvDecimal("CART_TAX_RATE", def).String())
		})
	}
}

func TestLogsTTLDays(t *testing.T) {
	assert.Equal(t, 1, DatabaseConfig{LogsTTL: time.Hour}.LogsTTLDays())
	assert.Equal(t, 2, DatabaseConfig{LogsTTL: 50 * time.Hour}.LogsTTLDays())
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("GEMINI_MODEL"))
	t.Cleanup(func() { _ = os.Unsetenv("GEMINI_MODEL") })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_MODEL=gemini-from-file\nPORT=7070\n"), 0o600))
	t.Chdir(dir)

	cfg := Load()

	assert.Equal(t, "gemini-from-file", cfg.Analysis.Model)
	// PORT is already set (blank), so the file does not override it.
	assert.Equal(t, "8080", cfg.Server.Port)
}
