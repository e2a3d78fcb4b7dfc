//go:build !integration

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/freshcart-pos/config"
	"github.com/guttosm/freshcart-pos/internal/circuitbreaker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:              "8080",
			RateLimit:         100,
			RateWindow:        time.Minute,
			RequestTimeout:    30 * time.Second,
			EnableIdempotency: true,
		},
		Cart: config.CartConfig{TaxRate: decimal.RequireFromString("0.08")},
		Analysis: config.AnalysisConfig{
			Timeout:                        time.Second,
			CacheSize:                      16,
			CacheTTL:                       time.Minute,
			CircuitBreakerFailureThreshold: 3,
			CircuitBreakerSuccessThreshold: 1,
			CircuitBreakerTimeout:          30 * time.Second,
		},
	}
}

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantCache bool
	}{
		{name: "defaults", mutate: func(*config.Config) {}, wantCache: true},
		{
			name:      "cache disabled",
			mutate:    func(c *config.Config) { c.Analysis.CacheSize = 0 },
			wantCache: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			services, err := InitializeServices(context.Background(), cfg)
			require.NoError(t, err)
			t.Cleanup(services.Close)

			assert.NotNil(t, services.Register)
			assert.Len(t, services.Catalog.ListProducts(), 18)
			assert.Equal(t, tt.wantCache, services.AnalysisCache != nil)
			assert.False(t, services.AnalysisConfigured)
			assert.Equal(t, "closed", services.AnalysisBreaker.GetStats().State)
		})
	}
}

func TestInitializeServices_TaxRate(t *testing.T) {
	cfg := testConfig()
	cfg.Cart.TaxRate = decimal.RequireFromString("0.10")

	services, err := InitializeServices(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(services.Close)

	snap, err := services.Register.AddItem("9")
	require.NoError(t, err)
	assert.Equal(t, "2.99", snap.Totals.Rounded().Subtotal.StringFixed(2))
	assert.Equal(t, "0.30", snap.Totals.Rounded().Tax.StringFixed(2))
}

func TestInitializeServices_UnconfiguredAnalysisFallsBack(t *testing.T) {
	services, err := InitializeServices(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(services.Close)

	_, err = services.Register.AddItem("1")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		out, err := services.Register.RequestAnalysis(context.Background())
		require.NoError(t, err)
		assert.True(t, out.Fallback)
		assert.Equal(t, 50, out.Result.HealthScore)
	}
	assert.Equal(t, circuitbreaker.StateClosed.String(), services.AnalysisBreaker.GetStats().State,
		"missing credentials must not trip the breaker")
}

func TestInitializeServices_CatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`products:
  - id: "a"
    name: Kale
    price: "2.49"
    category: Produce
`), 0o600))

	cfg := testConfig()
	cfg.Cart.CatalogFile = path

	services, err := InitializeServices(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(services.Close)

	products := services.Catalog.ListProducts()
	require.Len(t, products, 1)
	assert.Equal(t, "Kale", products[0].Name)
}

func TestInitializeServices_BadCatalogFile(t *testing.T) {
	cfg := testConfig()
	cfg.Cart.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")

	services, err := InitializeServices(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, services)
}
