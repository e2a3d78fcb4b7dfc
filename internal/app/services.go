package app

import (
	"context"
	"fmt"

	"github.com/guttosm/freshcart-pos/config"
	"github.com/guttosm/freshcart-pos/internal/analysis"
	"github.com/guttosm/freshcart-pos/internal/cart"
	"github.com/guttosm/freshcart-pos/internal/catalog"
	"github.com/guttosm/freshcart-pos/internal/circuitbreaker"
	"github.com/guttosm/freshcart-pos/internal/metrics"
	"github.com/guttosm/freshcart-pos/internal/service"
	"github.com/guttosm/freshcart-pos/internal/service/cache"
	"github.com/rs/zerolog/log"
)

// AnalysisBreakerName labels the analysis service breaker in metrics and
// readiness output.
const AnalysisBreakerName = "analysis"

// ServiceComponents holds the register and what it is built from.
type ServiceComponents struct {
	Catalog         *catalog.Catalog
	Register        *service.RegisterImpl
	AnalysisBreaker *circuitbreaker.CircuitBreaker
	AnalysisCache   *cache.TTL
	// AnalysisConfigured is false when no API key is set; every analysis
	// then settles on the fallback result.
	AnalysisConfigured bool
}

// Close stops background work owned by the services.
func (s *ServiceComponents) Close() {
	if s.AnalysisCache != nil {
		s.AnalysisCache.Stop()
	}
}

// InitializeServices builds the catalog, the analysis client chain and the
// register. Only an unreadable catalog file is fatal.
func InitializeServices(ctx context.Context, cfg config.Config) (*ServiceComponents, error) {
	products, err := loadCatalog(cfg.Cart)
	if err != nil {
		return nil, err
	}

	gemini, err := analysis.NewGeminiClient(ctx, analysis.GeminiConfig{
		APIKey:  cfg.Analysis.APIKey,
		Model:   cfg.Analysis.Model,
		BaseURL: cfg.Analysis.BaseURL,
		Timeout: cfg.Analysis.Timeout,
	})
	if err != nil {
		return nil, err
	}
	if !gemini.Configured() {
		log.Warn().Msg("No Gemini API key configured - cart analysis will use the default suggestion")
	}

	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:             AnalysisBreakerName,
		FailureThreshold: cfg.Analysis.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.Analysis.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.Analysis.CircuitBreakerTimeout,
		IsFailure:        analysis.CountsAsFailure,
		OnStateChange:    recordBreakerTransition,
	})
	metrics.RecordCircuitBreakerState(AnalysisBreakerName, int(circuitbreaker.StateClosed))

	var client analysis.Client = analysis.NewBreakerClient(gemini, breaker)
	var resultCache *cache.TTL
	if cfg.Analysis.CacheSize > 0 && cfg.Analysis.CacheTTL > 0 {
		resultCache = cache.NewTTL(cfg.Analysis.CacheSize, cfg.Analysis.CacheTTL)
		client = analysis.NewCachingClient(client, resultCache)
	}

	session := analysis.NewSession(client, analysis.WithNotifier(notifyFallback))
	register := service.NewRegister(products, session,
		service.WithCart(cart.NewEngine(cart.WithTaxRate(cfg.Cart.TaxRate))))

	log.Info().
		Int("products", len(products.ListProducts())).
		Str("tax_rate", cfg.Cart.TaxRate.String()).
		Bool("analysis_cache", resultCache != nil).
		Msg("Register ready")

	return &ServiceComponents{
		Catalog:            products,
		Register:           register,
		AnalysisBreaker:    breaker,
		AnalysisCache:      resultCache,
		AnalysisConfigured: gemini.Configured(),
	}, nil
}

func loadCatalog(cfg config.CartConfig) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	products, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogFile, err)
	}
	log.Info().Str("file", cfg.CatalogFile).Msg("Loaded catalog file")
	return products, nil
}

// notifyFallback is the session's failure signal. The HTTP response carries
// the user-facing notice; this records the event for operators.
func notifyFallback(_ context.Context, cause error) {
	log.Warn().
		Err(cause).
		Str("kind", string(analysis.KindOf(cause))).
		Msg("Analysis service unavailable, served default suggestion")
}

func recordBreakerTransition(name string, from, to circuitbreaker.State) {
	metrics.RecordCircuitBreakerState(name, int(to))
	log.Warn().
		Str("breaker", name).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("Circuit breaker state changed")
}
