// Package metrics provides Prometheus metrics collection for the POS service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CartOperationsTotal counts cart mutations by operation and result.
	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"operation", "result"},
	)

	// CartItems is the current number of units in the cart.
	CartItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_items",
			Help: "Current number of units in the cart",
		},
	)

	// AnalysisRequestsTotal counts analysis requests by outcome
	// (success, fallback, empty, busy, rejected).
	AnalysisRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total number of cart analysis requests",
		},
		[]string{"outcome"},
	)

	// AnalysisDuration tracks how long analysis service calls take.
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Analysis service call duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	// AnalysisErrorsTotal counts analysis client failures by error kind.
	AnalysisErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_errors_total",
			Help: "Total number of analysis service failures",
		},
		[]string{"kind"},
	)

	// CheckoutsTotal counts checkout protocol steps (started, acknowledged, rejected).
	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "Total number of checkout steps",
		},
		[]string{"stage"},
	)

	// CheckoutAmount tracks the distribution of checkout totals.
	CheckoutAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_total_amount",
			Help:    "Checkout totals in currency units",
			Buckets: []float64{5, 10, 25, 50, 100, 250},
		},
	)

	// CircuitBreakerState exposes breaker state (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCartOperation records a cart mutation and the resulting unit count.
func RecordCartOperation(operation, result string, itemCount int) {
	CartOperationsTotal.WithLabelValues(operation, result).Inc()
	CartItems.Set(float64(itemCount))
}

// RecordAnalysis records the outcome of an analysis request.
func RecordAnalysis(outcome string) {
	AnalysisRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordAnalysisCall records one call to the analysis service.
// An empty kind means the call succeeded.
func RecordAnalysisCall(duration time.Duration, kind string) {
	AnalysisDuration.Observe(duration.Seconds())
	if kind != "" {
		AnalysisErrorsTotal.WithLabelValues(kind).Inc()
	}
}

// RecordCheckout records a checkout protocol step. amount is only
// observed for the "started" stage.
func RecordCheckout(stage string, amount float64) {
	CheckoutsTotal.WithLabelValues(stage).Inc()
	if stage == "started" {
		CheckoutAmount.Observe(amount)
	}
}

// RecordCircuitBreakerState publishes a breaker state as a numeric gauge.
func RecordCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheSize updates the cache size gauge.
func UpdateCacheSize(size int) {
	CacheSize.Set(float64(size))
}
