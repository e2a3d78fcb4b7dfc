package http

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/circuitbreaker"
)

// readinessTimeout bounds all checks of one readiness probe.
const readinessTimeout = 3 * time.Second

// HealthChecker probes one dependency.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f.
func (f HealthCheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

type registeredCheck struct {
	checker  HealthChecker
	critical bool
}

// HealthHandler serves the liveness and readiness probes.
//
// A failing critical check makes the service not ready. Non-critical checks
// and open circuit breakers only mark it degraded: the register keeps
// selling without the analysis service or the activity log.
type HealthHandler struct {
	mu              sync.RWMutex
	checkers        map[string]registeredCheck
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
	stats           map[string]func() interface{}
}

// NewHealthHandler creates an empty HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]registeredCheck),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
		stats:           make(map[string]func() interface{}),
	}
}

// RegisterChecker adds a dependency check.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker, critical bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = registeredCheck{checker: checker, critical: critical}
}

// RegisterCircuitBreaker reports cb's state on readiness.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.circuitBreakers[name] = cb
}

// RegisterStats adds informational output under "stats" on readiness. It
// never affects the status.
func (h *HealthHandler) RegisterStats(name string, fn func() interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats[name] = fn
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Reports every dependency check and circuit breaker, plus informational stats such as analysis cache usage. Returns 503 only when a critical check fails; status is "degraded" when an optional dependency is down.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready, possibly degraded"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	checks := make(map[string]interface{})

	for _, name := range sortedKeys(h.checkers) {
		rc := h.checkers[name]
		if err := rc.checker.Check(ctx); err != nil {
			checks[name] = err.Error()
			if rc.critical {
				code = http.StatusServiceUnavailable
				status = "unavailable"
			} else if status == "ok" {
				status = "degraded"
			}
			continue
		}
		checks[name] = "ok"
	}

	for _, name := range sortedKeys(h.circuitBreakers) {
		stats := h.circuitBreakers[name].GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy && status == "ok" {
			status = "degraded"
		}
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	body := gin.H{
		"status": status,
		"checks": checks,
	}
	if len(h.stats) > 0 {
		stats := make(map[string]interface{}, len(h.stats))
		for _, name := range sortedKeys(h.stats) {
			stats[name] = h.stats[name]()
		}
		body["stats"] = stats
	}
	c.JSON(code, body)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
