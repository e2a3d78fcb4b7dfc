package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readinessBody struct {
	Status string                     `json:"status"`
	Checks map[string]interface{}     `json:"checks"`
	Stats  map[string]json.RawMessage `json:"stats"`
}

func getHealth(t *testing.T, h *HealthHandler, path string) (int, readinessBody) {
	t.Helper()
	r := gin.New()
	h.Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body readinessBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func openBreaker(t *testing.T, name string) *circuitbreaker.CircuitBreaker {
	t.Helper()
	cb := circuitbreaker.New(circuitbreaker.Config{Name: name, FailureThreshold: 1, Timeout: time.Hour})
	_ = cb.Execute(context.Background(), func() error { return errors.New("down") })
	require.True(t, cb.IsOpen())
	return cb
}

func TestLiveness(t *testing.T) {
	code, body := getHealth(t, NewHealthHandler(), "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
}

func TestReadiness(t *testing.T) {
	healthy := HealthCheckFunc(func(context.Context) error { return nil })
	failing := HealthCheckFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		setup      func(h *HealthHandler)
		wantCode   int
		wantStatus string
		wantChecks map[string]interface{}
	}{
		{
			name:       "no dependencies",
			setup:      func(*HealthHandler) {},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]interface{}{"service": "ok"},
		},
		{
			name: "all healthy",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("catalog", healthy, true)
				h.RegisterChecker("database", healthy, false)
				h.RegisterCircuitBreaker("analysis", circuitbreaker.New(circuitbreaker.DefaultConfig("analysis")))
			},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]interface{}{"catalog": "ok", "database": "ok", "analysis_circuit": "closed"},
		},
		{
			name: "optional dependency down",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("catalog", healthy, true)
				h.RegisterChecker("database", failing, false)
			},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
			wantChecks: map[string]interface{}{"catalog": "ok", "database": "connection refused"},
		},
		{
			name: "open breaker",
			setup: func(h *HealthHandler) {
				h.RegisterCircuitBreaker("analysis", openBreaker(t, "analysis"))
			},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
			wantChecks: map[string]interface{}{"analysis_circuit": "open"},
		},
		{
			name: "critical dependency down",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("catalog", failing, true)
				h.RegisterChecker("database", failing, false)
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unavailable",
			wantChecks: map[string]interface{}{"catalog": "connection refused", "database": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler()
			tt.setup(h)

			code, body := getHealth(t, h, "/readyz")

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantChecks, body.Checks)
		})
	}
}

func TestReadiness_Stats(t *testing.T) {
	h := NewHealthHandler()
	h.RegisterChecker("catalog", HealthCheckFunc(func(context.Context) error { return nil }), true)

	_, body := getHealth(t, h, "/readyz")
	assert.Nil(t, body.Stats)

	h.RegisterStats("analysis_cache", func() interface{} {
		return map[string]int{"hits": 3, "size": 1}
	})

	code, body := getHealth(t, h, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
	require.Contains(t, body.Stats, "analysis_cache")
	assert.JSONEq(t, `{"hits":3,"size":1}`, string(body.Stats["analysis_cache"]))
}
