package app

import (
	"context"
	"errors"

	"github.com/guttosm/freshcart-pos/config"
	"github.com/guttosm/freshcart-pos/internal/http"
	"github.com/guttosm/freshcart-pos/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the handlers, readiness checks and router
// configuration. db may be nil when the activity log is off.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	var (
		sink middleware.AuditSink
		logs *http.LogsHandler
	)
	if db != nil && db.AsyncLogger != nil {
		sink = db.AsyncLogger
		logs = http.NewLogsHandler(db.LoggingService)
	}

	var handlerOpts []http.HandlerOption
	if sink != nil {
		handlerOpts = append(handlerOpts, http.WithAuditSink(sink))
	}
	handler := http.NewHandler(services.Register, services.Catalog, handlerOpts...)

	health := http.NewHealthHandler()
	health.RegisterChecker("catalog", http.HealthCheckFunc(func(context.Context) error {
		if len(services.Catalog.ListProducts()) == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	}), true)
	health.RegisterCircuitBreaker(AnalysisBreakerName, services.AnalysisBreaker)
	if services.AnalysisCache != nil {
		health.RegisterStats("analysis_cache", func() interface{} {
			return services.AnalysisCache.Metrics()
		})
	}
	if db != nil {
		health.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck), false)
		health.RegisterCircuitBreaker(LogsBreakerName, db.LogsCircuitBreaker)
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: health,
		Config: http.RouterConfig{
			RateLimit:         cfg.Server.RateLimit,
			RateWindow:        cfg.Server.RateWindow,
			RequestTimeout:    cfg.Server.RequestTimeout,
			EnableIdempotency: cfg.Server.EnableIdempotency,
			CORSOrigins:       cfg.Server.CORSOrigins,
			SwaggerUser:       cfg.Server.SwaggerUser,
			SwaggerPass:       cfg.Server.SwaggerPass,
			AuditSink:         sink,
			Logs:              logs,
		},
	}
}
