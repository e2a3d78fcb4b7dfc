package app

import (
	"context"
	"time"

	"github.com/guttosm/freshcart-pos/config"
	"github.com/guttosm/freshcart-pos/internal/circuitbreaker"
	"github.com/guttosm/freshcart-pos/internal/metrics"
	"github.com/guttosm/freshcart-pos/internal/middleware"
	"github.com/guttosm/freshcart-pos/internal/repository"
	"github.com/guttosm/freshcart-pos/internal/service"
	"github.com/rs/zerolog/log"
)

// LogsBreakerName labels the activity log breaker.
const LogsBreakerName = "mongodb_logs"

const setupTimeout = 5 * time.Second

// DatabaseComponents holds the activity log stack.
type DatabaseComponents struct {
	DB                 *repository.MongoDB
	LoggingService     service.LoggingService
	LogsCircuitBreaker *circuitbreaker.CircuitBreaker
	AsyncLogger        *middleware.AsyncLogger
}

// Close flushes pending entries and disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) {
	if d.AsyncLogger != nil {
		d.AsyncLogger.Stop()
		stats := d.AsyncLogger.Stats()
		log.Info().
			Int64("written", stats.Written).
			Int64("dropped", stats.Dropped).
			Int64("errors", stats.Errors).
			Msg("Activity log flushed")
	}
	if d.DB != nil {
		if err := d.DB.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close MongoDB connection")
		}
	}
}

// InitializeDatabase connects the activity log. It returns nil when the log
// is disabled or MongoDB is unreachable; the register runs without it.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		log.Info().Msg("Activity log disabled")
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without activity log")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if err := db.SetLogsTTL(ctx, cfg.LogsTTLDays()); err != nil {
		log.Warn().Err(err).Msg("Failed to set activity log TTL index")
	}

	logsCB := circuitbreaker.New(circuitbreaker.Config{
		Name:             LogsBreakerName,
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		OnStateChange:    recordBreakerTransition,
	})
	metrics.RecordCircuitBreakerState(LogsBreakerName, int(circuitbreaker.StateClosed))

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	loggingService := service.NewLoggingService(logsRepo)

	return &DatabaseComponents{
		DB:                 db,
		LoggingService:     loggingService,
		LogsCircuitBreaker: logsCB,
		AsyncLogger:        middleware.InitAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig()),
	}
}
