package app

import (
	"github.com/guttosm/freshcart-pos/config"
	"github.com/guttosm/freshcart-pos/internal/logger"
)

// InitializeLogger configures the global zerolog logger.
func InitializeLogger(cfg config.LoggingConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
