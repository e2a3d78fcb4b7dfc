// Package app wires configuration, services and transport into a runnable
// register.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freshcart-pos/config"
	"github.com/guttosm/freshcart-pos/internal/http"
)

// App is a fully wired register service.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
// The logger should already be initialized.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, error) {
	services, err := InitializeServices(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db := InitializeDatabase(cfg.Database)
	rc := InitializeRouter(services, db, cfg)

	return &App{
		Router:   http.NewRouter(rc.Handler, rc.HealthHandler, rc.Config),
		Services: services,
		Database: db,
	}, nil
}

// Close releases background resources. It runs after the HTTP server has
// drained so late requests still reach the activity log.
func (a *App) Close() {
	if a.Database != nil {
		ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
		defer cancel()
		a.Database.Close(ctx)
	}
	a.Services.Close()
}
