// Package main is the entry point for the FreshCart point of sale service.
//
// @title           FreshCart POS API
// @version         1.0.0
// @description     Single-register grocery point of sale: catalog, cart, AI cart analysis and checkout.
//
//	The register holds one cart. Analysis failures never block a sale; the service
//	answers with a default suggestion instead.
//
// @contact.name   API Support
// @contact.url    https://github.com/guttosm/freshcart-pos
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Catalog
// @tag.description Products and categories
//
// @tag.name        Cart
// @tag.description Cart lines and totals
//
// @tag.name        Analysis
// @tag.description AI cart health score and recipe ideas
//
// @tag.name        Checkout
// @tag.description Receipts and acknowledgment
//
// @tag.name        Logs
// @tag.description Register activity log
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	_ "github.com/guttosm/freshcart-pos/docs" // swagger docs

	"github.com/guttosm/freshcart-pos/config"
	"github.com/guttosm/freshcart-pos/internal/app"
	"github.com/rs/zerolog/log"
)

// writeSlack keeps the server write deadline past the API request timeout.
const writeSlack = 5 * time.Second

func main() {
	cfg := config.Load()
	app.InitializeLogger(cfg.Logging)

	application, err := app.InitializeApp(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server.Port,
		app.WithWriteTimeout(cfg.Server.RequestTimeout+writeSlack),
		app.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		app.WithShutdownHook(application.Close),
	)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
