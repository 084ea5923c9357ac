// Command server runs the Loomra CRM API: configuration, structured logging,
// PostgreSQL with schema migrations, and the HTTP router with graceful
// shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/loomra/crm-api/internal/api"
	"github.com/loomra/crm-api/internal/infrastructure/config"
	"github.com/loomra/crm-api/internal/infrastructure/db/postgres"
	"github.com/loomra/crm-api/internal/token"
	"github.com/loomra/crm-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	defer db.Close()

	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("cannot run migrations")
	}

	tokens := token.NewService(cfg.JWTSecret, token.DefaultTTL)
	e := api.NewRouter(db, tokens, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
