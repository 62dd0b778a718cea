package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"donorbook/internal/bootstrap"
	"donorbook/internal/http/handlers"
	httpapi "donorbook/internal/http/httpapi"
	"donorbook/internal/infra"
)

func main() {
	_ = godotenv.Load()
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DataBackend == infra.BackendPostgres {
		if err := infra.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Fatal().Err(err).Msg("migrations failed")
		}
	}

	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}
	defer rt.Close()

	app := &handlers.App{
		Donors:     rt.Donors,
		Payments:   rt.Payments,
		Expenses:   rt.Expenses,
		Stats:      rt.Stats,
		Auth:       rt.Auth,
		Exports:    rt.Exports,
		Logger:     logger,
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		Now:        cfg.Now,
	}
	router := httpapi.NewRouter(app, httpapi.Options{
		CORSOrigins:     cfg.CORSOrigins,
		LoginRatePerMin: cfg.LoginRatePerMin,
	})

	server := infra.NewHTTPServer(cfg, router, logger)
	if err := server.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("http server failed")
		return
	}
	logger.Info().Msg("api stopped")
}
