// Package main is the entry point for the character lookup server. It loads
// configuration, connects to MongoDB and Redis, wires the services and serves
// both the JSON API and the session-bound web surface.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dnfmate/character-lookup/internal/api"
	"github.com/dnfmate/character-lookup/internal/api/handler"
	"github.com/dnfmate/character-lookup/internal/core/ports"
	"github.com/dnfmate/character-lookup/internal/core/service"
	"github.com/dnfmate/character-lookup/internal/infrastructure/backend"
	mongodb "github.com/dnfmate/character-lookup/internal/infrastructure/db/mongo"
	redisdb "github.com/dnfmate/character-lookup/internal/infrastructure/db/redis"
	"github.com/dnfmate/character-lookup/internal/infrastructure/neople"
	"github.com/dnfmate/character-lookup/internal/infrastructure/queue"
	"github.com/dnfmate/character-lookup/internal/pkg/config"
	"github.com/dnfmate/character-lookup/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "character-lookup",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting character lookup")

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	authRepo := mongodb.NewAuthRepository(db)
	regRepo := mongodb.NewRegistrationRepository(db)
	if err := mongodb.EnsureIndexes(ctx, authRepo, regRepo); err != nil {
		return err
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// --- Backend services ---
	game := neople.NewClient(nil, neople.Config{
		BaseURL:      cfg.Neople.BaseURL,
		ImageBaseURL: cfg.Neople.ImageBaseURL,
		APIKey:       cfg.Neople.APIKey,
		RatePerSec:   cfg.Neople.RatePerSec,
	}, logger.Component("neople"))

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 0, 0)
	regService := service.NewRegistrationService(regRepo, game, logger.Component("registrations"))
	charService := service.NewCharacterService(game, redisdb.NewItemImageCache(rdb), logger.Component("characters"))

	dispatcher := queue.NewDispatcher(cfg.Enrich.Workers, regService, logger.Component("enrich"))
	dispatcher.Start(ctx)

	// --- Web surface ---
	backendClient := backend.NewClient(cfg.Web.BackendBaseURL, nil, logger.Component("backend"))
	web := handler.NewWebHandler(
		func(ts ports.TokenSource) handler.WebBackend { return backendClient.WithTokens(ts) },
		func(deviceID string) ports.DurableStorage { return redisdb.NewDeviceStorage(rdb, deviceID) },
		handler.WebConfig{
			Roster: service.RosterConfig{
				FetchTimeout:   cfg.Web.RosterFetchTimeout,
				MaxConcurrency: cfg.Web.RosterMaxConcurrency,
			},
			SecureCookies: cfg.Web.CookieSecure,
		},
		logger.Component("web"),
	)

	e := api.NewRouter(api.Dependencies{
		JWTSecret:     cfg.JWTSecret,
		Auth:          authService,
		Registrations: regService,
		Characters:    charService,
		Dispatcher:    dispatcher,
		Web:           web,
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": mongodb.HealthCheck(mongoClient),
			"redis":   redisdb.HealthCheck(rdb),
		},
		Logger: logger.Component("http"),
	})

	// --- Graceful shutdown ---
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		serveErr <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced shutdown")
	}
	return nil
}
