// Command portal runs the session agent of the legal clinic portal.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables.
//  2. Initialise the zerolog logger.
//  3. Open the durable session store (memory, Redis or MongoDB).
//  4. Build the backend client and the session controller.
//  5. Restore the persisted session before accepting requests.
//  6. Start the inactivity watchdog and the activity pump.
//  7. Serve the local bridge with graceful shutdown.
//
// @title        Portal Session Agent
// @version      1.0
// @description  Local bridge between the legal clinic portal UI and its session controller.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/consultorio-juridico/portal-session/internal/api"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
	"github.com/consultorio-juridico/portal-session/internal/core/service"
	"github.com/consultorio-juridico/portal-session/internal/infrastructure/backend"
	"github.com/consultorio-juridico/portal-session/internal/infrastructure/config"
	"github.com/consultorio-juridico/portal-session/internal/infrastructure/db/memory"
	mongostore "github.com/consultorio-juridico/portal-session/internal/infrastructure/db/mongo"
	redisstore "github.com/consultorio-juridico/portal-session/internal/infrastructure/db/redis"
	"github.com/consultorio-juridico/portal-session/internal/infrastructure/http/handlers"
	"github.com/consultorio-juridico/portal-session/internal/infrastructure/queue"
	"github.com/consultorio-juridico/portal-session/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Fatal().Err(err).Msg("portal session agent stopped")
	}
}

func run(ctx context.Context) error {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log.Info().
		Str("env", cfg.Env).
		Str("store", cfg.Session.Store).
		Str("backend", cfg.API.BaseURL).
		Msg("configuration loaded")

	// ── 3. Session store ──────────────────────────────────────────────────
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	store, closeStore, err := openStore(startupCtx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// ── 4. Backend and controller ─────────────────────────────────────────
	client, err := backend.NewClient(backend.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, logger.Component("backend"))
	if err != nil {
		return err
	}

	controller := service.NewSessionController(client, store, service.Options{
		InactivityTimeout: cfg.Session.InactivityTimeout,
		ActivityThrottle:  cfg.Session.ActivityThrottle,
		WatchdogInterval:  cfg.Session.WatchdogInterval,
		ExposeResetToken:  cfg.IsDevelopment(),
	}, logger.Component("session"))

	// ── 5. Restore ────────────────────────────────────────────────────────
	controller.Restore(ctx)

	// ── 6. Background workers ─────────────────────────────────────────────
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	watchdogDone := make(chan struct{})
	go func() {
		defer close(watchdogDone)
		controller.Run(workerCtx)
	}()

	pump := queue.NewActivityPump(0, controller, logger.Component("activity"))
	pump.Start(workerCtx)

	// ── 7. Bridge ─────────────────────────────────────────────────────────
	e := api.NewRouter(api.Deps{
		Controller:  controller,
		Activity:    pump,
		BridgeToken: cfg.BridgeToken,
		Probes:      map[string]handlers.Pinger{"session_store": store, "backend": client},
		Logger:      logger.Component("bridge"),
		Swagger:     cfg.EnableSwagger,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.BridgeAddr).Msg("bridge listening")
		if err := e.Start(cfg.BridgeAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		log.Error().Err(err).Msg("bridge failed")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("bridge shutdown error")
	}

	stopWorkers()
	<-pump.Done()
	<-watchdogDone

	log.Info().Msg("portal session agent stopped cleanly")
	return nil
}

// openStore connects the configured session store. The returned func
// releases its connection.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewSessionStore(rdb, cfg.Session.Namespace), func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close error")
			}
		}, nil

	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		return mongostore.NewSessionStore(db, cfg.Session.Namespace), func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect error")
			}
		}, nil

	case config.StoreMemory:
		log.Warn().Msg("memory session store selected, the session will not survive a restart")
		return memory.NewSessionStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
}
