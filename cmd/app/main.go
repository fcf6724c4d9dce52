package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/averyk/lifequest/internal/activity"
	"github.com/averyk/lifequest/internal/character"
	"github.com/averyk/lifequest/internal/config"
	"github.com/averyk/lifequest/internal/database"
	"github.com/averyk/lifequest/internal/database/postgres"
	"github.com/averyk/lifequest/internal/event"
	"github.com/averyk/lifequest/internal/logger"
	"github.com/averyk/lifequest/internal/metrics"
	"github.com/averyk/lifequest/internal/server"
	"github.com/averyk/lifequest/internal/tree"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false))

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, warning := range warnings {
		slog.Warn(warning)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(),
		database.DefaultMaxConnections, 5*time.Minute, 30*time.Minute)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus := event.NewMemoryBus()
	metrics.NewEventMetricsCollector().Register(eventBus)

	characterRepo := postgres.NewCharacterRepository(dbPool)
	activityRepo := postgres.NewActivityRepository(dbPool)
	treeRepo := postgres.NewTreeRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)

	characterService := character.NewService(characterRepo, skillRepo)
	activityService := activity.NewService(activityRepo, eventBus)
	treeService := tree.NewService(treeRepo, characterRepo, eventBus)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool,
		characterService, activityService, treeService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced to shut down", "error", err)
	}

	slog.Info("Server stopped")
}
