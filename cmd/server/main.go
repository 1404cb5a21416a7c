package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanshika/worldsporta/backend/internal/config"
	"github.com/vanshika/worldsporta/backend/internal/generator"
	"github.com/vanshika/worldsporta/backend/internal/kv"
	"github.com/vanshika/worldsporta/backend/internal/logging"
	"github.com/vanshika/worldsporta/backend/internal/repository"
	"github.com/vanshika/worldsporta/backend/internal/server"
	"github.com/vanshika/worldsporta/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ns, err := kv.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := ns.Close(); err != nil {
			logger.Warn("closing storage failed", "error", err)
		}
	}()
	logger.Info("storage ready", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	repo := repository.New(ns, logger)
	site := service.NewSiteService(ctx, repo, generator.Defaults(time.Now(), cfg.Seed.AdminPassword), logger)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.StorageHealthService{Namespace: ns},
		API:              server.NewAPIHandlers(logger, site),
		AllowedOrigins:   cfg.HTTP.AllowedOrigins(),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
		stop()
		os.Exit(1)
	}
	logger.Info("server stopped")
}
