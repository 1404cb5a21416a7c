package main

import (
	"context"
	"flag"
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
	"github.com/vanshika/worldsporta/backend/internal/service"
)

func main() {
	var (
		datasetDir = flag.String("dataset-dir", "./seed-data", "Directory containing one JSON file per collection")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	dataset, err := generator.ReadDataset(*datasetDir)
	if err != nil {
		logger.Error("failed to read dataset", "error", err, "dir", *datasetDir)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

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
	if err := ns.Ping(ctx); err != nil {
		logger.Error("storage not reachable", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	repo := repository.New(ns, logger)
	importer := service.NewBulkImporter(repo, *workers, logger)

	start := time.Now()
	logger.Info("importing dataset", "backend", cfg.Storage.Backend, "workers", *workers)
	if err := importer.Import(ctx, dataset.Snapshot()); err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	logger.Info("import complete",
		"duration", time.Since(start).String(),
		"news", len(dataset.News),
		"scores", len(dataset.Scores),
		"products", len(dataset.Products),
		"users", len(dataset.Users),
		"orders", len(dataset.Orders),
	)
}
