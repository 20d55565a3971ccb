// Command bureau extracts, stores and serves credit bureau reports.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/cache/redis"
	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/xmltree"
	"github.com/custodia-labs/bureau-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bureau-cli/internal/core/services"
	"github.com/custodia-labs/bureau-cli/internal/extractors"
	"github.com/custodia-labs/bureau-cli/internal/logger"
)

const cachePingTimeout = 2 * time.Second

func main() {
	if err := file.LoadDotEnv(""); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading .env: %v\n", err)
		os.Exit(1)
	}

	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires config, storage, the extraction engine and services.
func bootstrap(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(settings)
	if err != nil {
		return nil, err
	}

	store, closeCache := withCache(store, settings.Cache)

	engine := extractors.NewEngine(xmltree.New())

	return &cli.Services{
		Ingest:   services.NewIngestService(engine, store),
		Reports:  services.NewReportService(store, settings.Reports.PageSize),
		Settings: settingsService,
		Close: func() error {
			return errors.Join(closeCache(), closeStore())
		},
	}, nil
}

// openStore opens the ReportStore selected by the storage driver.
func openStore(settings *domain.AppSettings) (driven.ReportStore, func() error, error) {
	switch settings.Storage.Driver {
	case domain.StorageMemory:
		logger.Debug("Using in-memory report store")
		return memory.NewReportStore(), noop, nil

	case domain.StoragePostgres:
		store, err := postgres.NewStore(settings.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres store: %w", err)
		}
		logger.Debug("Using postgres report store")
		return store, store.Close, nil

	case domain.StorageSQLite:
		store, err := sqlite.NewStore(settings.Storage.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Debug("Using sqlite report store at %s", store.Path())
		return store.ReportStore(), store.Close, nil

	default:
		return nil, nil, fmt.Errorf("storage driver %q: %w", settings.Storage.Driver, domain.ErrUnsupportedType)
	}
}

// withCache wraps store with the Redis cache when one is configured and reachable.
func withCache(store driven.ReportStore, cfg domain.CacheSettings) (driven.ReportStore, func() error) {
	if !cfg.Enabled() {
		return store, noop
	}

	cache := redis.NewReportCache(redis.NewClient(cfg.RedisAddr), store, time.Duration(cfg.TTLSeconds)*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), cachePingTimeout)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("Redis at %s unavailable, continuing without cache: %v", cfg.RedisAddr, err)
		cache.Close() //nolint:errcheck
		return store, noop
	}

	logger.Debug("Caching reports in redis at %s", cfg.RedisAddr)
	return cache, cache.Close
}

func noop() error { return nil }
