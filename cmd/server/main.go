// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/blockbuster/internal/api"
	"github.com/tomtom215/blockbuster/internal/cache"
	"github.com/tomtom215/blockbuster/internal/config"
	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/events"
	"github.com/tomtom215/blockbuster/internal/logging"
	"github.com/tomtom215/blockbuster/internal/supervisor"
	"github.com/tomtom215/blockbuster/internal/supervisor/services"
	ws "github.com/tomtom215/blockbuster/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("source", cfg.Dataset.Source).
		Str("dir", cfg.Dataset.Dir).
		Bool("watch", cfg.Reload.Watch).
		Dur("reload_interval", cfg.Reload.Interval).
		Bool("cache", cfg.Cache.Enabled).
		Msg("Starting Blockbuster")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := newStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create dataset source")
	}

	// The first load is not supervised: without a snapshot there is nothing
	// to serve.
	ds, err := store.Reload(ctx, dataset.ReasonStartup)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}
	logging.Info().
		Str("version", ds.Version).
		Interface("tables", ds.Tables()).
		Msg("Dataset loaded")

	bus := events.NewBus(events.DefaultBusConfig())
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close event bus")
		}
	}()
	store.SetNotifier(bus)

	var resultCache *cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.New(cfg.Cache.TTL)
	}

	wsHub := ws.NewHub()

	handler := api.NewHandler(store, resultCache, wsHub, cfg)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler).SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer
	if cfg.Reload.Watch {
		wc := watcherConfig(cfg)
		tree.AddDataService(services.NewWatcherService(wc, store))
		logging.Info().Str("dir", wc.Dir).Strs("paths", wc.Paths).Msg("Dataset watcher added to supervisor tree")
	}
	var pruner services.Pruner
	if resultCache != nil {
		pruner = resultCache
	}
	tree.AddDataService(services.NewRefreshService(services.RefreshConfig{
		ReloadInterval: cfg.Reload.Interval,
		PruneInterval:  cfg.Cache.TTL,
	}, store, pruner))

	// Messaging layer
	tree.AddMessagingService(services.NewHubService(wsHub))
	tree.AddMessagingService(services.NewEventRouterService(func() (*events.Router, error) {
		return newEventRouter(bus, resultCache, wsHub)
	}))

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newStore builds the dataset store for the configured source. It does not
// load anything.
func newStore(cfg *config.Config) (*dataset.Store, error) {
	src, err := dataset.NewSource(&cfg.Dataset)
	if err != nil {
		return nil, err
	}
	return dataset.NewStore(dataset.NewLoader(src, cfg.Dataset.DateLayouts)), nil
}

// watcherConfig points the watcher at the files the configured source reads.
// A DuckDB database file replaces the CSV directory.
func watcherConfig(cfg *config.Config) services.WatcherConfig {
	wc := services.WatcherConfig{Dir: cfg.Dataset.Dir, Debounce: cfg.Reload.Debounce}
	if cfg.Dataset.Source == config.SourceDuckDB && cfg.Dataset.DuckDBPath != "" {
		wc.Dir = ""
		wc.Paths = []string{cfg.Dataset.DuckDBPath}
	}
	return wc
}

// newEventRouter subscribes the reload consumers: cached results are dropped
// and connected dashboards are told to refetch. c may be nil.
func newEventRouter(bus *events.Bus, c *cache.Cache, hub *ws.Hub) (*events.Router, error) {
	router, err := events.NewRouter(bus, events.DefaultRouterConfig())
	if err != nil {
		return nil, err
	}

	if c != nil {
		router.OnReloaded("cache-invalidate", func(ctx context.Context, ev events.DatasetReloaded) error {
			n := c.Clear()
			logging.Ctx(ctx).Debug().Int("entries", n).Str("version", ev.Version).Msg("Result cache cleared")
			return nil
		})
	}

	router.OnReloaded("ws-reloaded", func(_ context.Context, ev events.DatasetReloaded) error {
		hub.BroadcastDatasetReloaded(ws.DatasetReloadedData{
			Version:  ev.Version,
			LoadedAt: ev.LoadedAt,
			Reason:   ev.Reason,
			Tables:   ev.Tables,
		})
		return nil
	})

	router.OnReloadFailed("ws-reload-failed", func(_ context.Context, ev events.ReloadFailed) error {
		hub.BroadcastReloadFailed(ws.ReloadFailedData{
			Reason: ev.Reason,
			Error:  ev.Error,
			At:     ev.At,
		})
		return nil
	})

	return router, nil
}
