// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/logging"
)

// Pruner drops expired entries. *cache.Cache satisfies it.
type Pruner interface {
	Prune() int
}

// RefreshConfig configures RefreshService. A zero interval disables the
// corresponding job.
type RefreshConfig struct {
	ReloadInterval time.Duration
	PruneInterval  time.Duration
}

// RefreshService runs periodic housekeeping on a gocron scheduler: a
// scheduled dataset reload and expiry of stale cache entries.
type RefreshService struct {
	cfg      RefreshConfig
	reloader Reloader
	pruner   Pruner
}

// NewRefreshService creates the service. reloader or pruner may be nil to
// skip that job.
func NewRefreshService(cfg RefreshConfig, reloader Reloader, pruner Pruner) *RefreshService {
	return &RefreshService{cfg: cfg, reloader: reloader, pruner: pruner}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	log := logging.WithComponent("refresh")
	jobs := 0

	if s.reloader != nil && s.cfg.ReloadInterval > 0 {
		_, err = scheduler.NewJob(
			gocron.DurationJob(s.cfg.ReloadInterval),
			gocron.NewTask(func() {
				// Failures are logged and published by the store.
				_, _ = s.reloader.Reload(ctx, dataset.ReasonSchedule)
			}),
			gocron.WithName("dataset-reload"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = scheduler.Shutdown()
			return fmt.Errorf("schedule dataset reload: %w", err)
		}
		jobs++
	}

	if s.pruner != nil && s.cfg.PruneInterval > 0 {
		_, err = scheduler.NewJob(
			gocron.DurationJob(s.cfg.PruneInterval),
			gocron.NewTask(func() {
				if n := s.pruner.Prune(); n > 0 {
					log.Debug().Int("expired", n).Msg("pruned query cache")
				}
			}),
			gocron.WithName("cache-prune"),
		)
		if err != nil {
			_ = scheduler.Shutdown()
			return fmt.Errorf("schedule cache prune: %w", err)
		}
		jobs++
	}

	log.Info().
		Int("jobs", jobs).
		Dur("reload_interval", s.cfg.ReloadInterval).
		Dur("prune_interval", s.cfg.PruneInterval).
		Msg("refresh scheduler started")

	scheduler.Start()
	<-ctx.Done()

	if err := scheduler.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("refresh scheduler shutdown")
	}
	return ctx.Err()
}

func (s *RefreshService) String() string {
	return "refresh-scheduler"
}
