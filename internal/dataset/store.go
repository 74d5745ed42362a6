// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/blockbuster/internal/logging"
	"github.com/tomtom215/blockbuster/internal/metrics"
)

// Reload reasons used in logs, metrics and events.
const (
	ReasonStartup  = "startup"
	ReasonWatch    = "watch"
	ReasonSchedule = "schedule"
	ReasonManual   = "manual"
)

// Notifier is told about reload outcomes. Implementations must not block.
type Notifier interface {
	DatasetReloaded(ctx context.Context, ds *Dataset, reason string)
	ReloadFailed(ctx context.Context, err error, reason string)
}

// Store holds the snapshot being served. Readers call Current and never
// block; Reload builds a complete replacement and swaps it in only if the
// load succeeded, so a failed reload leaves the previous snapshot serving.
type Store struct {
	loader  *Loader
	current atomic.Pointer[Dataset]

	// reloadMu serializes reloads; readers never take it.
	reloadMu sync.Mutex

	notifierMu sync.RWMutex
	notifier   Notifier
}

// NewStore creates an empty store. Call Reload to load the first snapshot.
func NewStore(loader *Loader) *Store {
	return &Store{loader: loader}
}

// SetNotifier registers the reload notifier.
func (s *Store) SetNotifier(n Notifier) {
	s.notifierMu.Lock()
	defer s.notifierMu.Unlock()
	s.notifier = n
}

// Current returns the snapshot being served, or nil before the first load.
func (s *Store) Current() *Dataset {
	return s.current.Load()
}

// Snapshot returns the current snapshot or ErrNotLoaded.
func (s *Store) Snapshot() (*Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	return ds, nil
}

// Swap installs ds directly and returns the previous snapshot.
func (s *Store) Swap(ds *Dataset) *Dataset {
	return s.current.Swap(ds)
}

// Reload loads a fresh snapshot and swaps it in.
func (s *Store) Reload(ctx context.Context, reason string) (*Dataset, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	sourceName := s.loader.Source().Name()
	start := time.Now()
	ds, err := s.loader.Load(ctx)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordDatasetLoad(sourceName, reason, elapsed, nil, err)
		logging.Ctx(ctx).Error().
			Err(err).
			Str("reason", reason).
			Str("source", sourceName).
			Bool("serving_previous", s.current.Load() != nil).
			Msg("Dataset load failed")
		if n := s.getNotifier(); n != nil {
			n.ReloadFailed(ctx, err, reason)
		}
		return nil, err
	}

	previous := s.current.Swap(ds)
	tables := ds.Tables()
	metrics.RecordDatasetLoad(sourceName, reason, elapsed, tables, nil)

	event := logging.Ctx(ctx).Info().
		Str("reason", reason).
		Str("source", sourceName).
		Str("version", ds.Version).
		Dur("elapsed", elapsed)
	for _, entity := range Entities {
		event = event.Int(entity, tables[entity])
	}
	if previous != nil {
		event = event.Str("replaced_version", previous.Version)
	}
	event.Msg("Dataset loaded")

	if n := s.getNotifier(); n != nil {
		n.DatasetReloaded(ctx, ds, reason)
	}
	return ds, nil
}

func (s *Store) getNotifier() Notifier {
	s.notifierMu.RLock()
	defer s.notifierMu.RUnlock()
	return s.notifier
}
