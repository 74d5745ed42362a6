// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/logging"
)

// Reloader rebuilds and swaps the served snapshot. *dataset.Store
// satisfies it.
type Reloader interface {
	Reload(ctx context.Context, reason string) (*dataset.Dataset, error)
}

// DefaultDebounce is used when WatcherConfig.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

// WatcherConfig configures WatcherService.
type WatcherConfig struct {
	// Dir is the dataset directory. Subdirectories are watched too, since
	// tables may live below it.
	Dir string

	// Paths are table files outside Dir, such as the DuckDB database. Their
	// parent directories are watched for changes to these files only.
	Paths []string

	// Debounce is the quiet period after the last change before reloading.
	// Editors and exporters usually write several files in a burst.
	Debounce time.Duration
}

// WatcherService reloads the dataset when files in its directory tree change.
// Reload failures are logged by the store and the watch continues.
type WatcherService struct {
	cfg      WatcherConfig
	reloader Reloader
}

// NewWatcherService creates the service.
func NewWatcherService(cfg WatcherConfig, reloader Reloader) *WatcherService {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &WatcherService{cfg: cfg, reloader: reloader}
}

// Serve implements suture.Service.
func (s *WatcherService) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create dataset watcher: %w", err)
	}
	defer watcher.Close()

	watched, err := s.addWatches(watcher)
	if err != nil {
		return err
	}

	log := logging.WithComponent("dataset-watcher")
	log.Info().Strs("dirs", watched).Dur("debounce", s.cfg.Debounce).Msg("watching dataset files")

	timer := time.NewTimer(s.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false
	arm := func() {
		if pending && !timer.Stop() {
			<-timer.C
		}
		timer.Reset(s.cfg.Debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("dataset watcher closed")
			}
			if event.Has(fsnotify.Create) && s.inDir(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if strings.HasPrefix(info.Name(), ".") {
						continue
					}
					if err := s.watchTree(watcher, event.Name, nil); err != nil {
						log.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
					// Files moved in along with the directory raise no events.
					log.Debug().Str("dir", event.Name).Msg("dataset directory added")
					arm()
					continue
				}
			}
			if !relevant(event) || !s.covers(event.Name) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("dataset file changed")
			arm()

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("dataset watcher closed")
			}
			log.Warn().Err(err).Msg("dataset watcher error")

		case <-timer.C:
			pending = false
			if _, err := s.reloader.Reload(ctx, dataset.ReasonWatch); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

// addWatches registers Dir with its subdirectories and the parents of Paths.
func (s *WatcherService) addWatches(w *fsnotify.Watcher) ([]string, error) {
	var watched []string
	if s.cfg.Dir != "" {
		if err := s.watchTree(w, s.cfg.Dir, &watched); err != nil {
			return nil, err
		}
	}
	for _, p := range s.cfg.Paths {
		if p == "" || s.inDir(p) {
			continue
		}
		dir := filepath.Dir(p)
		if err := w.Add(dir); err != nil {
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		watched = append(watched, dir)
	}
	if len(watched) == 0 {
		return nil, errors.New("dataset watcher has nothing to watch")
	}
	return watched, nil
}

// watchTree adds root and every non-hidden directory below it.
func (s *WatcherService) watchTree(w *fsnotify.Watcher, root string, watched *[]string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		if watched != nil {
			*watched = append(*watched, path)
		}
		return nil
	})
}

// inDir reports whether name lies under Dir.
func (s *WatcherService) inDir(name string) bool {
	if s.cfg.Dir == "" {
		return false
	}
	rel, err := filepath.Rel(s.cfg.Dir, name)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// covers reports whether a change to name affects the dataset.
func (s *WatcherService) covers(name string) bool {
	if s.inDir(name) {
		return true
	}
	clean := filepath.Clean(name)
	for _, p := range s.cfg.Paths {
		if p != "" && filepath.Clean(p) == clean {
			return true
		}
	}
	return false
}

func (s *WatcherService) String() string {
	return "dataset-watcher"
}

// relevant reports whether event touches a table file.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".csv", ".duckdb", ".db":
		return true
	}
	return false
}
