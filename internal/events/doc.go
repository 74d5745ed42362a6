// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

// Package events carries dataset lifecycle events between the dataset store
// and the parts of the process that react to them (query cache, websocket
// hub) over an in-process Watermill gochannel pub/sub.
//
// The Bus implements dataset.Notifier, so the store publishes without
// knowing who listens:
//
//	bus := events.NewBus(events.DefaultBusConfig())
//	store.SetNotifier(bus)
//
//	router, _ := events.NewRouter(bus, events.DefaultRouterConfig())
//	router.OnReloaded("cache-invalidate", func(ctx context.Context, e events.DatasetReloaded) error {
//	    queryCache.Clear()
//	    return nil
//	})
//	go router.Run(ctx)
//
// Topics:
//
//	dataset.reloaded       a new snapshot was swapped in
//	dataset.reload_failed  a reload failed and the previous snapshot is still served
package events
