// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

// Package services adapts Blockbuster's long-running components to
// suture.Service so the supervisor tree can start, stop and restart them.
//
//	HTTPServerService   *http.Server
//	HubService          *websocket.Hub
//	EventRouterService  events.Router, rebuilt on every start
//	WatcherService      fsnotify on the dataset directory, debounced reload
//	RefreshService      gocron jobs for scheduled reload and cache pruning
//
// Every Serve returns ctx.Err() after a clean shutdown.
package services
