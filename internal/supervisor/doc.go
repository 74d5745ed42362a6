// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

/*
Package supervisor runs Blockbuster's long-lived services under a suture v4
supervisor tree.

The tree has three layers so a failure in one does not take down the
others:

	blockbuster
	├── data-layer
	│   ├── WatcherService   (reload.watch: fsnotify on the dataset directory)
	│   └── RefreshService   (reload.interval: scheduled reload + cache prune)
	├── messaging-layer
	│   ├── EventRouterService (watermill router: cache invalidation, websocket fan-out)
	│   └── HubService         (websocket hub)
	└── api-layer
	    └── HTTPServerService

A crashed service is restarted with backoff. Supervisor events are written
to the zerolog stream through sutureslog and logging.NewSlogLogger.

The service wrappers live in the services subpackage.
*/
package supervisor
