// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

/*
Package main runs the Blockbuster server.

Blockbuster loads a film dataset (films, cast, people, studios, languages,
countries) from CSV files or a DuckDB database, keeps it in memory as an
immutable snapshot and serves box-office rankings, yearly evolution,
inclusivity and age views over a JSON API.

# Supervision

	blockbuster
	├── data-layer
	│   ├── dataset-watcher     (RELOAD_WATCH=true)
	│   └── refresh-scheduler   interval reloads, cache pruning
	├── messaging-layer
	│   ├── websocket-hub
	│   └── event-router        cache invalidation, dashboard broadcasts
	└── api-layer
	    └── http-server

The dataset is loaded once before the tree starts. Startup fails if that
load fails; later reload failures keep the previous snapshot.

# Configuration

Defaults, then config.yaml, then environment variables:

	DATASET_DIR=./data           tbl<Entity>.csv files
	DATASET_SOURCE=csv           csv or duckdb
	DATASET_DUCKDB_PATH=         database file for the duckdb source
	RELOAD_WATCH=false
	RELOAD_INTERVAL=0            0 disables scheduled reloads
	HTTP_PORT=8050
	CORS_ORIGINS=*
	CACHE_ENABLED=true
	CACHE_TTL=5m
	LOG_LEVEL=info
	LOG_FORMAT=json

# Shutdown

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
HTTP_SHUTDOWN_TIMEOUT, and services that do not stop in time are logged.
*/
package main
