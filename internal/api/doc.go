// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

/*
Package api is Blockbuster's HTTP interface: a chi router in front of the
analytics engine and the dataset store.

# Endpoints

All JSON endpoints live under /api/v1:

	GET  /health, /health/live, /health/ready
	GET  /dataset               summary of the snapshot being served
	POST /dataset/reload        re-read the tables and swap the snapshot
	GET  /dimensions            filter options and date bounds
	GET  /rankings/films        also actors, directors, studios
	GET  /evolution             per-year series
	GET  /inclusivity/films     male-share histogram; also years, genders
	GET  /age/brackets          ?subject=actors|directors
	GET  /ws                    websocket dataset events

/metrics serves Prometheus metrics.

# Query parameters

View endpoints share metric, mode, language, director, studio, country,
start_date, end_date and limit (see QueryRequest). Parameters are checked
with go-playground/validator before the engine runs.

# Responses

Every body is a models.APIResponse:

	{"status":"success","data":{...},"metadata":{"dataset_version":"...","warnings":["EMPTY_RESULT"]}}
	{"status":"error","error":{"code":"INVALID_SELECTION","message":"..."}}

Error codes map to statuses as follows: VALIDATION_ERROR and
INVALID_SELECTION 400, DATASET_UNAVAILABLE 503, RELOAD_FAILED and
INTERNAL_ERROR 500, TOO_MANY_REQUESTS 429.

# Caching

View results are cached by query name, dataset version and parameters.
metadata.cached is true for cache hits.
*/
package api
