// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package models

import (
	"time"
)

// APIResponse wraps every HTTP response body.
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "...", "query_time_ms": 2, "dataset_version": "..."}
//	}
//
// Status is "success" or "error"; Error is set only for the latter.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced. Warnings carries
// non-fatal conditions such as EMPTY_RESULT.
type Metadata struct {
	Timestamp      time.Time `json:"timestamp"`
	QueryTimeMS    int64     `json:"query_time_ms,omitempty"`
	Cached         bool      `json:"cached,omitempty"`
	DatasetVersion string    `json:"dataset_version,omitempty"`
	Warnings       []string  `json:"warnings,omitempty"`
}

// APIError is the machine-readable error body.
//
// Codes: VALIDATION_ERROR, INVALID_SELECTION, DATASET_UNAVAILABLE,
// RELOAD_FAILED, NOT_FOUND, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// DatasetSummary describes the snapshot currently being served.
type DatasetSummary struct {
	Version  string         `json:"version"`
	LoadedAt time.Time      `json:"loaded_at"`
	Source   string         `json:"source"`
	Tables   map[string]int `json:"tables"`
	MinDate  time.Time      `json:"min_release_date"`
	MaxDate  time.Time      `json:"max_release_date"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status         string    `json:"status"`
	DatasetLoaded  bool      `json:"dataset_loaded"`
	DatasetVersion string    `json:"dataset_version,omitempty"`
	LoadedAt       time.Time `json:"loaded_at,omitempty"`
	Uptime         float64   `json:"uptime_seconds"`
}
