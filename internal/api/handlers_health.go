// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/blockbuster/internal/models"
)

// Health reports process and dataset status. It always answers 200; a
// process without a snapshot is "degraded".
//
// @Summary Health check
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status: "healthy",
		Uptime: time.Since(h.startTime).Seconds(),
	}
	if ds, err := h.store.Snapshot(); err == nil {
		status.DatasetLoaded = true
		status.DatasetVersion = ds.Version
		status.LoadedAt = ds.LoadedAt
	} else {
		status.Status = "degraded"
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     status,
		Metadata: models.Metadata{Timestamp: time.Now(), DatasetVersion: status.DatasetVersion},
	})
}

// HealthLive answers 200 while the process is running.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]interface{}{"alive": true, "uptime_seconds": time.Since(h.startTime).Seconds()},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady answers 503 until a snapshot is being served.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ds, err := h.store.Snapshot()
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "not_ready",
			Data:     map[string]interface{}{"dataset_loaded": false},
			Metadata: models.Metadata{Timestamp: time.Now()},
		})
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "ready",
		Data:     map[string]interface{}{"dataset_loaded": true, "loaded_at": ds.LoadedAt},
		Metadata: models.Metadata{Timestamp: time.Now(), DatasetVersion: ds.Version},
	})
}
