// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/blockbuster/internal/cache"
	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/models"
)

// Dataset returns a summary of the snapshot being served.
//
// @Summary Current dataset
// @Tags Dataset
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DatasetSummary}
// @Failure 503 {object} models.APIResponse
// @Router /dataset [get]
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ds, err := h.store.Snapshot()
	if err != nil {
		respondQueryError(w, r, err)
		return
	}
	resp := success(ds.Summary(), start)
	resp.Metadata.DatasetVersion = ds.Version
	respondJSON(w, http.StatusOK, resp)
}

// ReloadDataset re-reads every table and swaps the snapshot. On failure the
// previous snapshot keeps serving and the load error is reported.
//
// @Summary Reload dataset
// @Tags Dataset
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DatasetSummary}
// @Failure 500 {object} models.APIResponse
// @Router /dataset/reload [post]
func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ds, err := h.store.Reload(r.Context(), dataset.ReasonManual)
	if err != nil {
		details := map[string]interface{}{"error": err.Error()}
		var le *dataset.LoadError
		if errors.As(err, &le) {
			details["entity"] = le.Entity
			details["origin"] = le.Origin
			if le.Row > 0 {
				details["row"] = le.Row
			}
			if le.Column != "" {
				details["column"] = le.Column
			}
		}
		respondAPIError(w, r, http.StatusInternalServerError, &models.APIError{
			Code:    ErrCodeReloadFailed,
			Message: "Dataset reload failed; the previous snapshot is still being served",
			Details: details,
		}, err)
		return
	}
	resp := success(ds.Summary(), start)
	resp.Metadata.DatasetVersion = ds.Version
	respondJSON(w, http.StatusOK, resp)
}

// Dimensions lists the filter options and date bounds.
//
// @Summary Filter options
// @Tags Dataset
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.Dimensions}
// @Router /dimensions [get]
func (h *Handler) Dimensions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ds, err := h.store.Snapshot()
	if err != nil {
		respondQueryError(w, r, err)
		return
	}

	key := cache.GenerateKey("dimensions", ds.Version, nil)
	if h.cache != nil {
		if cached, ok := h.cache.Get(key); ok {
			resp := success(cached, start)
			resp.Metadata.Cached = true
			resp.Metadata.QueryTimeMS = 0
			resp.Metadata.DatasetVersion = ds.Version
			respondJSON(w, http.StatusOK, resp)
			return
		}
	}

	dims, err := h.engine.Dimensions(r.Context())
	if err != nil {
		respondQueryError(w, r, err)
		return
	}
	if h.cache != nil {
		h.cache.Set(key, dims)
	}
	resp := success(dims, start)
	resp.Metadata.DatasetVersion = ds.Version
	respondJSON(w, http.StatusOK, resp)
}
