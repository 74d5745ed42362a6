// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/blockbuster/internal/analytics"
	"github.com/tomtom215/blockbuster/internal/cache"
	"github.com/tomtom215/blockbuster/internal/models"
)

// viewQueryFunc runs one dashboard view.
type viewQueryFunc func(ctx context.Context, q analytics.Query) (*analytics.Result, error)

// executeView is the common path of every view endpoint: parse and
// validate, look in the cache, run the engine, store and respond.
//
// Cache keys include the snapshot version, so a reload never serves stale
// results even before the cache is cleared.
func (h *Handler) executeView(w http.ResponseWriter, r *http.Request, req QueryRequest, name string, run viewQueryFunc) {
	start := time.Now()

	q, err := req.Query(h.config.API.DefaultLimit, h.config.API.MaxLimit)
	if err != nil {
		respondQueryError(w, r, err)
		return
	}

	ds, err := h.store.Snapshot()
	if err != nil {
		respondQueryError(w, r, err)
		return
	}

	key := cache.GenerateKey(name, ds.Version, q)
	if h.cache != nil {
		if cached, ok := h.cache.Get(key); ok {
			if res, ok := cached.(*analytics.Result); ok {
				respondResult(w, res, start, true)
				return
			}
		}
	}

	res, err := run(r.Context(), q)
	if err != nil {
		respondQueryError(w, r, err)
		return
	}

	if h.cache != nil {
		// Store under the version actually queried; a reload may have
		// landed between Snapshot and run.
		h.cache.Set(cache.GenerateKey(name, res.DatasetVersion, q), res)
	}
	respondResult(w, res, start, false)
}

func respondResult(w http.ResponseWriter, res *analytics.Result, start time.Time, cached bool) {
	elapsed := time.Since(start).Milliseconds()
	if cached {
		elapsed = 0
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   res,
		Metadata: models.Metadata{
			Timestamp:      time.Now(),
			QueryTimeMS:    elapsed,
			Cached:         cached,
			DatasetVersion: res.DatasetVersion,
			Warnings:       res.Warnings(),
		},
	})
}
