// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/blockbuster/internal/analytics"
	"github.com/tomtom215/blockbuster/internal/cache"
	"github.com/tomtom215/blockbuster/internal/config"
	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/logging"
	ws "github.com/tomtom215/blockbuster/internal/websocket"
)

// DatasetStore is the snapshot holder the handlers read from and reload.
// *dataset.Store implements it.
type DatasetStore interface {
	Snapshot() (*dataset.Dataset, error)
	Reload(ctx context.Context, reason string) (*dataset.Dataset, error)
}

// Handler serves the dashboard API.
type Handler struct {
	engine    *analytics.Engine
	store     DatasetStore
	cache     *cache.Cache
	wsHub     *ws.Hub
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a handler. cache and hub may be nil: queries are then
// not cached and /ws answers 503.
func NewHandler(store DatasetStore, c *cache.Cache, hub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		engine:    analytics.NewEngine(store),
		store:     store,
		cache:     c,
		wsHub:     hub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// getUpgrader returns the websocket upgrader. The handshake is bounded so
// slow clients cannot hold connections open.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts only origins allowed by the CORS config.
// Browsers always send Origin on websocket handshakes, so a missing header
// is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}
	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
