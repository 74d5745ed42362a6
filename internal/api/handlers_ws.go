// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package api

import (
	"net/http"

	"github.com/tomtom215/blockbuster/internal/logging"
	ws "github.com/tomtom215/blockbuster/internal/websocket"
)

// WebSocket upgrades the connection and subscribes it to dataset events.
// The first frame is a hello carrying the version being served so the
// dashboard can tell whether its data is current.
//
// @Summary Dataset event stream
// @Tags Core
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	hello := ws.HelloData{}
	if ds, err := h.store.Snapshot(); err == nil {
		hello.DatasetVersion = ds.Version
	}
	client := ws.NewClient(h.wsHub, conn, &ws.Message{Type: ws.MessageTypeHello, Data: hello})
	if err := h.wsHub.Register(client); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket connection rejected")
		_ = conn.Close()
		return
	}
	client.Start()
}
