// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package services

import "context"

// Hub is a component whose main loop runs until ctx is cancelled.
// *websocket.Hub satisfies it.
type Hub interface {
	Run(ctx context.Context) error
}

// HubService supervises the websocket hub.
type HubService struct {
	hub Hub
}

// NewHubService wraps hub.
func NewHubService(hub Hub) *HubService {
	return &HubService{hub: hub}
}

// Serve implements suture.Service.
func (s *HubService) Serve(ctx context.Context) error {
	return s.hub.Run(ctx)
}

func (s *HubService) String() string {
	return "websocket-hub"
}
