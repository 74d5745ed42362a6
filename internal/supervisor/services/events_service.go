// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package services

import (
	"context"
	"fmt"

	"github.com/tomtom215/blockbuster/internal/events"
)

// RouterFactory builds a fully configured event router. A watermill
// router cannot run again after it stops, so each Serve call asks for a
// fresh one.
type RouterFactory func() (*events.Router, error)

// EventRouterService supervises the dataset event router.
type EventRouterService struct {
	build RouterFactory
}

// NewEventRouterService creates the service.
func NewEventRouterService(build RouterFactory) *EventRouterService {
	return &EventRouterService{build: build}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	router, err := s.build()
	if err != nil {
		return fmt.Errorf("build event router: %w", err)
	}
	defer router.Close()

	if err := router.Run(ctx); err != nil {
		return fmt.Errorf("event router: %w", err)
	}
	return ctx.Err()
}

func (s *EventRouterService) String() string {
	return "event-router"
}
