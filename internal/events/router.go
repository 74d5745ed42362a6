// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"

	"github.com/tomtom215/blockbuster/internal/logging"
)

// RouterConfig configures handler execution.
type RouterConfig struct {
	// CloseTimeout is how long Close waits for running handlers.
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

// DefaultRouterConfig returns the production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
	}
}

// Router dispatches bus events to registered handlers. A handler error is
// retried; a handler panic is recovered and treated as an error. Handlers
// must be registered before Run.
type Router struct {
	router     *message.Router
	subscriber message.Subscriber
	logger     watermill.LoggerAdapter
}

// NewRouter creates a router consuming from bus.
func NewRouter(bus *Bus, cfg RouterConfig) (*Router, error) {
	wm, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, bus.logger)
	if err != nil {
		return nil, fmt.Errorf("create event router: %w", err)
	}
	wm.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      2,
		Logger:          bus.logger,
	}
	wm.AddMiddleware(retry.Middleware)

	return &Router{router: wm, subscriber: bus.Subscriber(), logger: bus.logger}, nil
}

// OnReloaded registers fn for TopicDatasetReloaded.
func (r *Router) OnReloaded(name string, fn func(context.Context, DatasetReloaded) error) {
	r.router.AddNoPublisherHandler(name, TopicDatasetReloaded, r.subscriber, decode(name, fn))
}

// OnReloadFailed registers fn for TopicReloadFailed.
func (r *Router) OnReloadFailed(name string, fn func(context.Context, ReloadFailed) error) {
	r.router.AddNoPublisherHandler(name, TopicReloadFailed, r.subscriber, decode(name, fn))
}

// decode adapts a typed handler. Undecodable payloads are logged and acked
// since retrying cannot fix them.
func decode[T any](name string, fn func(context.Context, T) error) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		var event T
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			logging.Error().Err(err).Str("handler", name).Str("message_uuid", msg.UUID).Msg("dropping undecodable event")
			return nil
		}
		return fn(msg.Context(), event)
	}
}

// Run blocks until ctx is canceled or the router is closed.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router and waits up to CloseTimeout for handlers.
func (r *Router) Close() error {
	return r.router.Close()
}
