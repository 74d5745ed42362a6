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
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/logging"
)

// Topics.
const (
	TopicDatasetReloaded = "dataset.reloaded"
	TopicReloadFailed    = "dataset.reload_failed"
)

// Metadata keys set on every message.
const (
	MetadataReason  = "reason"
	MetadataVersion = "dataset_version"
)

// DatasetReloaded is published after a new snapshot is swapped in.
type DatasetReloaded struct {
	Version  string         `json:"version"`
	LoadedAt time.Time      `json:"loaded_at"`
	Source   string         `json:"source"`
	Reason   string         `json:"reason"`
	Tables   map[string]int `json:"tables"`
}

// ReloadFailed is published when a reload is rejected.
type ReloadFailed struct {
	Reason string    `json:"reason"`
	Error  string    `json:"error"`
	At     time.Time `json:"at"`
}

// BusConfig configures the in-process pub/sub.
type BusConfig struct {
	// OutputBuffer is the per-subscriber channel size.
	OutputBuffer int64
}

// DefaultBusConfig returns the production defaults.
func DefaultBusConfig() BusConfig {
	return BusConfig{OutputBuffer: 64}
}

// Bus publishes dataset events. It implements dataset.Notifier.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter
	now    func() time.Time
}

var _ dataset.Notifier = (*Bus)(nil)

// NewBus creates a bus logging through the process logger.
func NewBus(cfg BusConfig) *Bus {
	logger := watermill.NewSlogLogger(logging.NewSlogLogger())
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: cfg.OutputBuffer}, logger),
		logger: logger,
		now:    time.Now,
	}
}

// Publisher returns the underlying publisher.
func (b *Bus) Publisher() message.Publisher { return b.pubsub }

// Subscriber returns the underlying subscriber.
func (b *Bus) Subscriber() message.Subscriber { return b.pubsub }

// Close stops delivery to every subscriber.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// DatasetReloaded publishes TopicDatasetReloaded.
func (b *Bus) DatasetReloaded(ctx context.Context, ds *dataset.Dataset, reason string) {
	event := DatasetReloaded{
		Version:  ds.Version,
		LoadedAt: ds.LoadedAt,
		Source:   ds.Source,
		Reason:   reason,
		Tables:   ds.Tables(),
	}
	if err := b.publish(ctx, TopicDatasetReloaded, event, reason, ds.Version); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("topic", TopicDatasetReloaded).Msg("failed to publish dataset event")
	}
}

// ReloadFailed publishes TopicReloadFailed.
func (b *Bus) ReloadFailed(ctx context.Context, err error, reason string) {
	event := ReloadFailed{Reason: reason, Error: err.Error(), At: b.now().UTC()}
	if perr := b.publish(ctx, TopicReloadFailed, event, reason, ""); perr != nil {
		logging.Ctx(ctx).Error().Err(perr).Str("topic", TopicReloadFailed).Msg("failed to publish dataset event")
	}
}

func (b *Bus) publish(ctx context.Context, topic string, payload interface{}, reason, version string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataReason, reason)
	if version != "" {
		msg.Metadata.Set(MetadataVersion, version)
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	} else {
		middleware.SetCorrelationID(watermill.NewUUID(), msg)
	}
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
