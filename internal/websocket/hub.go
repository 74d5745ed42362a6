// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/blockbuster/internal/logging"
	"github.com/tomtom215/blockbuster/internal/metrics"
)

// Message types sent to dashboards.
const (
	MessageTypeHello              = "hello"
	MessageTypePing               = "ping"
	MessageTypePong               = "pong"
	MessageTypeDatasetReloaded    = "dataset_reloaded"
	MessageTypeDatasetReloadError = "dataset_reload_failed"
)

// broadcastBuffer is the number of queued broadcasts before new ones are
// dropped.
const broadcastBuffer = 256

// Message is the websocket frame envelope.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// DatasetReloadedData tells dashboards a new snapshot is being served and
// cached charts must be refetched.
type DatasetReloadedData struct {
	Version  string         `json:"version"`
	LoadedAt time.Time      `json:"loaded_at"`
	Reason   string         `json:"reason"`
	Tables   map[string]int `json:"tables"`
}

// ReloadFailedData reports a reload that left the previous snapshot in place.
type ReloadFailedData struct {
	Reason string    `json:"reason"`
	Error  string    `json:"error"`
	At     time.Time `json:"at"`
}

// HelloData is sent to every client right after it connects.
type HelloData struct {
	DatasetVersion string `json:"dataset_version,omitempty"`
}

// Hub tracks connected dashboards and fans broadcasts out to them. All
// client map changes happen on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
}

// NewHub creates a hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// ErrHubStopped is returned when registering with a stopped hub.
var ErrHubStopped = errors.New("websocket hub stopped")

// Register adds c to the hub. It fails once the hub has stopped.
func (h *Hub) Register(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister removes c. It never blocks after the hub stopped.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run processes registrations and broadcasts until ctx is done, then closes
// every client. Registrations are drained before broadcasts so a client that
// just connected receives the next broadcast.
func (h *Hub) Run(ctx context.Context) error {
	defer h.stop()
	for {
		select {
		case c := <-h.register:
			h.add(c)
			continue
		case c := <-h.unregister:
			h.remove(c)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			n := h.closeAll()
			logging.Info().
				Str("component", "websocket-hub").
				Int("clients_closed", n).
				Msg("websocket hub stopped")
			return ctx.Err()
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.remove(c)
		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	n := len(h.clients)
	h.mu.Unlock()
	metrics.WSConnections.Set(float64(n))
	logging.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.WSConnections.Set(float64(n))
	logging.Debug().Uint64("client_id", c.id).Int("total_clients", n).Msg("websocket client disconnected")
}

// sortedClients must be called with mu held.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })
	return clients
}

// fanOut delivers msg to every client. Clients whose send buffer is full
// are disconnected.
func (h *Hub) fanOut(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.sortedClients() {
		select {
		case c.send <- msg:
		default:
			logging.Warn().Uint64("client_id", c.id).Msg("websocket client too slow, disconnecting")
			close(c.send)
			delete(h.clients, c)
		}
	}
	metrics.WSConnections.Set(float64(len(h.clients)))
	metrics.RecordWSMessage(msg.Type)
}

func (h *Hub) closeAll() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.sortedClients()
	for _, c := range clients {
		close(c.send)
		delete(h.clients, c)
	}
	metrics.WSConnections.Set(0)
	return len(clients)
}

// Broadcast queues msg for every client. It drops the message when the
// queue is full rather than block the caller.
func (h *Hub) Broadcast(msg Message) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		logging.Warn().Str("message_type", msg.Type).Msg("broadcast channel full, dropping message")
		return false
	}
}

// BroadcastDatasetReloaded announces a new snapshot.
func (h *Hub) BroadcastDatasetReloaded(data DatasetReloadedData) bool {
	return h.Broadcast(Message{Type: MessageTypeDatasetReloaded, Data: data})
}

// BroadcastReloadFailed announces a failed reload.
func (h *Hub) BroadcastReloadFailed(data ReloadFailedData) bool {
	return h.Broadcast(Message{Type: MessageTypeDatasetReloadError, Data: data})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MarshalMessage encodes msg as a JSON frame.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
