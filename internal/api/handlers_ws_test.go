// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/blockbuster/internal/cache"
	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/testinfra"
	ws "github.com/tomtom215/blockbuster/internal/websocket"
)

func startWSServer(t *testing.T, origins []string) (*httptest.Server, *ws.Hub, *dataset.Store) {
	t.Helper()
	store := dataset.NewStore(dataset.NewLoader(&dataset.CSVSource{Dir: testinfra.WriteFilmFixture(t), Delimiter: ','}, nil))
	if _, err := store.Reload(context.Background(), dataset.ReasonStartup); err != nil {
		t.Fatal(err)
	}

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	cfg := testConfig()
	cfg.Security.CORSOrigins = origins
	srv := httptest.NewServer(NewRouter(NewHandler(store, cache.New(time.Minute), hub, cfg)).SetupChi())
	t.Cleanup(srv.Close)
	return srv, hub, store
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws"
}

func TestWebSocketHelloAndBroadcast(t *testing.T) {
	srv, hub, store := startWSServer(t, []string{"http://dashboard.local"})

	header := http.Header{"Origin": []string{"http://dashboard.local"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	read := func() ws.Message {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage() error = %v", err)
		}
		var msg ws.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("bad frame %s: %v", data, err)
		}
		return msg
	}

	hello := read()
	if hello.Type != ws.MessageTypeHello {
		t.Fatalf("first frame type = %q, want hello", hello.Type)
	}
	data, _ := hello.Data.(map[string]interface{})
	if data["dataset_version"] != store.Current().Version {
		t.Errorf("hello version = %v, want %s", data["dataset_version"], store.Current().Version)
	}

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	hub.BroadcastDatasetReloaded(ws.DatasetReloadedData{Version: "v2", Reason: dataset.ReasonManual})
	if msg := read(); msg.Type != ws.MessageTypeDatasetReloaded {
		t.Errorf("frame type = %q, want %q", msg.Type, ws.MessageTypeDatasetReloaded)
	}
}

func TestWebSocketOriginCheck(t *testing.T) {
	srv, _, _ := startWSServer(t, []string{"http://dashboard.local"})

	tests := []struct {
		name   string
		origin string
	}{
		{"missing origin", ""},
		{"foreign origin", "http://evil.example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
			if err == nil {
				conn.Close()
				t.Fatal("Dial() succeeded, want rejection")
			}
			if resp == nil || resp.StatusCode != http.StatusForbidden {
				t.Errorf("response = %v, want 403", resp)
			}
		})
	}
}

func TestWebSocketWithoutHub(t *testing.T) {
	srv := newTestServer(t, testConfig(), true)
	rec, env := srv.do(t, http.MethodGet, "/api/v1/ws")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d, want 503", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("error = %+v", env.Error)
	}
}
