// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

/*
Package websocket pushes dataset lifecycle events to connected dashboards.

Dashboards never receive chart data over the socket. They receive a
dataset_reloaded frame carrying the new snapshot version and refetch their
charts over HTTP, or a dataset_reload_failed frame when a reload was rejected
and the previous snapshot keeps serving.

Frames:

	{"type":"hello","data":{"dataset_version":"..."}}
	{"type":"dataset_reloaded","data":{"version":"...","loaded_at":"...","reason":"watch","tables":{"Film":3}}}
	{"type":"dataset_reload_failed","data":{"reason":"schedule","error":"...","at":"..."}}
	{"type":"pong"}

Clients may send {"type":"ping"} at any time. The server also sends protocol
pings every 54 seconds and drops clients that miss the 60 second pong window.

The Hub owns every client's send channel: it is the only writer that closes
it, either on unregister, when a client's buffer overflows, or when Run
returns on shutdown.
*/
package websocket
