// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

/*
Package middleware holds the HTTP middleware shared by every route.

  - RequestID: accepts or generates X-Request-ID and stores it in the
    request context for logging.Ctx.
  - AccessLog: one zerolog line per request; 5xx at error, slow requests at
    warn.
  - PrometheusMetrics: request counts and latency labelled by chi route
    pattern so path parameters do not explode cardinality.

CORS, rate limiting, compression and panic recovery come from go-chi and
are wired in the api package.
*/
package middleware
