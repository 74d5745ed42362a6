// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/blockbuster/internal/middleware"
)

// SlowRequestThreshold marks requests logged at warn level.
const SlowRequestThreshold = time.Second

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for h using the handler's security config.
func NewRouter(h *Handler) *Router {
	return &Router{
		handler:       h,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFrom(h.config.Security)),
	}
}

// SetupChi builds the HTTP handler.
//
//	/api/v1/health          liveness, readiness
//	/api/v1/dataset         snapshot summary, manual reload
//	/api/v1/dimensions      filter options
//	/api/v1/rankings/*      films, actors, directors, studios
//	/api/v1/evolution       yearly series
//	/api/v1/inclusivity/*   gender views
//	/api/v1/age/brackets    age at release
//	/api/v1/ws              dataset event stream
//	/metrics                prometheus
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(SlowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/dataset", h.Dataset)
		r.With(router.chiMiddleware.RateLimitCustom(RateLimitReload)).Post("/dataset/reload", h.ReloadDataset)
		r.Get("/dimensions", h.Dimensions)

		r.Route("/rankings", func(r chi.Router) {
			r.Get("/films", h.FilmRanking)
			r.Get("/actors", h.ActorRanking)
			r.Get("/directors", h.DirectorRanking)
			r.Get("/studios", h.StudioRanking)
		})
		r.Get("/evolution", h.Evolution)
		r.Route("/inclusivity", func(r chi.Router) {
			r.Get("/films", h.GenderByFilm)
			r.Get("/years", h.GenderByYear)
			r.Get("/genders", h.GenderMetrics)
		})
		r.Get("/age/brackets", h.AgeBrackets)

		r.Get("/ws", h.WebSocket)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
