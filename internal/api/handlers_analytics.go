// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/blockbuster/internal/analytics"
)

// view returns a handler for an endpoint that takes only the shared
// query parameters.
func (h *Handler) view(name string, run viewQueryFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, apiErr := parseQueryRequest(r)
		if apiErr != nil {
			respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
			return
		}
		h.executeView(w, r, req, name, run)
	}
}

// FilmRanking ranks films by the selected metric.
//
// @Summary Film ranking
// @Tags Rankings
// @Produce json
// @Param metric query string false "box_office, budget, benefit, oscar_nominations, oscar_wins"
// @Param mode query string false "Average or Total"
// @Param language query string false "All or LanguageID"
// @Param director query string false "All or DirectorID"
// @Param studio query string false "All or StudioID"
// @Param country query string false "All or CountryID"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Param limit query int false "chart entries"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /rankings/films [get]
func (h *Handler) FilmRanking(w http.ResponseWriter, r *http.Request) {
	h.view(analytics.QueryFilmRanking, h.engine.FilmRanking)(w, r)
}

// ActorRanking ranks actors by the selected metric over their films.
func (h *Handler) ActorRanking(w http.ResponseWriter, r *http.Request) {
	h.view(analytics.QueryActorRanking, h.engine.ActorRanking)(w, r)
}

// DirectorRanking ranks directors.
func (h *Handler) DirectorRanking(w http.ResponseWriter, r *http.Request) {
	h.view(analytics.QueryDirectorRanking, h.engine.DirectorRanking)(w, r)
}

// StudioRanking ranks studios.
func (h *Handler) StudioRanking(w http.ResponseWriter, r *http.Request) {
	h.view(analytics.QueryStudioRanking, h.engine.StudioRanking)(w, r)
}

// Evolution returns per-year box office, budget, benefit and film count.
//
// @Summary Yearly evolution
// @Tags Evolution
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /evolution [get]
func (h *Handler) Evolution(w http.ResponseWriter, r *http.Request) {
	h.view(analytics.QueryEvolution, h.engine.Evolution)(w, r)
}

// GenderByFilm returns the histogram of per-film male cast share.
func (h *Handler) GenderByFilm(w http.ResponseWriter, r *http.Request) {
	h.view(analytics.QueryGenderByFilm, h.engine.GenderByFilm)(w, r)
}

// GenderByYear returns male and female cast share per release year.
func (h *Handler) GenderByYear(w http.ResponseWriter, r *http.Request) {
	h.view(analytics.QueryGenderByYear, h.engine.GenderByYear)(w, r)
}

// GenderMetrics compares box office and budget by actor gender.
func (h *Handler) GenderMetrics(w http.ResponseWriter, r *http.Request) {
	h.view(analytics.QueryGenderMetrics, h.engine.GenderMetrics)(w, r)
}

// AgeBrackets aggregates the metric by age at release. subject selects
// actors (default) or directors.
//
// @Summary Age brackets
// @Tags Inclusivity
// @Produce json
// @Param subject query string false "actors or directors"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /age/brackets [get]
func (h *Handler) AgeBrackets(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseAgeRequest(r)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	subject := req.SubjectKind()
	name := analytics.QueryAgeBrackets + ":" + string(subject)
	h.executeView(w, r, req.QueryRequest, name, func(ctx context.Context, q analytics.Query) (*analytics.Result, error) {
		return h.engine.AgeBrackets(ctx, subject, q)
	})
}
