// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/blockbuster/internal/analytics"
	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/models"
	"github.com/tomtom215/blockbuster/internal/validation"
)

// QueryRequest holds the dashboard query parameters shared by every view
// endpoint.
//
//	metric      box_office | budget | benefit | oscar_nominations | oscar_wins
//	mode        Average | Total (also mean | sum)
//	language    All | <LanguageID>, likewise director, studio, country
//	start_date  YYYY-MM-DD or RFC3339, inclusive
//	end_date    YYYY-MM-DD or RFC3339, inclusive
//	limit       number of chart entries
type QueryRequest struct {
	Metric    string `query:"metric" validate:"omitempty,metric"`
	Mode      string `query:"mode" validate:"omitempty,mode"`
	Language  string `query:"language" validate:"omitempty,selection"`
	Director  string `query:"director" validate:"omitempty,selection"`
	Studio    string `query:"studio" validate:"omitempty,selection"`
	Country   string `query:"country" validate:"omitempty,selection"`
	StartDate string `query:"start_date" validate:"omitempty,date"`
	EndDate   string `query:"end_date" validate:"omitempty,date"`
	Limit     int    `query:"limit" validate:"min=0,max=1000"`
}

// AgeRequest adds the subject of the age bracket view.
type AgeRequest struct {
	QueryRequest
	Subject string `query:"subject" validate:"omitempty,oneof=actors directors"`
}

// parseQueryRequest reads and validates the shared parameters.
func parseQueryRequest(r *http.Request) (QueryRequest, *models.APIError) {
	values := r.URL.Query()
	req := QueryRequest{
		Metric:    values.Get("metric"),
		Mode:      values.Get("mode"),
		Language:  values.Get("language"),
		Director:  values.Get("director"),
		Studio:    values.Get("studio"),
		Country:   values.Get("country"),
		StartDate: values.Get("start_date"),
		EndDate:   values.Get("end_date"),
	}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return req, &models.APIError{
				Code:    validation.CodeValidationError,
				Message: "limit must be an integer",
				Details: map[string]interface{}{"field": "limit", "tag": "integer", "value": raw},
			}
		}
		req.Limit = limit
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		return req, apiErr
	}
	return req, nil
}

// parseAgeRequest reads the age bracket parameters.
func parseAgeRequest(r *http.Request) (AgeRequest, *models.APIError) {
	base, apiErr := parseQueryRequest(r)
	req := AgeRequest{QueryRequest: base, Subject: r.URL.Query().Get("subject")}
	if apiErr != nil {
		return req, apiErr
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		return req, apiErr
	}
	return req, nil
}

// SubjectKind maps the subject parameter to a view. Actors is the default.
func (a AgeRequest) SubjectKind() dataset.ViewKind {
	if a.Subject == "directors" {
		return dataset.ViewDirectors
	}
	return dataset.ViewCast
}

// Query converts a validated request into an engine query. Limits are
// clamped to maxLimit; zero takes defaultLimit.
func (q QueryRequest) Query(defaultLimit, maxLimit int) (analytics.Query, error) {
	var out analytics.Query
	var err error

	if q.Metric != "" {
		if out.Metric, err = analytics.ParseMetric(q.Metric); err != nil {
			return out, err
		}
	}
	if out.Reducer, err = analytics.ParseReducer(q.Mode); err != nil {
		return out, err
	}

	selections := []struct {
		raw string
		dst *analytics.Selection
	}{
		{q.Language, &out.Criteria.Language},
		{q.Director, &out.Criteria.Director},
		{q.Studio, &out.Criteria.Studio},
		{q.Country, &out.Criteria.Country},
	}
	for _, s := range selections {
		if *s.dst, err = analytics.ParseSelection(s.raw); err != nil {
			return out, err
		}
	}

	if q.StartDate != "" {
		start, err := validation.ParseDate(q.StartDate)
		if err != nil {
			return out, err
		}
		out.Criteria.Dates.Start = &start
	}
	if q.EndDate != "" {
		end, err := validation.ParseDate(q.EndDate)
		if err != nil {
			return out, err
		}
		out.Criteria.Dates.End = &end
	}

	out.Limit = q.Limit
	if out.Limit == 0 {
		out.Limit = defaultLimit
	}
	if maxLimit > 0 && out.Limit > maxLimit {
		out.Limit = maxLimit
	}
	return out, nil
}
