// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

// Package validation validates API request structs with
// go-playground/validator and converts failures to the API error envelope.
//
// Besides the built-in tags it registers:
//
//	metric     a metric name or alias accepted by analytics.ParseMetric
//	mode       mean/sum or Average/Total
//	selection  "All" or a numeric dimension id
//	date       YYYY-MM-DD or RFC3339
//
// Usage:
//
//	type rankingRequest struct {
//	    Metric string `query:"metric" validate:"omitempty,metric"`
//	    Limit  int    `query:"limit" validate:"min=0,max=500"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
