// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package models

import "time"

// Chart kinds understood by the dashboard.
const (
	ChartBar       = "bar"
	ChartLine      = "line"
	ChartStacked   = "stacked_bar"
	ChartHistogram = "histogram"
)

// Series is one named numeric series aligned with Chart.Labels.
type Series struct {
	Name   string    `json:"name"`
	Axis   string    `json:"axis,omitempty"`
	Values []float64 `json:"values"`
}

// Chart is a chart-ready series set: labels plus one or more series of the
// same length, already in display order.
type Chart struct {
	Kind   string   `json:"kind"`
	Title  string   `json:"title,omitempty"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// GenderShare is the male/female split of one group. FemaleFraction is
// always 1 - MaleFraction.
type GenderShare struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	Members        int     `json:"members"`
	Male           int     `json:"male"`
	MaleFraction   float64 `json:"male_fraction"`
	FemaleFraction float64 `json:"female_fraction"`
}

// HistogramBin counts values falling in [Lower, Upper). The last bin of a
// histogram also includes Upper.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Option is one selectable filter value. Value is "All" or an id.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Dimensions lists the filter options a dashboard offers.
type Dimensions struct {
	Languages []Option  `json:"languages"`
	Countries []Option  `json:"countries"`
	Directors []Option  `json:"directors"`
	Studios   []Option  `json:"studios"`
	Metrics   []Option  `json:"metrics"`
	Modes     []Option  `json:"modes"`
	MinDate   time.Time `json:"min_release_date"`
	MaxDate   time.Time `json:"max_release_date"`
}
