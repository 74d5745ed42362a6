// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"sort"

	"github.com/tomtom215/blockbuster/internal/dataset"
)

// Spec describes one aggregation.
type Spec struct {
	Key     GroupKey
	Reducer Reducer
	Metrics []Metric
	// SortBy defaults to Metrics[0].
	SortBy Metric
}

// RankedRow is one group of a RankedTable. Values is aligned with
// RankedTable.Metrics. Count is the number of member rows in the group.
type RankedRow struct {
	Key    string    `json:"key"`
	Label  string    `json:"label"`
	Count  int       `json:"count"`
	Values []float64 `json:"values"`
}

// Value returns the value of metric m, or 0 if the table has no such column.
func (r RankedRow) Value(t *RankedTable, m Metric) float64 {
	if i := t.index(m); i >= 0 {
		return r.Values[i]
	}
	return 0
}

// RankedTable is the full aggregation result sorted descending by SortBy.
type RankedTable struct {
	View    string      `json:"view"`
	Key     GroupKey    `json:"group_by"`
	Reducer Reducer     `json:"reducer"`
	Metrics []Metric    `json:"metrics"`
	SortBy  Metric      `json:"sort_by"`
	Rows    []RankedRow `json:"rows"`
}

// Len returns the number of groups.
func (t *RankedTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Top returns the first n rows, or all rows when n <= 0 or n exceeds the
// table length.
func (t *RankedTable) Top(n int) []RankedRow {
	if t == nil {
		return nil
	}
	if n <= 0 || n >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:n]
}

// Column returns the values of metric m in rank order.
func (t *RankedTable) Column(m Metric) ([]float64, error) {
	i := t.index(m)
	if i < 0 {
		return nil, &ColumnNotFoundError{Column: string(m), View: t.View}
	}
	out := make([]float64, len(t.Rows))
	for j, r := range t.Rows {
		out[j] = r.Values[i]
	}
	return out, nil
}

// Labels returns the row labels in rank order.
func (t *RankedTable) Labels() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Label
	}
	return out
}

// Counts returns the member counts in rank order.
func (t *RankedTable) Counts() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = float64(r.Count)
	}
	return out
}

// Warning returns an EmptyResultWarning when the table has no groups.
func (t *RankedTable) Warning() *EmptyResultWarning {
	if t.Len() > 0 {
		return nil
	}
	view := ""
	if t != nil {
		view = t.View
	}
	return &EmptyResultWarning{View: view}
}

func (t *RankedTable) index(m Metric) int {
	for i, x := range t.Metrics {
		if x == m {
			return i
		}
	}
	return -1
}

type group struct {
	key, label string
	count      int
	sums       []float64
}

// Aggregate groups the rows of v by spec.Key, reduces each metric with
// spec.Reducer and sorts the groups descending by spec.SortBy. Ties keep
// first-appearance order. An empty view gives an empty table, not an error.
func Aggregate(v *dataset.View, spec Spec) (*RankedTable, error) {
	kind := dataset.ViewFilms
	if v != nil {
		kind = v.Kind()
	}
	if len(spec.Metrics) == 0 {
		spec.Metrics = []Metric{MetricBoxOffice}
	}
	if spec.SortBy == "" {
		spec.SortBy = spec.Metrics[0]
	}
	if spec.Reducer == "" {
		spec.Reducer = ReducerMean
	}
	if spec.Reducer != ReducerMean && spec.Reducer != ReducerSum {
		return nil, &ColumnNotFoundError{Column: string(spec.Reducer), View: string(kind)}
	}

	values := make([]func(*dataset.Row) float64, len(spec.Metrics))
	for i, m := range spec.Metrics {
		d, ok := metricDefs[m]
		if !ok {
			return nil, &ColumnNotFoundError{Column: string(m), View: string(kind)}
		}
		values[i] = d.value
	}
	keyOf, err := keyFunc(spec.Key, kind)
	if err != nil {
		return nil, err
	}

	t := &RankedTable{
		View:    string(kind),
		Key:     spec.Key,
		Reducer: spec.Reducer,
		Metrics: spec.Metrics,
		SortBy:  spec.SortBy,
		Rows:    []RankedRow{},
	}
	sortIdx := t.index(spec.SortBy)
	if sortIdx < 0 {
		return nil, &ColumnNotFoundError{Column: string(spec.SortBy), View: string(kind)}
	}

	var groups []*group
	byKey := make(map[string]*group)
	v.Each(func(r *dataset.Row) bool {
		key, label, ok := keyOf(r)
		if !ok {
			return true
		}
		g := byKey[key]
		if g == nil {
			g = &group{key: key, label: label, sums: make([]float64, len(values))}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.count++
		for i, val := range values {
			g.sums[i] += val(r)
		}
		return true
	})

	for _, g := range groups {
		row := RankedRow{Key: g.key, Label: g.label, Count: g.count, Values: make([]float64, len(g.sums))}
		for i, s := range g.sums {
			row.Values[i] = spec.Reducer.reduce(s, g.count)
		}
		t.Rows = append(t.Rows, row)
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Values[sortIdx] > t.Rows[j].Values[sortIdx]
	})
	return t, nil
}
