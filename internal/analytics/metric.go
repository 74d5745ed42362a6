// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"strconv"
	"strings"

	"github.com/tomtom215/blockbuster/internal/dataset"
)

// Metric names a numeric film column.
type Metric string

// Metrics.
const (
	MetricBoxOffice        Metric = "box_office"
	MetricBudget           Metric = "budget"
	MetricBenefit          Metric = "benefit"
	MetricOscarNominations Metric = "oscar_nominations"
	MetricOscarWins        Metric = "oscar_wins"
)

type metricDef struct {
	label string
	value func(*dataset.Row) float64
}

var metricDefs = map[Metric]metricDef{
	MetricBoxOffice:        {"Box office ($M)", func(r *dataset.Row) float64 { return r.Film.BoxOffice }},
	MetricBudget:           {"Budget ($M)", func(r *dataset.Row) float64 { return r.Film.Budget }},
	MetricBenefit:          {"Benefit ($M)", func(r *dataset.Row) float64 { return r.Film.Benefit }},
	MetricOscarNominations: {"Oscar nominations", func(r *dataset.Row) float64 { return float64(r.Film.OscarNominations) }},
	MetricOscarWins:        {"Oscar wins", func(r *dataset.Row) float64 { return float64(r.Film.OscarWins) }},
}

// Metrics lists every metric in display order.
var Metrics = []Metric{MetricBoxOffice, MetricBudget, MetricBenefit, MetricOscarNominations, MetricOscarWins}

var metricAliases = map[string]Metric{
	"boxoffice":        MetricBoxOffice,
	"boxofficedollars": MetricBoxOffice,
	"budgetdollars":    MetricBudget,
	"benefits":         MetricBenefit,
}

// ParseMetric resolves a metric name. Besides the canonical names it accepts
// the dataset's column labels (BoxOfficeDollars, BudgetDollars, Benefits).
func ParseMetric(name string) (Metric, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if m := Metric(key); m.Valid() {
		return m, nil
	}
	if m, ok := metricAliases[strings.ReplaceAll(key, "_", "")]; ok {
		return m, nil
	}
	return "", &ColumnNotFoundError{Column: name}
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	_, ok := metricDefs[m]
	return ok
}

// Label is the human-readable series name.
func (m Metric) Label() string {
	if d, ok := metricDefs[m]; ok {
		return d.label
	}
	return string(m)
}

// Reducer combines the metric values of a group.
type Reducer string

// Reducers.
const (
	ReducerMean Reducer = "mean"
	ReducerSum  Reducer = "sum"
)

// ParseReducer accepts mean/sum and the dashboard labels Average/Total.
// Empty defaults to mean.
func ParseReducer(name string) (Reducer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mean", "average", "avg":
		return ReducerMean, nil
	case "sum", "total":
		return ReducerSum, nil
	}
	return "", &ColumnNotFoundError{Column: name}
}

func (r Reducer) reduce(sum float64, n int) float64 {
	if r == ReducerSum || n == 0 {
		return sum
	}
	return sum / float64(n)
}

// GroupKey is the dimension rows are grouped by.
type GroupKey string

// Group keys.
const (
	GroupFilm       GroupKey = "film"
	GroupActor      GroupKey = "actor"
	GroupDirector   GroupKey = "director"
	GroupStudio     GroupKey = "studio"
	GroupYear       GroupKey = "year"
	GroupGender     GroupKey = "gender"
	GroupAgeBracket GroupKey = "age_bracket"
	GroupLanguage   GroupKey = "language"
	GroupCountry    GroupKey = "country"
)

// ParseGroupKey resolves a group key name.
func ParseGroupKey(name string) (GroupKey, error) {
	k := GroupKey(strings.ToLower(strings.TrimSpace(name)))
	switch k {
	case GroupFilm, GroupActor, GroupDirector, GroupStudio, GroupYear,
		GroupGender, GroupAgeBracket, GroupLanguage, GroupCountry:
		return k, nil
	}
	return "", &ColumnNotFoundError{Column: name}
}

// groupFunc extracts the group key and its display label from a row. ok is
// false when the row has no value for the key and must be excluded.
type groupFunc func(*dataset.Row) (key, label string, ok bool)

// keyFunc returns the extractor for k on views of the given kind. Film,
// person, studio, language and country groups are keyed by name, so two
// entities sharing a name form one group.
func keyFunc(k GroupKey, kind dataset.ViewKind) (groupFunc, error) {
	subject := kind.HasSubject()
	switch k {
	case GroupFilm:
		return byName(func(r *dataset.Row) string { return r.Film.Name }), nil
	case GroupYear:
		return func(r *dataset.Row) (string, string, bool) {
			y := strconv.Itoa(r.Film.ReleaseYear)
			return y, y, true
		}, nil
	case GroupDirector:
		return byName(func(r *dataset.Row) string { return r.Director.Name }), nil
	case GroupStudio:
		return byName(func(r *dataset.Row) string { return r.Studio.Name }), nil
	case GroupLanguage:
		return byName(func(r *dataset.Row) string { return r.Language.Name }), nil
	case GroupCountry:
		return byName(func(r *dataset.Row) string { return r.Country.Name }), nil
	case GroupActor:
		if kind != dataset.ViewCast {
			break
		}
		return byName(func(r *dataset.Row) string { return r.Subject.Name }), nil
	case GroupGender:
		if !subject {
			break
		}
		return func(r *dataset.Row) (string, string, bool) {
			g := string(r.Subject.Gender)
			if g == "" {
				return "", "", false
			}
			return g, g, true
		}, nil
	case GroupAgeBracket:
		if !subject {
			break
		}
		return func(r *dataset.Row) (string, string, bool) {
			b, ok := BracketAt(r.Subject, r.Film.ReleaseDate)
			return string(b), string(b), ok
		}, nil
	}
	return nil, &ColumnNotFoundError{Column: string(k), View: string(kind)}
}

func byName(name func(*dataset.Row) string) groupFunc {
	return func(r *dataset.Row) (string, string, bool) {
		n := name(r)
		return n, n, true
	}
}
