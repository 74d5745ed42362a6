// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/metrics"
	"github.com/tomtom215/blockbuster/internal/models"
)

// Query names, used as metric labels and cache key prefixes.
const (
	QueryFilmRanking     = "film_ranking"
	QueryEvolution       = "evolution"
	QueryActorRanking    = "actor_ranking"
	QueryDirectorRanking = "director_ranking"
	QueryStudioRanking   = "studio_ranking"
	QueryGenderByFilm    = "gender_by_film"
	QueryGenderByYear    = "gender_by_year"
	QueryGenderMetrics   = "gender_metrics"
	QueryAgeBrackets     = "age_brackets"
)

// DefaultLimit is the number of chart entries when Query.Limit is unset.
const DefaultLimit = 10

// SnapshotProvider supplies the dataset snapshot a query runs against.
// *dataset.Store implements it.
type SnapshotProvider interface {
	Snapshot() (*dataset.Dataset, error)
}

// Query is the parameter set shared by every view.
type Query struct {
	Metric   Metric   `json:"metric"`
	Reducer  Reducer  `json:"reducer"`
	Criteria Criteria `json:"criteria"`
	// Limit truncates charts. The table always holds every group.
	Limit int `json:"limit"`
}

func (q Query) withDefaults() (Query, error) {
	if q.Metric == "" {
		q.Metric = MetricBoxOffice
	}
	if !q.Metric.Valid() {
		return q, &ColumnNotFoundError{Column: string(q.Metric)}
	}
	if q.Reducer == "" {
		q.Reducer = ReducerMean
	}
	if q.Reducer != ReducerMean && q.Reducer != ReducerSum {
		return q, &ColumnNotFoundError{Column: string(q.Reducer)}
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return q, nil
}

// Result is what a view query returns. Depending on the view, Table,
// Shares or Bins carry the data; Chart is always set.
type Result struct {
	Query          string                `json:"query"`
	DatasetVersion string                `json:"dataset_version"`
	Rows           int                   `json:"rows"`
	Table          *RankedTable          `json:"table,omitempty"`
	Shares         []models.GenderShare  `json:"shares,omitempty"`
	Bins           []models.HistogramBin `json:"bins,omitempty"`
	Chart          *models.Chart         `json:"chart"`
	Warning        *EmptyResultWarning   `json:"-"`
}

// Warnings returns the warning codes for the API envelope.
func (r *Result) Warnings() []string {
	if r == nil || r.Warning == nil {
		return nil
	}
	return []string{r.Warning.Code()}
}

// Engine answers dashboard queries against the current snapshot. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	snapshots SnapshotProvider
}

// NewEngine creates an engine reading snapshots from p.
func NewEngine(p SnapshotProvider) *Engine {
	return &Engine{snapshots: p}
}

// run resolves the snapshot, applies defaults and filters, calls build and
// records the outcome.
func (e *Engine) run(ctx context.Context, name string, kind dataset.ViewKind, q Query,
	build func(ds *dataset.Dataset, v *dataset.View, q Query) (*Result, error)) (res *Result, err error) {
	start := time.Now()
	defer func() {
		empty := err == nil && res != nil && res.Warning != nil
		metrics.RecordQuery(name, metrics.QueryOutcome(err, empty, IsInvalidSelection), time.Since(start))
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q, err = q.withDefaults()
	if err != nil {
		return nil, err
	}
	ds, err := e.snapshots.Snapshot()
	if err != nil {
		return nil, err
	}
	base, ok := ds.View(kind)
	if !ok {
		return nil, fmt.Errorf("view %s not available", kind)
	}
	v := Filter(base, q.Criteria)

	res, err = build(ds, v, q)
	if err != nil {
		return nil, err
	}
	res.Query = name
	res.DatasetVersion = ds.Version
	res.Rows = v.Len()
	if res.Warning == nil && v.Len() == 0 {
		res.Warning = &EmptyResultWarning{View: string(kind)}
	}
	return res, nil
}

// ranking groups v by key on the query metric and charts the top entries
// with an optional member count series.
func ranking(v *dataset.View, key GroupKey, q Query, countName string) (*Result, error) {
	t, err := Aggregate(v, Spec{Key: key, Reducer: q.Reducer, Metrics: []Metric{q.Metric}})
	if err != nil {
		return nil, err
	}
	top := &RankedTable{Metrics: t.Metrics, Rows: t.Top(q.Limit)}
	values, _ := top.Column(q.Metric)
	chart := &models.Chart{
		Kind:   models.ChartBar,
		Labels: top.Labels(),
		Series: []models.Series{{Name: q.Metric.Label(), Values: values}},
	}
	if countName != "" {
		chart.Series = append(chart.Series, models.Series{Name: countName, Axis: "right", Values: top.Counts()})
	}
	return &Result{Table: t, Chart: chart, Warning: t.Warning()}, nil
}

// FilmRanking ranks films by the query metric.
func (e *Engine) FilmRanking(ctx context.Context, q Query) (*Result, error) {
	return e.run(ctx, QueryFilmRanking, dataset.ViewFilms, q, func(_ *dataset.Dataset, v *dataset.View, q Query) (*Result, error) {
		return ranking(v, GroupFilm, q, "")
	})
}

// ActorRanking ranks actors by the query metric over the films they appear
// in, alongside their number of films.
func (e *Engine) ActorRanking(ctx context.Context, q Query) (*Result, error) {
	return e.run(ctx, QueryActorRanking, dataset.ViewCast, q, func(_ *dataset.Dataset, v *dataset.View, q Query) (*Result, error) {
		return ranking(v, GroupActor, q, "Number of films")
	})
}

// DirectorRanking ranks directors by the query metric.
func (e *Engine) DirectorRanking(ctx context.Context, q Query) (*Result, error) {
	return e.run(ctx, QueryDirectorRanking, dataset.ViewDirectors, q, func(_ *dataset.Dataset, v *dataset.View, q Query) (*Result, error) {
		return ranking(v, GroupDirector, q, "Number of films")
	})
}

// StudioRanking ranks studios by the query metric.
func (e *Engine) StudioRanking(ctx context.Context, q Query) (*Result, error) {
	return e.run(ctx, QueryStudioRanking, dataset.ViewStudios, q, func(_ *dataset.Dataset, v *dataset.View, q Query) (*Result, error) {
		return ranking(v, GroupStudio, q, "Number of films")
	})
}

// Evolution reduces box office, budget and benefit per release year. The
// table is ranked by the query metric; the chart runs in year order.
func (e *Engine) Evolution(ctx context.Context, q Query) (*Result, error) {
	return e.run(ctx, QueryEvolution, dataset.ViewFilms, q, func(_ *dataset.Dataset, v *dataset.View, q Query) (*Result, error) {
		money := []Metric{MetricBoxOffice, MetricBudget, MetricBenefit}
		sortBy := q.Metric
		if !containsMetric(money, sortBy) {
			money = append(money, sortBy)
		}
		t, err := Aggregate(v, Spec{Key: GroupYear, Reducer: q.Reducer, Metrics: money, SortBy: sortBy})
		if err != nil {
			return nil, err
		}
		rows := chronological(t.Rows)
		chart := &models.Chart{Kind: models.ChartLine, Labels: make([]string, len(rows))}
		for i, r := range rows {
			chart.Labels[i] = r.Label
		}
		for j, m := range t.Metrics {
			s := models.Series{Name: m.Label(), Values: make([]float64, len(rows))}
			for i, r := range rows {
				s.Values[i] = r.Values[j]
			}
			chart.Series = append(chart.Series, s)
		}
		counts := models.Series{Name: "Number of films", Axis: "right", Values: make([]float64, len(rows))}
		for i, r := range rows {
			counts.Values[i] = float64(r.Count)
		}
		chart.Series = append(chart.Series, counts)
		return &Result{Table: t, Chart: chart, Warning: t.Warning()}, nil
	})
}

// GenderByFilm bins films by the male share of their cast.
func (e *Engine) GenderByFilm(ctx context.Context, q Query) (*Result, error) {
	return e.run(ctx, QueryGenderByFilm, dataset.ViewCast, q, func(_ *dataset.Dataset, v *dataset.View, _ Query) (*Result, error) {
		shares, err := GenderRatios(v, GroupFilm)
		if err != nil {
			return nil, err
		}
		bins, err := GenderHistogram(v)
		if err != nil {
			return nil, err
		}
		chart := &models.Chart{Kind: models.ChartHistogram, Labels: make([]string, len(bins))}
		counts := make([]float64, len(bins))
		for i, b := range bins {
			chart.Labels[i] = fmt.Sprintf("%.0f-%.0f%%", b.Lower*100, b.Upper*100)
			counts[i] = float64(b.Count)
		}
		chart.Series = []models.Series{{Name: "Films", Values: counts}}
		return &Result{Shares: shares, Bins: bins, Chart: chart}, nil
	})
}

// GenderByYear gives the male and female share of cast members per release
// year, oldest year first.
func (e *Engine) GenderByYear(ctx context.Context, q Query) (*Result, error) {
	return e.run(ctx, QueryGenderByYear, dataset.ViewCast, q, func(_ *dataset.Dataset, v *dataset.View, _ Query) (*Result, error) {
		shares, err := GenderRatios(v, GroupYear)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(shares, func(i, j int) bool {
			a, _ := strconv.Atoi(shares[i].Key)
			b, _ := strconv.Atoi(shares[j].Key)
			return a < b
		})
		chart := &models.Chart{Kind: models.ChartStacked, Labels: make([]string, len(shares))}
		male := models.Series{Name: "Male", Values: make([]float64, len(shares))}
		female := models.Series{Name: "Female", Values: make([]float64, len(shares))}
		for i, s := range shares {
			chart.Labels[i] = s.Label
			male.Values[i] = s.MaleFraction
			female.Values[i] = s.FemaleFraction
		}
		chart.Series = []models.Series{male, female}
		return &Result{Shares: shares, Chart: chart}, nil
	})
}

// GenderMetrics reduces box office and budget per cast gender.
func (e *Engine) GenderMetrics(ctx context.Context, q Query) (*Result, error) {
	return e.run(ctx, QueryGenderMetrics, dataset.ViewCast, q, func(_ *dataset.Dataset, v *dataset.View, q Query) (*Result, error) {
		t, err := Aggregate(v, Spec{
			Key:     GroupGender,
			Reducer: q.Reducer,
			Metrics: []Metric{MetricBoxOffice, MetricBudget},
		})
		if err != nil {
			return nil, err
		}
		chart := &models.Chart{Kind: models.ChartBar, Labels: t.Labels()}
		for _, m := range t.Metrics {
			values, _ := t.Column(m)
			chart.Series = append(chart.Series, models.Series{Name: m.Label(), Values: values})
		}
		return &Result{Table: t, Chart: chart, Warning: t.Warning()}, nil
	})
}

// AgeBrackets reduces the query metric per age bracket of the subject at
// release. subject selects actors (ViewCast) or directors (ViewDirectors).
// People without a known date of birth are excluded. The chart runs in
// bracket order.
func (e *Engine) AgeBrackets(ctx context.Context, subject dataset.ViewKind, q Query) (*Result, error) {
	if !subject.HasSubject() {
		return nil, &ColumnNotFoundError{Column: string(GroupAgeBracket), View: string(subject)}
	}
	return e.run(ctx, QueryAgeBrackets, subject, q, func(_ *dataset.Dataset, v *dataset.View, q Query) (*Result, error) {
		t, err := Aggregate(v, Spec{Key: GroupAgeBracket, Reducer: q.Reducer, Metrics: []Metric{q.Metric}})
		if err != nil {
			return nil, err
		}
		rows := append([]RankedRow(nil), t.Rows...)
		sort.SliceStable(rows, func(i, j int) bool {
			return bracketRank(Bracket(rows[i].Key)) < bracketRank(Bracket(rows[j].Key))
		})
		ordered := &RankedTable{Metrics: t.Metrics, Rows: rows}
		values, _ := ordered.Column(q.Metric)
		chart := &models.Chart{
			Kind:   models.ChartBar,
			Labels: ordered.Labels(),
			Series: []models.Series{
				{Name: q.Metric.Label(), Values: values},
				{Name: "Number of films", Axis: "right", Values: ordered.Counts()},
			},
		}
		return &Result{Table: t, Chart: chart, Warning: t.Warning()}, nil
	})
}

// Dimensions lists the filter options of the current snapshot.
func (e *Engine) Dimensions(ctx context.Context) (*models.Dimensions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds, err := e.snapshots.Snapshot()
	if err != nil {
		return nil, err
	}
	d := &models.Dimensions{}
	d.Languages = options(len(ds.Languages), func(i int) (int, string) { return ds.Languages[i].ID, ds.Languages[i].Name })
	d.Countries = options(len(ds.Countries), func(i int) (int, string) { return ds.Countries[i].ID, ds.Countries[i].Name })
	d.Directors = options(len(ds.Directors), func(i int) (int, string) { return ds.Directors[i].ID, ds.Directors[i].Name })
	d.Studios = options(len(ds.Studios), func(i int) (int, string) { return ds.Studios[i].ID, ds.Studios[i].Name })
	for _, m := range Metrics {
		d.Metrics = append(d.Metrics, models.Option{Label: m.Label(), Value: string(m)})
	}
	d.Modes = []models.Option{
		{Label: "Average", Value: string(ReducerMean)},
		{Label: "Total", Value: string(ReducerSum)},
	}
	d.MinDate, d.MaxDate = ds.Bounds()
	return d, nil
}

// options returns "All" followed by every entry sorted by name.
func options(n int, at func(int) (int, string)) []models.Option {
	out := make([]models.Option, 0, n+1)
	for i := 0; i < n; i++ {
		id, name := at(i)
		out = append(out, models.Option{Label: name, Value: strconv.Itoa(id)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return append([]models.Option{{Label: All, Value: All}}, out...)
}

func containsMetric(ms []Metric, m Metric) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}

// chronological returns year rows ordered by year.
func chronological(rows []RankedRow) []RankedRow {
	out := append([]RankedRow(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].Key)
		b, _ := strconv.Atoi(out[j].Key)
		return a < b
	})
	return out
}
