// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/models"
	"github.com/tomtom215/blockbuster/internal/testinfra"
)

func newTestEngine(t *testing.T) (*Engine, *dataset.Dataset) {
	t.Helper()
	ds := loadFixture(t)
	return NewEngine(staticProvider{ds: ds}), ds
}

func chartLabels(c *models.Chart) []string {
	if c == nil {
		return nil
	}
	return c.Labels
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEngineFilmRanking(t *testing.T) {
	t.Parallel()

	e, ds := newTestEngine(t)
	res, err := e.FilmRanking(context.Background(), Query{Metric: MetricBenefit})
	if err != nil {
		t.Fatalf("FilmRanking() error = %v", err)
	}
	// Benefit: Gamma 100, Alpha 60, Beta -10.
	if want := []string{"Gamma", "Alpha", "Beta"}; !equalStrings(chartLabels(res.Chart), want) {
		t.Errorf("labels = %v, want %v", res.Chart.Labels, want)
	}
	if res.Chart.Series[0].Values[2] != -10 {
		t.Errorf("Beta benefit = %v, want -10", res.Chart.Series[0].Values[2])
	}
	if res.DatasetVersion != ds.Version || res.Query != QueryFilmRanking || res.Rows != 3 {
		t.Errorf("result identity = %q/%q/%d", res.DatasetVersion, res.Query, res.Rows)
	}
	if res.Warnings() != nil {
		t.Errorf("Warnings() = %v, want none", res.Warnings())
	}
}

func TestEngineLimitTruncatesChartOnly(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	res, err := e.ActorRanking(context.Background(), Query{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Chart.Labels) != 2 || res.Table.Len() != 4 {
		t.Errorf("chart %d labels, table %d rows; want 2 and 4", len(res.Chart.Labels), res.Table.Len())
	}
	if len(res.Chart.Series) != 2 || res.Chart.Series[1].Values[0] != 1 {
		t.Errorf("count series = %+v, want Carl with 1 film first", res.Chart.Series)
	}
}

func TestEngineEvolution(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	res, err := e.Evolution(context.Background(), Query{Metric: MetricBoxOffice, Reducer: ReducerSum})
	if err != nil {
		t.Fatal(err)
	}
	if res.Table.Rows[0].Label != "2001" || !near(res.Table.Rows[0].Values[0], 200) {
		t.Errorf("first table row = %+v, want 2001 with 200", res.Table.Rows[0])
	}
	if want := []string{"2000", "2001"}; !equalStrings(res.Chart.Labels, want) {
		t.Errorf("chart labels = %v, want %v", res.Chart.Labels, want)
	}
	if res.Chart.Kind != models.ChartLine {
		t.Errorf("chart kind = %q", res.Chart.Kind)
	}
	boxOffice := res.Chart.Series[0].Values
	if !near(boxOffice[0], 150) || !near(boxOffice[1], 200) {
		t.Errorf("box office series = %v, want [150 200]", boxOffice)
	}
	counts := res.Chart.Series[len(res.Chart.Series)-1].Values
	if counts[0] != 2 || counts[1] != 1 {
		t.Errorf("film counts = %v, want [2 1]", counts)
	}
}

func TestEngineRankingsPerView(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	ctx := context.Background()
	q := Query{Metric: MetricBoxOffice, Reducer: ReducerSum}

	directors, err := e.DirectorRanking(ctx, q)
	if err != nil {
		t.Fatal(err)
	}
	if directors.Table.Rows[0].Label != "Christopher Nolan" || !near(directors.Table.Rows[0].Values[0], 300) {
		t.Errorf("top director = %+v, want Nolan with 300", directors.Table.Rows[0])
	}

	studios, err := e.StudioRanking(ctx, q)
	if err != nil {
		t.Fatal(err)
	}
	if studios.Table.Len() != 2 {
		t.Errorf("studios = %d rows, want 2 (idle studio has no films)", studios.Table.Len())
	}
}

func TestEngineEmptyResult(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	res, err := e.StudioRanking(context.Background(), Query{Criteria: Criteria{Studio: Only(testinfra.StudioIdle)}})
	if err != nil {
		t.Fatalf("StudioRanking() error = %v, want nil", err)
	}
	if res.Table.Len() != 0 || len(res.Chart.Labels) != 0 {
		t.Errorf("got %d rows and %d labels, want none", res.Table.Len(), len(res.Chart.Labels))
	}
	if w := res.Warnings(); len(w) != 1 || w[0] != WarningEmptyResult {
		t.Errorf("Warnings() = %v, want [%s]", w, WarningEmptyResult)
	}

	gender, err := e.GenderByYear(context.Background(), Query{Criteria: Criteria{Dates: Between(date("1990-01-01"), date("1990-12-31"))}})
	if err != nil {
		t.Fatal(err)
	}
	if len(gender.Shares) != 0 || gender.Warning == nil {
		t.Errorf("gender by year on empty range = %+v", gender)
	}
}

func TestEngineGenderViews(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	ctx := context.Background()

	byYear, err := e.GenderByYear(ctx, Query{})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"2000", "2001"}; !equalStrings(byYear.Chart.Labels, want) {
		t.Errorf("labels = %v, want %v", byYear.Chart.Labels, want)
	}
	male := byYear.Chart.Series[0].Values
	if !near(male[0], 1.0/3) || !near(male[1], 2.0/3) {
		t.Errorf("male share = %v, want [1/3 2/3]", male)
	}

	byFilm, err := e.GenderByFilm(ctx, Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(byFilm.Bins) != HistogramBins || byFilm.Chart.Labels[0] != "0-10%" {
		t.Errorf("histogram = %d bins, first label %q", len(byFilm.Bins), byFilm.Chart.Labels[0])
	}

	metrics, err := e.GenderMetrics(ctx, Query{})
	if err != nil {
		t.Fatal(err)
	}
	// Male rows 100, 200, 200; female rows 100, 50, 200.
	if want := []string{"Male", "Female"}; !equalStrings(metrics.Chart.Labels, want) {
		t.Errorf("labels = %v, want %v", metrics.Chart.Labels, want)
	}
	if !near(metrics.Chart.Series[0].Values[0], 500.0/3) {
		t.Errorf("male mean box office = %v", metrics.Chart.Series[0].Values[0])
	}
}

func TestEngineAgeBrackets(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	res, err := e.AgeBrackets(context.Background(), dataset.ViewCast, Query{Reducer: ReducerSum})
	if err != nil {
		t.Fatal(err)
	}
	// Alice 20 and 21, Bob 39 and 41, Carl 61; Dana has no DOB.
	if want := []string{"20-39", "40-59", "60+"}; !equalStrings(res.Chart.Labels, want) {
		t.Errorf("labels = %v, want %v", res.Chart.Labels, want)
	}
	if v := res.Chart.Series[0].Values; !near(v[0], 400) || !near(v[1], 200) || !near(v[2], 200) {
		t.Errorf("box office per bracket = %v, want [400 200 200]", v)
	}
	if c := res.Chart.Series[1].Values; c[0] != 3 || c[1] != 1 || c[2] != 1 {
		t.Errorf("counts = %v, want [3 1 1]", c)
	}

	directors, err := e.AgeBrackets(context.Background(), dataset.ViewDirectors, Query{})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"20-39", "40-59"}; !equalStrings(directors.Chart.Labels, want) {
		t.Errorf("director labels = %v, want %v", directors.Chart.Labels, want)
	}

	if _, err := e.AgeBrackets(context.Background(), dataset.ViewFilms, Query{}); !IsInvalidSelection(err) {
		t.Errorf("AgeBrackets(films) error = %v, want invalid selection", err)
	}
}

func TestEngineErrors(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	if _, err := e.FilmRanking(context.Background(), Query{Metric: "runtime"}); !IsInvalidSelection(err) {
		t.Errorf("unknown metric error = %v, want invalid selection", err)
	}

	empty := NewEngine(staticProvider{})
	if _, err := empty.FilmRanking(context.Background(), Query{}); !errors.Is(err, dataset.ErrNotLoaded) {
		t.Errorf("no snapshot error = %v, want ErrNotLoaded", err)
	}
	if _, err := empty.Dimensions(context.Background()); !errors.Is(err, dataset.ErrNotLoaded) {
		t.Errorf("Dimensions() error = %v, want ErrNotLoaded", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Evolution(ctx, Query{}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled error = %v", err)
	}
}

func TestEngineDimensions(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	d, err := e.Dimensions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Languages) != 3 || d.Languages[0].Value != All || d.Languages[1].Label != "English" {
		t.Errorf("languages = %+v", d.Languages)
	}
	if len(d.Studios) != 4 || len(d.Directors) != 4 || len(d.Countries) != 3 {
		t.Errorf("option counts: studios %d directors %d countries %d", len(d.Studios), len(d.Directors), len(d.Countries))
	}
	if len(d.Metrics) != len(Metrics) || len(d.Modes) != 2 {
		t.Errorf("metrics %d modes %d", len(d.Metrics), len(d.Modes))
	}
	if !d.MinDate.Equal(date("2000-05-01")) || !d.MaxDate.Equal(date("2001-07-04")) {
		t.Errorf("bounds = %v..%v", d.MinDate, d.MaxDate)
	}
}
