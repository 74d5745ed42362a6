// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"errors"
	"testing"
)

func TestGenderRatiosByFilm(t *testing.T) {
	t.Parallel()

	ds := loadFixture(t)
	shares, err := GenderRatios(ds.CastView(), GroupFilm)
	if err != nil {
		t.Fatalf("GenderRatios() error = %v", err)
	}
	want := map[string]struct {
		members, male int
		fraction      float64
	}{
		"Alpha": {2, 1, 0.5},
		"Beta":  {1, 0, 0},
		"Gamma": {3, 2, 2.0 / 3},
	}
	if len(shares) != len(want) {
		t.Fatalf("got %d groups, want %d", len(shares), len(want))
	}
	for _, s := range shares {
		w, ok := want[s.Label]
		if !ok {
			t.Errorf("unexpected group %q", s.Label)
			continue
		}
		if s.Members != w.members || s.Male != w.male || !near(s.MaleFraction, w.fraction) {
			t.Errorf("%s = %+v, want %+v", s.Label, s, w)
		}
		if !near(s.MaleFraction+s.FemaleFraction, 1) {
			t.Errorf("%s: fractions sum to %v", s.Label, s.MaleFraction+s.FemaleFraction)
		}
	}
}

func TestGenderRatiosComplementEverywhere(t *testing.T) {
	t.Parallel()

	ds := loadFixture(t)
	for _, key := range []GroupKey{GroupFilm, GroupYear, GroupStudio, GroupLanguage, GroupCountry, GroupDirector, GroupActor} {
		shares, err := GenderRatios(ds.CastView(), key)
		if err != nil {
			t.Fatalf("GenderRatios(%s) error = %v", key, err)
		}
		for _, s := range shares {
			if !near(s.MaleFraction+s.FemaleFraction, 1) {
				t.Errorf("%s/%s: %v + %v != 1", key, s.Label, s.MaleFraction, s.FemaleFraction)
			}
		}
	}
}

func TestGenderRatiosNeedSubject(t *testing.T) {
	t.Parallel()

	ds := loadFixture(t)
	_, err := GenderRatios(ds.FilmsView(), GroupYear)
	var cnf *ColumnNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("GenderRatios(films) error = %v, want ColumnNotFoundError", err)
	}
}

func TestGenderHistogram(t *testing.T) {
	t.Parallel()

	ds := loadFixture(t)
	bins, err := GenderHistogram(ds.CastView())
	if err != nil {
		t.Fatal(err)
	}
	if len(bins) != HistogramBins {
		t.Fatalf("got %d bins, want %d", len(bins), HistogramBins)
	}
	// Beta 0.0, Alpha 0.5, Gamma 0.67.
	want := map[int]int{0: 1, 5: 1, 6: 1}
	for i, b := range bins {
		if b.Count != want[i] {
			t.Errorf("bin %d [%v,%v) count = %d, want %d", i, b.Lower, b.Upper, b.Count, want[i])
		}
	}
}

func TestHistogramEdges(t *testing.T) {
	t.Parallel()

	bins := Histogram([]float64{0, 0.3, 0.999, 1, 1.5, -0.1}, 0, 1, 10)
	want := map[int]int{0: 1, 3: 1, 9: 2}
	for i, b := range bins {
		if b.Count != want[i] {
			t.Errorf("bin %d count = %d, want %d", i, b.Count, want[i])
		}
	}
	if bins[9].Upper != 1 {
		t.Errorf("last bin upper = %v, want 1", bins[9].Upper)
	}
	if Histogram(nil, 1, 0, 10) != nil {
		t.Error("inverted bounds should give no bins")
	}
}
