// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/models"
)

// HistogramBins is the number of equal-width bins used for fractions.
const HistogramBins = 10

// binEpsilon keeps values on a bin edge such as 0.3 out of the bin below.
const binEpsilon = 1e-9

// GenderRatios groups the subjects of v by key and returns the male share of
// each group in first-appearance order. Any gender other than Male counts as
// not male, and FemaleFraction is the complement of MaleFraction.
func GenderRatios(v *dataset.View, key GroupKey) ([]models.GenderShare, error) {
	kind := dataset.ViewFilms
	if v != nil {
		kind = v.Kind()
	}
	if !kind.HasSubject() {
		return nil, &ColumnNotFoundError{Column: "gender", View: string(kind)}
	}
	keyOf, err := keyFunc(key, kind)
	if err != nil {
		return nil, err
	}

	out := []models.GenderShare{}
	pos := make(map[string]int)
	v.Each(func(r *dataset.Row) bool {
		k, label, ok := keyOf(r)
		if !ok {
			return true
		}
		i, seen := pos[k]
		if !seen {
			i = len(out)
			pos[k] = i
			out = append(out, models.GenderShare{Key: k, Label: label})
		}
		out[i].Members++
		if r.Subject.Gender.IsMale() {
			out[i].Male++
		}
		return true
	})
	for i := range out {
		s := &out[i]
		s.MaleFraction = float64(s.Male) / float64(s.Members)
		s.FemaleFraction = 1 - s.MaleFraction
	}
	return out, nil
}

// GenderHistogram bins the per-film male fraction of the cast in v into
// HistogramBins equal bins over [0, 1].
func GenderHistogram(v *dataset.View) ([]models.HistogramBin, error) {
	shares, err := GenderRatios(v, GroupFilm)
	if err != nil {
		return nil, err
	}
	fractions := make([]float64, len(shares))
	for i, s := range shares {
		fractions[i] = s.MaleFraction
	}
	return Histogram(fractions, 0, 1, HistogramBins), nil
}

// Histogram counts values into n equal bins over [lo, hi]. The last bin
// includes hi; values outside the range are dropped.
func Histogram(values []float64, lo, hi float64, n int) []models.HistogramBin {
	if n <= 0 || hi <= lo {
		return nil
	}
	width := (hi - lo) / float64(n)
	bins := make([]models.HistogramBin, n)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	bins[n-1].Upper = hi
	for _, x := range values {
		if x < lo || x > hi {
			continue
		}
		i := int((x-lo)/width + binEpsilon)
		if i >= n {
			i = n - 1
		}
		bins[i].Count++
	}
	return bins
}
