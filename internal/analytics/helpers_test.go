// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/blockbuster/internal/dataset"
	"github.com/tomtom215/blockbuster/internal/testinfra"
)

const tolerance = 1e-9

func loadFixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	dir := testinfra.WriteFilmFixture(t)
	ds, err := dataset.NewLoader(&dataset.CSVSource{Dir: dir, Delimiter: ','}, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return ds
}

// staticProvider serves a fixed snapshot.
type staticProvider struct {
	ds *dataset.Dataset
}

func (p staticProvider) Snapshot() (*dataset.Dataset, error) {
	if p.ds == nil {
		return nil, dataset.ErrNotLoaded
	}
	return p.ds, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func near(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func filmIDs(v *dataset.View) []int {
	var ids []int
	v.Each(func(r *dataset.Row) bool {
		ids = append(ids, r.Film.ID)
		return true
	})
	return ids
}
