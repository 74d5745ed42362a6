// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDatasetLoad(t *testing.T) {
	okBefore := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("csv", "test", "success"))
	errBefore := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("csv", "test", "error"))

	RecordDatasetLoad("csv", "test", 20*time.Millisecond, map[string]int{"Film": 3, "Cast": 7}, nil)
	RecordDatasetLoad("csv", "test", time.Millisecond, map[string]int{"Film": 99}, errors.New("missing tblFilm.csv"))

	if got := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("csv", "test", "success")); got != okBefore+1 {
		t.Errorf("success count = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("csv", "test", "error")); got != errBefore+1 {
		t.Errorf("error count = %v, want %v", got, errBefore+1)
	}
	// a failed load must not overwrite the row gauges of the snapshot in service
	if got := testutil.ToFloat64(DatasetRows.WithLabelValues("Film")); got != 3 {
		t.Errorf("Film rows = %v, want 3", got)
	}
	if got := testutil.ToFloat64(DatasetRows.WithLabelValues("Cast")); got != 7 {
		t.Errorf("Cast rows = %v, want 7", got)
	}
}

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(QueryResultsTotal.WithLabelValues("actors", OutcomeEmpty))
	RecordQuery("actors", OutcomeEmpty, time.Millisecond)
	if got := testutil.ToFloat64(QueryResultsTotal.WithLabelValues("actors", OutcomeEmpty)); got != before+1 {
		t.Errorf("empty outcome count = %v, want %v", got, before+1)
	}
}

func TestQueryOutcome(t *testing.T) {
	t.Parallel()

	invalid := errors.New("unknown metric")
	isInvalid := func(err error) bool { return errors.Is(err, invalid) }

	tests := []struct {
		name  string
		err   error
		empty bool
		want  string
	}{
		{"ok", nil, false, OutcomeOK},
		{"empty", nil, true, OutcomeEmpty},
		{"invalid", invalid, false, OutcomeInvalid},
		{"other error", errors.New("boom"), false, OutcomeError},
	}
	for _, tt := range tests {
		if got := QueryOutcome(tt.err, tt.empty, isInvalid); got != tt.want {
			t.Errorf("%s: QueryOutcome() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCacheAndActiveRequests(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits)
	misses := testutil.ToFloat64(CacheMisses)
	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)
	if got := testutil.ToFloat64(CacheHits); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}

	SetCacheEntries(12)
	if got := testutil.ToFloat64(CacheEntries); got != 12 {
		t.Errorf("entries = %v, want 12", got)
	}

	active := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != active+1 {
		t.Errorf("active = %v, want %v", got, active+1)
	}
}
