// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"
)

func TestToMillions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"100000000", 100},
		{"123456789", 123.456789},
		{"1", 0.000001},
		{"0", 0},
		{" 2500000 ", 2.5},
		{"-1000000", -1},
		{"1.5e8", 150},
	}
	for _, tt := range tests {
		got, err := toMillions(tt.in)
		if err != nil {
			t.Errorf("toMillions(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("toMillions(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "$100", "1,000"} {
		if _, err := toMillions(bad); !errors.Is(err, ErrBadNumber) {
			t.Errorf("toMillions(%q) error = %v, want ErrBadNumber", bad, err)
		}
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]int{"7": 7, " 12 ": 12, "3.0": 3, strconv.Itoa(math.MaxInt): math.MaxInt} {
		got, err := parseID(in)
		if err != nil || got != want {
			t.Errorf("parseID(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "1.5", "abc", "18446744073709551619", "-18446744073709551619", "9223372036854775808"} {
		if _, err := parseID(bad); !errors.Is(err, ErrBadNumber) {
			t.Errorf("parseID(%q) error = %v", bad, err)
		}
	}
	if n, err := parseCount(""); n != 0 || err != nil {
		t.Errorf("parseCount(\"\") = %d, %v", n, err)
	}
	if _, err := parseCount("-2"); err == nil {
		t.Error("negative count accepted")
	}
}

func TestDateParser(t *testing.T) {
	t.Parallel()

	p := dateParser{layouts: DefaultDateLayouts}
	want := time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"1999-03-31", "03/31/1999", "1999-03-31 23:59:59", "1999-03-31T08:00:00+02:00"} {
		got, err := p.parse(in)
		if err != nil {
			t.Errorf("parse(%q) error = %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("parse(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := p.parse("31.03.1999"); !errors.Is(err, ErrBadDate) {
		t.Errorf("unsupported layout error = %v", err)
	}
	if d, err := p.parseOptional("  "); d != nil || err != nil {
		t.Errorf("parseOptional(blank) = %v, %v", d, err)
	}
}
