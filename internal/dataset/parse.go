// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// millionsExponent shifts raw currency units to millions (divide by 10^6).
const millionsExponent = -6

// toMillions converts a raw currency cell to millions. The shift is done in
// decimal arithmetic so 123456789 becomes exactly 123.456789 before the
// single conversion to float64.
func toMillions(raw string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, raw)
	}
	f, _ := d.Shift(millionsExponent).Float64()
	return f, nil
}

var (
	maxID = decimal.NewFromInt(int64(math.MaxInt))
	minID = decimal.NewFromInt(int64(math.MinInt))
)

// parseID accepts integral values, including "12.0" as written by some
// spreadsheet exports.
func parseID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("%w: %q is not an integer id", ErrBadNumber, raw)
	}
	if d.Cmp(maxID) > 0 || d.Cmp(minID) < 0 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrBadNumber, raw)
	}
	return int(d.IntPart()), nil
}

// parseCount is parseID with empty meaning zero.
func parseCount(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	n, err := parseID(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrBadNumber, raw)
	}
	return n, nil
}

// DefaultDateLayouts are tried when no layouts are configured.
var DefaultDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// dateParser parses calendar dates using an ordered list of layouts. The
// result is truncated to midnight UTC so comparisons are by calendar day.
type dateParser struct {
	layouts []string
}

func (p dateParser) parse(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrBadDate)
	}
	for _, layout := range p.layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q matches none of %v", ErrBadDate, raw, p.layouts)
}

// parseOptional returns nil for an empty cell.
func (p dateParser) parseOptional(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := p.parse(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
