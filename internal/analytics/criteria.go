// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/blockbuster/internal/dataset"
)

// All is the sentinel selection that disables a dimension filter.
const All = "All"

// Selection is either All (no filter) or one id.
type Selection struct {
	id  int
	set bool
}

// AllSelection matches every row.
func AllSelection() Selection {
	return Selection{}
}

// Only matches rows whose dimension id equals id.
func Only(id int) Selection {
	return Selection{id: id, set: true}
}

// ParseSelection parses "All" (case-insensitive) or empty as AllSelection,
// and an integer as Only.
func ParseSelection(raw string) (Selection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, All) {
		return AllSelection(), nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %q is neither %q nor an id", ErrInvalidSelection, raw, All)
	}
	return Only(id), nil
}

// IsAll reports whether the selection is the All sentinel.
func (s Selection) IsAll() bool {
	return !s.set
}

// ID returns the selected id and whether one is set.
func (s Selection) ID() (int, bool) {
	return s.id, s.set
}

func (s Selection) matches(id int) bool {
	return !s.set || s.id == id
}

// String returns "All" or the id.
func (s Selection) String() string {
	if !s.set {
		return All
	}
	return strconv.Itoa(s.id)
}

// MarshalText lets selections appear in cache keys and JSON.
func (s Selection) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DateRange bounds film release dates, inclusive on both ends and compared
// by calendar day. A nil bound is open.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Between builds a closed range.
func Between(start, end time.Time) DateRange {
	return DateRange{Start: &start, End: &end}
}

// Inverted reports whether Start is after End. Inverted ranges match nothing.
func (r DateRange) Inverted() bool {
	return r.Start != nil && r.End != nil && day(*r.Start).After(day(*r.End))
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := day(t)
	if r.Start != nil && d.Before(day(*r.Start)) {
		return false
	}
	if r.End != nil && d.After(day(*r.End)) {
		return false
	}
	return true
}

// day truncates to the calendar date in the value's own location.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Criteria holds the dashboard filters. The zero value matches everything.
// Criteria combine with AND, so the order in which they are applied does
// not matter.
type Criteria struct {
	Language Selection `json:"language"`
	Director Selection `json:"director"`
	Studio   Selection `json:"studio"`
	Country  Selection `json:"country"`
	Dates    DateRange `json:"dates"`
}

// Matches reports whether a row satisfies every criterion.
func (c Criteria) Matches(r *dataset.Row) bool {
	f := r.Film
	return c.Language.matches(f.LanguageID) &&
		c.Director.matches(f.DirectorID) &&
		c.Studio.matches(f.StudioID) &&
		c.Country.matches(f.CountryID) &&
		c.Dates.Contains(f.ReleaseDate)
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Language.IsAll() && c.Director.IsAll() && c.Studio.IsAll() &&
		c.Country.IsAll() && c.Dates.Start == nil && c.Dates.End == nil
}

// Filter returns a new view with the rows of base that match c. base is not
// modified. An inverted date range yields an empty view; an empty view is a
// valid result.
func Filter(base *dataset.View, c Criteria) *dataset.View {
	if c.Dates.Inverted() {
		return base.Select(func(*dataset.Row) bool { return false })
	}
	return base.Select(c.Matches)
}
