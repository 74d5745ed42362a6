// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import "github.com/tomtom215/blockbuster/internal/models"

// ViewKind names a joined base view.
type ViewKind string

// Base views.
const (
	ViewFilms     ViewKind = "films"
	ViewCast      ViewKind = "cast"
	ViewDirectors ViewKind = "directors"
	ViewStudios   ViewKind = "studios"
)

// HasSubject reports whether rows of this kind carry a person.
func (k ViewKind) HasSubject() bool {
	return k == ViewCast || k == ViewDirectors
}

// Row is one joined row. Every row carries its film and the film's four
// dimension rows, so filtering never needs another join. Subject is the
// actor (cast view) or director (directors view), nil otherwise.
type Row struct {
	Film     *models.Film
	Language *models.Language
	Director *models.Person
	Studio   *models.Studio
	Country  *models.Country
	Subject  *models.Person
}

// View is an ordered, read-only row set. Filtering produces a new View that
// shares rows with its parent.
type View struct {
	kind ViewKind
	rows []*Row
}

// NewView builds a view over a copy of rows.
func NewView(kind ViewKind, rows []*Row) *View {
	return &View{kind: kind, rows: append([]*Row(nil), rows...)}
}

// Kind returns the base view kind.
func (v *View) Kind() ViewKind {
	return v.kind
}

// Len returns the number of rows.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.rows)
}

// At returns row i.
func (v *View) At(i int) *Row {
	return v.rows[i]
}

// Each calls fn for every row in order until fn returns false.
func (v *View) Each(fn func(*Row) bool) {
	if v == nil {
		return
	}
	for _, r := range v.rows {
		if !fn(r) {
			return
		}
	}
}

// Select returns a new view holding the rows for which keep is true.
func (v *View) Select(keep func(*Row) bool) *View {
	out := &View{kind: v.kind, rows: make([]*Row, 0, len(v.rows))}
	for _, r := range v.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}
