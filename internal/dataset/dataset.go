// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

// Package dataset loads the film entity tables into an immutable in-memory
// snapshot and serves it through a Store that swaps snapshots atomically.
//
// A Dataset is never modified after Load returns. Everything handed out by
// it (entity slices, views, rows) must be treated as read-only by callers.
package dataset

import (
	"time"

	"github.com/tomtom215/blockbuster/internal/models"
)

// Dataset is one loaded snapshot of every entity table.
type Dataset struct {
	Version  string
	LoadedAt time.Time
	Source   string

	// Tables in source order.
	Films     []models.Film
	Actors    []models.Person
	Directors []models.Person
	Studios   []models.Studio
	Countries []models.Country
	Languages []models.Language
	Cast      []models.CastEntry

	filmIdx     map[int]int
	actorIdx    map[int]int
	directorIdx map[int]int
	studioIdx   map[int]int
	countryIdx  map[int]int
	languageIdx map[int]int

	filmsView     *View
	castView      *View
	directorsView *View
	studiosView   *View

	minDate time.Time
	maxDate time.Time
}

func newDataset() *Dataset {
	return &Dataset{}
}

func indexBy[T any](rows []T, id func(*T) int) map[int]int {
	idx := make(map[int]int, len(rows))
	for i := range rows {
		idx[id(&rows[i])] = i
	}
	return idx
}

func (d *Dataset) indexDimensions() {
	d.languageIdx = indexBy(d.Languages, func(l *models.Language) int { return l.ID })
	d.countryIdx = indexBy(d.Countries, func(c *models.Country) int { return c.ID })
	d.studioIdx = indexBy(d.Studios, func(s *models.Studio) int { return s.ID })
	d.directorIdx = indexBy(d.Directors, func(p *models.Person) int { return p.ID })
}

func (d *Dataset) indexPeopleAndFilms() {
	d.actorIdx = indexBy(d.Actors, func(p *models.Person) int { return p.ID })
	d.filmIdx = indexBy(d.Films, func(f *models.Film) int { return f.ID })
}

func (d *Dataset) hasLanguage(id int) bool { _, ok := d.languageIdx[id]; return ok }
func (d *Dataset) hasCountry(id int) bool  { _, ok := d.countryIdx[id]; return ok }
func (d *Dataset) hasStudio(id int) bool   { _, ok := d.studioIdx[id]; return ok }
func (d *Dataset) hasDirector(id int) bool { _, ok := d.directorIdx[id]; return ok }
func (d *Dataset) hasActor(id int) bool    { _, ok := d.actorIdx[id]; return ok }
func (d *Dataset) hasFilm(id int) bool     { _, ok := d.filmIdx[id]; return ok }

// Film returns the film with the given id.
func (d *Dataset) Film(id int) (*models.Film, bool) {
	i, ok := d.filmIdx[id]
	if !ok {
		return nil, false
	}
	return &d.Films[i], true
}

// Actor returns the actor with the given id.
func (d *Dataset) Actor(id int) (*models.Person, bool) {
	i, ok := d.actorIdx[id]
	if !ok {
		return nil, false
	}
	return &d.Actors[i], true
}

// Director returns the director with the given id.
func (d *Dataset) Director(id int) (*models.Person, bool) {
	i, ok := d.directorIdx[id]
	if !ok {
		return nil, false
	}
	return &d.Directors[i], true
}

// Studio returns the studio with the given id.
func (d *Dataset) Studio(id int) (*models.Studio, bool) {
	i, ok := d.studioIdx[id]
	if !ok {
		return nil, false
	}
	return &d.Studios[i], true
}

// Country returns the country with the given id.
func (d *Dataset) Country(id int) (*models.Country, bool) {
	i, ok := d.countryIdx[id]
	if !ok {
		return nil, false
	}
	return &d.Countries[i], true
}

// Language returns the language with the given id.
func (d *Dataset) Language(id int) (*models.Language, bool) {
	i, ok := d.languageIdx[id]
	if !ok {
		return nil, false
	}
	return &d.Languages[i], true
}

// Tables returns the row count of each entity table.
func (d *Dataset) Tables() map[string]int {
	return map[string]int{
		EntityFilm:     len(d.Films),
		EntityActor:    len(d.Actors),
		EntityDirector: len(d.Directors),
		EntityStudio:   len(d.Studios),
		EntityCountry:  len(d.Countries),
		EntityLanguage: len(d.Languages),
		EntityCast:     len(d.Cast),
	}
}

// Bounds returns the earliest and latest film release dates. Both are zero
// when there are no films.
func (d *Dataset) Bounds() (minDate, maxDate time.Time) {
	return d.minDate, d.maxDate
}

// Summary describes the snapshot for the API.
func (d *Dataset) Summary() models.DatasetSummary {
	return models.DatasetSummary{
		Version:  d.Version,
		LoadedAt: d.LoadedAt,
		Source:   d.Source,
		Tables:   d.Tables(),
		MinDate:  d.minDate,
		MaxDate:  d.maxDate,
	}
}

// FilmsView returns one row per film.
func (d *Dataset) FilmsView() *View { return d.filmsView }

// CastView returns one row per cast entry, with the actor as subject.
func (d *Dataset) CastView() *View { return d.castView }

// DirectorsView returns one row per film, with its director as subject.
func (d *Dataset) DirectorsView() *View { return d.directorsView }

// StudiosView returns one row per film, for studio rankings.
func (d *Dataset) StudiosView() *View { return d.studiosView }

// View returns the base view of the given kind.
func (d *Dataset) View(kind ViewKind) (*View, bool) {
	switch kind {
	case ViewFilms:
		return d.filmsView, true
	case ViewCast:
		return d.castView, true
	case ViewDirectors:
		return d.directorsView, true
	case ViewStudios:
		return d.studiosView, true
	default:
		return nil, false
	}
}

// finish builds indexes, joined views and date bounds. Called once by Load.
func (d *Dataset) finish() {
	d.indexDimensions()
	d.indexPeopleAndFilms()

	filmRows := make([]*Row, 0, len(d.Films))
	directorRows := make([]*Row, 0, len(d.Films))
	byFilm := make(map[int]*Row, len(d.Films))

	for i := range d.Films {
		f := &d.Films[i]
		base := d.joinFilm(f)
		filmRows = append(filmRows, base)
		byFilm[f.ID] = base

		withDirector := *base
		withDirector.Subject = base.Director
		directorRows = append(directorRows, &withDirector)

		if d.minDate.IsZero() || f.ReleaseDate.Before(d.minDate) {
			d.minDate = f.ReleaseDate
		}
		if f.ReleaseDate.After(d.maxDate) {
			d.maxDate = f.ReleaseDate
		}
	}

	castRows := make([]*Row, 0, len(d.Cast))
	for _, e := range d.Cast {
		base := byFilm[e.FilmID]
		actor, _ := d.Actor(e.ActorID)
		row := *base
		row.Subject = actor
		castRows = append(castRows, &row)
	}

	d.filmsView = &View{kind: ViewFilms, rows: filmRows}
	d.studiosView = &View{kind: ViewStudios, rows: filmRows}
	d.directorsView = &View{kind: ViewDirectors, rows: directorRows}
	d.castView = &View{kind: ViewCast, rows: castRows}
}

func (d *Dataset) joinFilm(f *models.Film) *Row {
	row := &Row{Film: f}
	row.Language, _ = d.Language(f.LanguageID)
	row.Director, _ = d.Director(f.DirectorID)
	row.Studio, _ = d.Studio(f.StudioID)
	row.Country, _ = d.Country(f.CountryID)
	return row
}
