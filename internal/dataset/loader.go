// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/blockbuster/internal/models"
)

// Loader turns a Source into an immutable Dataset.
type Loader struct {
	source Source
	dates  dateParser
	now    func() time.Time
}

// NewLoader creates a Loader. Empty layouts fall back to DefaultDateLayouts.
func NewLoader(src Source, layouts []string) *Loader {
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	return &Loader{
		source: src,
		dates:  dateParser{layouts: append([]string(nil), layouts...)},
		now:    time.Now,
	}
}

// Source returns the underlying source.
func (l *Loader) Source() Source {
	return l.source
}

// Load reads every entity table, types the columns, derives benefit and
// release year, checks references and builds the joined views. Any problem
// is reported as a *LoadError; a partially loaded dataset is never returned.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	raw, err := l.source.ReadTables(ctx, Entities)
	if err != nil {
		return nil, err
	}
	for _, entity := range Entities {
		if raw[entity] == nil {
			return nil, &LoadError{Entity: entity, Err: ErrMissingFile}
		}
	}

	b := &builder{dates: l.dates, ds: newDataset()}
	steps := []struct {
		entity string
		fn     func(*RawTable) error
	}{
		{EntityLanguage, b.languages},
		{EntityCountry, b.countries},
		{EntityStudio, b.studios},
		{EntityDirector, b.directors},
		{EntityActor, b.actors},
		{EntityFilm, b.films},
		{EntityCast, b.cast},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.fn(raw[step.entity]); err != nil {
			return nil, err
		}
	}

	ds := b.ds
	ds.Version = uuid.NewString()
	ds.LoadedAt = l.now().UTC()
	ds.Source = l.source.Name()
	ds.finish()
	return ds, nil
}

type builder struct {
	dates dateParser
	ds    *Dataset
}

// cursor walks the records of one table with column lookups bound up front.
type cursor struct {
	t    *RawTable
	i    int
	cols map[string]int
	seen map[int]bool
}

// bind checks the index column and required columns. Each entry of required
// may list alternatives separated by "|"; the first present one is bound
// under the first name.
func bind(t *RawTable, required, optional []string) (*cursor, error) {
	c := &cursor{t: t, i: -1, cols: make(map[string]int), seen: make(map[int]bool)}

	idCol := IDColumn(t.Entity)
	pos, ok := t.Column(idCol)
	if !ok {
		return nil, &LoadError{
			Entity: t.Entity,
			Origin: t.Origin,
			Column: idCol,
			Err:    fmt.Errorf("%w: expected %s in header %v", ErrMissingIDColumn, idCol, t.Header),
		}
	}
	c.cols[idCol] = pos

	for _, spec := range required {
		names := strings.Split(spec, "|")
		bound := false
		for _, name := range names {
			if pos, ok := t.Column(name); ok {
				c.cols[names[0]] = pos
				bound = true
				break
			}
		}
		if !bound {
			return nil, &LoadError{Entity: t.Entity, Origin: t.Origin, Column: names[0], Err: ErrMissingColumn}
		}
	}
	for _, name := range optional {
		if pos, ok := t.Column(name); ok {
			c.cols[name] = pos
		}
	}
	return c, nil
}

func (c *cursor) next() bool {
	c.i++
	return c.i < len(c.t.Records)
}

// get returns the trimmed cell, or "" for an unbound optional column.
func (c *cursor) get(col string) string {
	pos, ok := c.cols[col]
	if !ok {
		return ""
	}
	rec := c.t.Records[c.i]
	if pos >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[pos])
}

func (c *cursor) fail(col string, err error) *LoadError {
	return &LoadError{Entity: c.t.Entity, Origin: c.t.Origin, Row: c.t.Line(c.i), Column: col, Err: err}
}

// id parses the index column and rejects duplicates.
func (c *cursor) id() (int, error) {
	col := IDColumn(c.t.Entity)
	id, err := parseID(c.get(col))
	if err != nil {
		return 0, c.fail(col, err)
	}
	if c.seen[id] {
		return 0, c.fail(col, fmt.Errorf("%w: %d", ErrDuplicateID, id))
	}
	c.seen[id] = true
	return id, nil
}

// ref parses a foreign key and checks it against exists.
func (c *cursor) ref(col string, exists func(int) bool) (int, error) {
	id, err := parseID(c.get(col))
	if err != nil {
		return 0, c.fail(col, err)
	}
	if !exists(id) {
		return 0, c.fail(col, fmt.Errorf("%w: no row with id %d", ErrDanglingReference, id))
	}
	return id, nil
}

func (b *builder) languages(t *RawTable) error {
	c, err := bind(t, []string{"Language|LanguageName"}, nil)
	if err != nil {
		return err
	}
	for c.next() {
		id, err := c.id()
		if err != nil {
			return err
		}
		b.ds.Languages = append(b.ds.Languages, models.Language{ID: id, Name: c.get("Language")})
	}
	return nil
}

func (b *builder) countries(t *RawTable) error {
	c, err := bind(t, []string{"CountryName"}, []string{"CountryCode"})
	if err != nil {
		return err
	}
	for c.next() {
		id, err := c.id()
		if err != nil {
			return err
		}
		b.ds.Countries = append(b.ds.Countries, models.Country{
			ID:   id,
			Name: c.get("CountryName"),
			Code: c.get("CountryCode"),
		})
	}
	return nil
}

func (b *builder) studios(t *RawTable) error {
	c, err := bind(t, []string{"StudioName"}, nil)
	if err != nil {
		return err
	}
	for c.next() {
		id, err := c.id()
		if err != nil {
			return err
		}
		b.ds.Studios = append(b.ds.Studios, models.Studio{ID: id, Name: c.get("StudioName")})
	}
	return nil
}

func (b *builder) directors(t *RawTable) error {
	people, err := b.people(t, "Director", false)
	if err != nil {
		return err
	}
	b.ds.Directors = people
	return nil
}

func (b *builder) actors(t *RawTable) error {
	people, err := b.people(t, "Actor", true)
	if err != nil {
		return err
	}
	b.ds.Actors = people
	return nil
}

// people reads actors and directors. Gender and DOB are required for actors.
// An empty DOB leaves the age unknown; a DOB that is present but unparsable
// fails the load.
func (b *builder) people(t *RawTable, prefix string, requireDemographics bool) ([]models.Person, error) {
	nameCol, genderCol, dobCol := prefix+"Name", prefix+"Gender", prefix+"DOB"

	required := []string{nameCol}
	var optional []string
	if requireDemographics {
		required = append(required, genderCol, dobCol)
	} else {
		optional = []string{genderCol, dobCol}
	}
	c, err := bind(t, required, optional)
	if err != nil {
		return nil, err
	}

	var out []models.Person
	for c.next() {
		id, err := c.id()
		if err != nil {
			return nil, err
		}
		dob, err := b.dates.parseOptional(c.get(dobCol))
		if err != nil {
			return nil, c.fail(dobCol, err)
		}
		out = append(out, models.Person{
			ID:     id,
			Name:   c.get(nameCol),
			Gender: models.Gender(c.get(genderCol)),
			DOB:    dob,
		})
	}
	return out, nil
}

func (b *builder) films(t *RawTable) error {
	c, err := bind(t,
		[]string{
			"FilmName",
			"FilmReleaseDate",
			"FilmBoxOfficeDollars",
			"FilmBudgetDollars",
			"FilmLanguageID",
			"FilmDirectorID",
			"FilmStudioID",
			"FilmCountryID",
		},
		[]string{"FilmOscarNominations", "FilmOscarWins"},
	)
	if err != nil {
		return err
	}

	ds := b.ds
	ds.indexDimensions()

	for c.next() {
		f := models.Film{Name: c.get("FilmName")}
		if f.ID, err = c.id(); err != nil {
			return err
		}

		release, err := b.dates.parse(c.get("FilmReleaseDate"))
		if err != nil {
			return c.fail("FilmReleaseDate", err)
		}
		f.ReleaseDate = release
		f.ReleaseYear = release.Year()

		if f.BoxOffice, err = toMillions(c.get("FilmBoxOfficeDollars")); err != nil {
			return c.fail("FilmBoxOfficeDollars", err)
		}
		if f.Budget, err = toMillions(c.get("FilmBudgetDollars")); err != nil {
			return c.fail("FilmBudgetDollars", err)
		}
		f.Benefit = f.BoxOffice - f.Budget

		if f.LanguageID, err = c.ref("FilmLanguageID", ds.hasLanguage); err != nil {
			return err
		}
		if f.DirectorID, err = c.ref("FilmDirectorID", ds.hasDirector); err != nil {
			return err
		}
		if f.StudioID, err = c.ref("FilmStudioID", ds.hasStudio); err != nil {
			return err
		}
		if f.CountryID, err = c.ref("FilmCountryID", ds.hasCountry); err != nil {
			return err
		}

		if f.OscarNominations, err = parseCount(c.get("FilmOscarNominations")); err != nil {
			return c.fail("FilmOscarNominations", err)
		}
		if f.OscarWins, err = parseCount(c.get("FilmOscarWins")); err != nil {
			return c.fail("FilmOscarWins", err)
		}

		ds.Films = append(ds.Films, f)
	}
	return nil
}

func (b *builder) cast(t *RawTable) error {
	c, err := bind(t, []string{"CastActorID", "CastFilmID"}, nil)
	if err != nil {
		return err
	}

	ds := b.ds
	ds.indexPeopleAndFilms()

	for c.next() {
		var e models.CastEntry
		if e.ID, err = c.id(); err != nil {
			return err
		}
		if e.ActorID, err = c.ref("CastActorID", ds.hasActor); err != nil {
			return err
		}
		if e.FilmID, err = c.ref("CastFilmID", ds.hasFilm); err != nil {
			return err
		}
		ds.Cast = append(ds.Cast, e)
	}
	return nil
}
