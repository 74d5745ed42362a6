// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/blockbuster/internal/testinfra"
)

func loadFixture(t *testing.T, files map[string]string) (*Dataset, error) {
	t.Helper()
	dir := testinfra.WriteTables(t, files)
	return NewLoader(&CSVSource{Dir: dir, Delimiter: ','}, nil).Load(context.Background())
}

func mustLoadFixture(t *testing.T) *Dataset {
	t.Helper()
	ds, err := loadFixture(t, testinfra.FilmFixture)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return ds
}

func TestLoadFixture(t *testing.T) {
	t.Parallel()

	ds := mustLoadFixture(t)

	want := map[string]int{
		EntityFilm:     3,
		EntityActor:    4,
		EntityDirector: 3,
		EntityStudio:   3,
		EntityCountry:  2,
		EntityLanguage: 2,
		EntityCast:     6,
	}
	got := ds.Tables()
	for entity, n := range want {
		if got[entity] != n {
			t.Errorf("Tables()[%s] = %d, want %d", entity, got[entity], n)
		}
	}
	if ds.Version == "" || ds.LoadedAt.IsZero() {
		t.Errorf("snapshot identity not set: version=%q loadedAt=%v", ds.Version, ds.LoadedAt)
	}
	if ds.Source != "csv" {
		t.Errorf("Source = %q, want csv", ds.Source)
	}
}

func TestLoadDerivesFields(t *testing.T) {
	t.Parallel()

	ds := mustLoadFixture(t)

	tests := []struct {
		id                          int
		box, budget, benefit        float64
		year                        int
		nominations, wins, language int
	}{
		{testinfra.FilmAlpha, 100, 40, 60, 2000, 3, 1, testinfra.LanguageEnglish},
		{testinfra.FilmBeta, 50, 60, -10, 2000, 0, 0, testinfra.LanguageFrench},
		{testinfra.FilmGamma, 200, 100, 100, 2001, 8, 4, testinfra.LanguageEnglish},
	}
	for _, tt := range tests {
		f, ok := ds.Film(tt.id)
		if !ok {
			t.Fatalf("film %d missing", tt.id)
		}
		if f.BoxOffice != tt.box || f.Budget != tt.budget || f.Benefit != tt.benefit {
			t.Errorf("film %d money = (%v, %v, %v), want (%v, %v, %v)",
				tt.id, f.BoxOffice, f.Budget, f.Benefit, tt.box, tt.budget, tt.benefit)
		}
		if f.ReleaseYear != tt.year {
			t.Errorf("film %d ReleaseYear = %d, want %d", tt.id, f.ReleaseYear, tt.year)
		}
		if f.OscarNominations != tt.nominations || f.OscarWins != tt.wins {
			t.Errorf("film %d oscars = %d/%d", tt.id, f.OscarNominations, f.OscarWins)
		}
		if f.LanguageID != tt.language {
			t.Errorf("film %d LanguageID = %d", tt.id, f.LanguageID)
		}
	}

	minDate, maxDate := ds.Bounds()
	if !minDate.Equal(time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("min bound = %v", minDate)
	}
	if !maxDate.Equal(time.Date(2001, 7, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("max bound = %v", maxDate)
	}
}

func TestLoadPeople(t *testing.T) {
	t.Parallel()

	ds := mustLoadFixture(t)

	alice, ok := ds.Actor(testinfra.ActorAlice)
	if !ok {
		t.Fatal("Alice missing")
	}
	if alice.Gender.IsMale() {
		t.Error("Alice parsed as male")
	}
	if alice.DOB == nil || alice.DOB.Year() != 1980 {
		t.Errorf("Alice DOB = %v", alice.DOB)
	}

	dana, _ := ds.Actor(testinfra.ActorDana)
	if dana.DOB != nil {
		t.Errorf("empty DOB should stay nil, got %v", dana.DOB)
	}

	besson, _ := ds.Director(testinfra.DirectorBesson)
	if besson.DOB != nil || besson.Name != "Luc Besson" {
		t.Errorf("Besson = %+v", besson)
	}

	lang, _ := ds.Language(testinfra.LanguageFrench)
	if lang.Name != "French" {
		t.Errorf("Language name = %q", lang.Name)
	}
	country, _ := ds.Country(testinfra.CountryFrance)
	if country.Code != "FR" {
		t.Errorf("Country code = %q", country.Code)
	}
}

func TestLoadViews(t *testing.T) {
	t.Parallel()

	ds := mustLoadFixture(t)

	if n := ds.FilmsView().Len(); n != 3 {
		t.Errorf("films view rows = %d, want 3", n)
	}
	if n := ds.StudiosView().Len(); n != 3 {
		t.Errorf("studios view rows = %d, want 3", n)
	}
	if n := ds.CastView().Len(); n != 6 {
		t.Errorf("cast view rows = %d, want 6", n)
	}

	ds.DirectorsView().Each(func(r *Row) bool {
		if r.Subject == nil || r.Subject.ID != r.Film.DirectorID {
			t.Errorf("director row subject mismatch for film %d", r.Film.ID)
		}
		return true
	})

	first := ds.CastView().At(0)
	if first.Subject == nil || first.Subject.ID != testinfra.ActorAlice || first.Film.ID != testinfra.FilmAlpha {
		t.Errorf("cast row 0 = film %d subject %+v", first.Film.ID, first.Subject)
	}
	if first.Studio == nil || first.Studio.ID != testinfra.StudioWarner {
		t.Errorf("cast row 0 studio not joined: %+v", first.Studio)
	}
	if ds.FilmsView().At(0).Subject != nil {
		t.Error("film rows must not carry a subject")
	}

	for _, kind := range []ViewKind{ViewFilms, ViewCast, ViewDirectors, ViewStudios} {
		v, ok := ds.View(kind)
		if !ok || v.Kind() != kind {
			t.Errorf("View(%s) = %v, %v", kind, v, ok)
		}
	}
	if _, ok := ds.View("genres"); ok {
		t.Error("unknown view kind accepted")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		files  map[string]string
		want   error
		entity string
		column string
	}{
		{
			name:   "missing file",
			files:  testinfra.WithTable("tblCast.csv", ""),
			want:   ErrMissingFile,
			entity: EntityCast,
		},
		{
			name:   "index column pattern",
			files:  testinfra.WithTable("tblStudio.csv", "ID,StudioName\n1,Warner\n"),
			want:   ErrMissingIDColumn,
			entity: EntityStudio,
			column: "StudioID",
		},
		{
			name: "bad release date",
			files: testinfra.WithTable("tblFilm.csv", `FilmID,FilmName,FilmReleaseDate,FilmBoxOfficeDollars,FilmBudgetDollars,FilmLanguageID,FilmDirectorID,FilmStudioID,FilmCountryID
1,Alpha,someday,100,40,1,1,1,1
`),
			want:   ErrBadDate,
			entity: EntityFilm,
			column: "FilmReleaseDate",
		},
		{
			name:   "bad DOB",
			files:  testinfra.WithTable("tblActor.csv", "ActorID,ActorName,ActorGender,ActorDOB\n1,A,Male,31/31/1999\n2,B,Male,\n3,C,Male,\n4,D,Female,\n"),
			want:   ErrBadDate,
			entity: EntityActor,
			column: "ActorDOB",
		},
		{
			name: "bad money",
			files: testinfra.WithTable("tblFilm.csv", `FilmID,FilmName,FilmReleaseDate,FilmBoxOfficeDollars,FilmBudgetDollars,FilmLanguageID,FilmDirectorID,FilmStudioID,FilmCountryID
1,Alpha,2000-05-01,lots,40,1,1,1,1
`),
			want:   ErrBadNumber,
			entity: EntityFilm,
			column: "FilmBoxOfficeDollars",
		},
		{
			name: "dangling studio",
			files: testinfra.WithTable("tblFilm.csv", `FilmID,FilmName,FilmReleaseDate,FilmBoxOfficeDollars,FilmBudgetDollars,FilmLanguageID,FilmDirectorID,FilmStudioID,FilmCountryID
1,Alpha,2000-05-01,100,40,1,1,99,1
`),
			want:   ErrDanglingReference,
			entity: EntityFilm,
			column: "FilmStudioID",
		},
		{
			name:   "duplicate id",
			files:  testinfra.WithTable("tblLanguage.csv", "LanguageID,Language\n1,English\n1,Anglais\n2,French\n"),
			want:   ErrDuplicateID,
			entity: EntityLanguage,
			column: "LanguageID",
		},
		{
			name:   "id out of range",
			files:  testinfra.WithTable("tblStudio.csv", "StudioID,StudioName\n1,Warner\n2,Gaumont\n18446744073709551619,Idle Pictures\n"),
			want:   ErrBadNumber,
			entity: EntityStudio,
			column: "StudioID",
		},
		{
			name:   "missing name column",
			files:  testinfra.WithTable("tblCountry.csv", "CountryID,Code\n1,US\n2,FR\n"),
			want:   ErrMissingColumn,
			entity: EntityCountry,
			column: "CountryName",
		},
		{
			name:   "cast references unknown actor",
			files:  testinfra.WithTable("tblCast.csv", "CastID,CastActorID,CastFilmID\n1,42,1\n"),
			want:   ErrDanglingReference,
			entity: EntityCast,
			column: "CastActorID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ds, err := loadFixture(t, tt.files)
			if ds != nil {
				t.Fatal("partial dataset returned alongside error")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("error %T is not a *LoadError", err)
			}
			if le.Entity != tt.entity {
				t.Errorf("Entity = %q, want %q", le.Entity, tt.entity)
			}
			if tt.column != "" && le.Column != tt.column {
				t.Errorf("Column = %q, want %q", le.Column, tt.column)
			}
		})
	}
}

func TestLoadReportsLine(t *testing.T) {
	t.Parallel()

	_, err := loadFixture(t, testinfra.WithTable("tblLanguage.csv", "LanguageID,Language\n1,English\n\nx,French\n"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if le.Row != 4 {
		t.Errorf("Row = %d, want 4 (blank line counted)", le.Row)
	}
}

func TestLoadAlternateLayoutsAndNames(t *testing.T) {
	t.Parallel()

	files := testinfra.WithTable("tblLanguage.csv", "")
	files["Language.csv"] = "LanguageID,LanguageName\n1,English\n2,French\n"
	files["tblFilm.csv"] = `FilmID,FilmName,FilmReleaseDate,FilmBoxOfficeDollars,FilmBudgetDollars,FilmLanguageID,FilmDirectorID,FilmStudioID,FilmCountryID
1,Alpha,05/01/2000,1.5e8,4.0E7,1.0,1,1,1
2,Beta,2000-11-20T00:00:00Z,50000000,60000000,2,2,2,2
3,Gamma,2001-07-04 10:30:00,200000000,100000000,1,1,1,1
`

	ds, err := loadFixture(t, files)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	alpha, _ := ds.Film(1)
	if alpha.BoxOffice != 150 || alpha.Budget != 40 {
		t.Errorf("exponent money = %v/%v, want 150/40", alpha.BoxOffice, alpha.Budget)
	}
	if alpha.ReleaseDate.Month() != time.May || alpha.ReleaseDate.Day() != 1 {
		t.Errorf("US layout parsed as %v", alpha.ReleaseDate)
	}
	gamma, _ := ds.Film(3)
	if gamma.ReleaseDate.Hour() != 0 {
		t.Errorf("release date not truncated to the day: %v", gamma.ReleaseDate)
	}
	if lang, _ := ds.Language(1); lang.Name != "English" {
		t.Errorf("LanguageName fallback not used: %q", lang.Name)
	}
}

func TestLoadConfiguredLayouts(t *testing.T) {
	t.Parallel()

	dir := testinfra.WriteTables(t, testinfra.WithTable("tblFilm.csv", `FilmID,FilmName,FilmReleaseDate,FilmBoxOfficeDollars,FilmBudgetDollars,FilmLanguageID,FilmDirectorID,FilmStudioID,FilmCountryID
1,Alpha,01.05.2000,100000000,40000000,1,1,1,1
2,Beta,20.11.2000,50000000,60000000,2,2,2,2
3,Gamma,04.07.2001,200000000,100000000,1,1,1,1
`))

	if _, err := NewLoader(&CSVSource{Dir: dir, Delimiter: ','}, nil).Load(context.Background()); !errors.Is(err, ErrBadDate) {
		t.Fatalf("default layouts error = %v, want ErrBadDate", err)
	}

	// Birth dates in the fixture are ISO, so both layouts are needed.
	ds, err := NewLoader(&CSVSource{Dir: dir, Delimiter: ','}, []string{"02.01.2006", "2006-01-02"}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if beta, _ := ds.Film(2); beta.ReleaseDate.Month() != time.November || beta.ReleaseDate.Day() != 20 {
		t.Errorf("configured layout parsed Beta as %v", beta.ReleaseDate)
	}
}

func TestLoadCanceled(t *testing.T) {
	t.Parallel()

	dir := testinfra.WriteFilmFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(&CSVSource{Dir: dir}, nil).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
