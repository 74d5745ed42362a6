// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package testinfra

import (
	"os"
	"path/filepath"
	"testing"
)

// Fixture ids.
const (
	LanguageEnglish = 1
	LanguageFrench  = 2

	CountryUSA    = 1
	CountryFrance = 2

	StudioWarner  = 1
	StudioGaumont = 2
	StudioIdle    = 3 // has no films

	DirectorNolan   = 1
	DirectorBigelow = 2
	DirectorBesson  = 3 // no films, no DOB

	ActorAlice = 1 // Female, 1980-01-15
	ActorBob   = 2 // Male, 1960-06-01
	ActorCarl  = 3 // Male, 1940-03-03
	ActorDana  = 4 // Female, no DOB

	FilmAlpha = 1 // 2000-05-01, 100M box office, 40M budget
	FilmBeta  = 2 // 2000-11-20, 50M box office, 60M budget
	FilmGamma = 3 // 2001-07-04, 200M box office, 100M budget
)

// FilmFixture is the table content written by WriteFilmFixture.
//
// Cast: Alpha{Alice, Bob}, Beta{Dana}, Gamma{Bob, Carl, Alice}.
// Ages at release: Alice 20 (Alpha) and 21 (Gamma), Bob 39 (Alpha) and 41
// (Gamma), Carl 61 (Gamma), Dana unknown.
var FilmFixture = map[string]string{
	"tblLanguage.csv": `LanguageID,Language
1,English
2,French
`,
	"tblCountry.csv": `CountryID,CountryName,CountryCode
1,United States,US
2,France,FR
`,
	"tblStudio.csv": `StudioID,StudioName
1,Warner Bros.
2,Gaumont
3,Idle Pictures
`,
	"tblDirector.csv": `DirectorID,DirectorName,DirectorGender,DirectorDOB
1,Christopher Nolan,Male,1970-07-30
2,Kathryn Bigelow,Female,1951-11-27
3,Luc Besson,Male,
`,
	"tblActor.csv": `ActorID,ActorName,ActorGender,ActorDOB
1,Alice Archer,Female,1980-01-15
2,Bob Baker,Male,1960-06-01
3,Carl Cooper,Male,1940-03-03
4,Dana Dean,Female,
`,
	"tblFilm.csv": `FilmID,FilmName,FilmReleaseDate,FilmBoxOfficeDollars,FilmBudgetDollars,FilmLanguageID,FilmDirectorID,FilmStudioID,FilmCountryID,FilmOscarNominations,FilmOscarWins
1,Alpha,2000-05-01,100000000,40000000,1,1,1,1,3,1
2,Beta,2000-11-20,50000000,60000000,2,2,2,2,0,0
3,Gamma,2001-07-04,200000000,100000000,1,1,1,1,8,4
`,
	"tblCast.csv": `CastID,CastActorID,CastFilmID
1,1,1
2,2,1
3,2,3
4,3,3
5,4,2
6,1,3
`,
}

// WriteFilmFixture writes FilmFixture to a new temp dir and returns its path.
func WriteFilmFixture(t testing.TB) string {
	t.Helper()
	return WriteTables(t, FilmFixture)
}

// WriteTables writes name -> content files to a new temp dir.
func WriteTables(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}

// WithTable returns a copy of FilmFixture with one file replaced. An empty
// content removes the file.
func WithTable(name, content string) map[string]string {
	out := make(map[string]string, len(FilmFixture))
	for k, v := range FilmFixture {
		out[k] = v
	}
	if content == "" {
		delete(out, name)
	} else {
		out[name] = content
	}
	return out
}
