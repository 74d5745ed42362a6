// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package models

import "time"

// Gender is the categorical gender column of actors and directors.
type Gender string

// GenderMale is the only value counted as male. Everything else, including
// empty, counts towards the female complement.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// IsMale reports whether g is exactly "Male".
func (g Gender) IsMale() bool {
	return g == GenderMale
}

// Film is one row of tblFilm. BoxOffice, Budget and Benefit are in millions.
type Film struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	ReleaseDate      time.Time `json:"release_date"`
	ReleaseYear      int       `json:"release_year"`
	BoxOffice        float64   `json:"box_office"`
	Budget           float64   `json:"budget"`
	Benefit          float64   `json:"benefit"`
	LanguageID       int       `json:"language_id"`
	DirectorID       int       `json:"director_id"`
	StudioID         int       `json:"studio_id"`
	CountryID        int       `json:"country_id"`
	OscarNominations int       `json:"oscar_nominations"`
	OscarWins        int       `json:"oscar_wins"`
}

// Person is one row of tblActor or tblDirector.
type Person struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Gender Gender     `json:"gender,omitempty"`
	DOB    *time.Time `json:"dob,omitempty"`
}

// Studio is one row of tblStudio.
type Studio struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Country is one row of tblCountry. Code is the optional ISO code.
type Country struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// Language is one row of tblLanguage.
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastEntry is one row of tblCast.
type CastEntry struct {
	ID      int `json:"id"`
	ActorID int `json:"actor_id"`
	FilmID  int `json:"film_id"`
}
