// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"time"

	"github.com/tomtom215/blockbuster/internal/models"
)

// Bracket is an age range at film release.
type Bracket string

// Brackets in display order. Lower bounds are inclusive.
const (
	BracketUnder20 Bracket = "<20"
	Bracket20to39  Bracket = "20-39"
	Bracket40to59  Bracket = "40-59"
	Bracket60Plus  Bracket = "60+"
)

// Brackets lists all brackets youngest first.
var Brackets = []Bracket{BracketUnder20, Bracket20to39, Bracket40to59, Bracket60Plus}

const daysPerYear = 365

// AgeAt returns floor((release - dob) / 365 days). ok is false when dob is
// unknown or after the release date.
func AgeAt(dob *time.Time, release time.Time) (age int, ok bool) {
	if dob == nil || dob.IsZero() {
		return 0, false
	}
	days := int(day(release).Sub(day(*dob)).Hours() / 24)
	if days < 0 {
		return 0, false
	}
	return days / daysPerYear, true
}

// BracketFor maps an age to its bracket.
func BracketFor(age int) Bracket {
	switch {
	case age < 20:
		return BracketUnder20
	case age < 40:
		return Bracket20to39
	case age < 60:
		return Bracket40to59
	default:
		return Bracket60Plus
	}
}

// BracketAt buckets p by age at release.
func BracketAt(p *models.Person, release time.Time) (Bracket, bool) {
	if p == nil {
		return "", false
	}
	age, ok := AgeAt(p.DOB, release)
	if !ok {
		return "", false
	}
	return BracketFor(age), true
}

func bracketRank(b Bracket) int {
	for i, x := range Brackets {
		if x == b {
			return i
		}
	}
	return len(Brackets)
}
