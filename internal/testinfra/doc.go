// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

// Package testinfra provides shared test fixtures.
//
// WriteFilmFixture writes a small, fully consistent set of entity tables to a
// temporary directory:
//
//	dir := testinfra.WriteFilmFixture(t)
//	loader := dataset.NewLoader(&dataset.CSVSource{Dir: dir}, nil)
//
// The fixture is small enough to reason about by hand; the expected values
// that tests assert on are documented next to the table contents.
//
// The package only writes files and never imports application packages, so
// any package can use it from its internal tests.
package testinfra
