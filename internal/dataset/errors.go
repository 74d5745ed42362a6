// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrMissingFile means a required entity table could not be found.
	ErrMissingFile = errors.New("required table missing")

	// ErrMissingIDColumn means the table has no <Entity>ID index column.
	ErrMissingIDColumn = errors.New("index column missing")

	// ErrMissingColumn means a required non-index column is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrBadDate means a date cell matched none of the configured layouts.
	ErrBadDate = errors.New("unparsable date")

	// ErrBadNumber means a numeric cell could not be parsed.
	ErrBadNumber = errors.New("unparsable number")

	// ErrDuplicateID means an identifier occurs twice in one table.
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrDanglingReference means a foreign key names a row that does not exist.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrNotLoaded is returned by Store when no snapshot has been loaded yet.
	ErrNotLoaded = errors.New("dataset not loaded")
)

// LoadError reports why a snapshot could not be built. Row is the 1-based
// line in the source (the header is line 1) and is zero for table-level
// problems.
type LoadError struct {
	Entity string
	Origin string
	Row    int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load ")
	b.WriteString(e.Entity)
	if e.Origin != "" {
		fmt.Fprintf(&b, " (%s)", e.Origin)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %s", e.Column)
	}
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// closeQuietly closes a resource on an error path where the close error is
// not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
