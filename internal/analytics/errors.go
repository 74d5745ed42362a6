// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package analytics

import (
	"errors"
	"fmt"
)

// ErrInvalidSelection is wrapped by every error caused by a bad user choice
// (unknown metric, reducer or group key, or a key the view cannot serve).
var ErrInvalidSelection = errors.New("invalid selection")

// ColumnNotFoundError means a metric or group key is not available in the
// view being aggregated.
type ColumnNotFoundError struct {
	Column string
	View   string
}

func (e *ColumnNotFoundError) Error() string {
	if e.View == "" {
		return fmt.Sprintf("column %q not found", e.Column)
	}
	return fmt.Sprintf("column %q not found in %s view", e.Column, e.View)
}

// Unwrap lets errors.Is(err, ErrInvalidSelection) match.
func (e *ColumnNotFoundError) Unwrap() error {
	return ErrInvalidSelection
}

// IsInvalidSelection reports whether err was caused by the user's selection
// rather than by the system.
func IsInvalidSelection(err error) bool {
	return errors.Is(err, ErrInvalidSelection)
}

// WarningEmptyResult is the warning code surfaced for empty results.
const WarningEmptyResult = "EMPTY_RESULT"

// EmptyResultWarning marks a valid result with zero rows or groups. It is
// not returned as an error; results expose it through Warning().
type EmptyResultWarning struct {
	View string
}

func (w *EmptyResultWarning) Error() string {
	return fmt.Sprintf("no data for %s with the current filters", w.View)
}

// Code returns WarningEmptyResult.
func (w *EmptyResultWarning) Code() string {
	return WarningEmptyResult
}
