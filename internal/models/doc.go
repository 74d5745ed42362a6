// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

/*
Package models defines the data structures shared across Blockbuster.

Model categories:

 1. Entity rows, immutable once loaded:
    - Film: release date, money columns in millions, foreign keys
    - Person: actors and directors (gender, date of birth)
    - Studio, Country, Language: id and name
    - CastEntry: actor to film join row

 2. API envelope:
    - APIResponse, Metadata, APIError

 3. Chart-ready shapes:
    - Chart and Series: labels plus one or more numeric series
    - GenderShare, HistogramBin: inclusivity distributions
    - Dimensions: filter options for dashboards

Entity money columns are already divided by 1e6 by the loader; nothing
downstream converts units again.
*/
package models
