// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/blockbuster/internal/config"
)

// Entity names. Each maps to a source table named tbl<Entity> whose index
// column is <Entity>ID.
const (
	EntityFilm     = "Film"
	EntityActor    = "Actor"
	EntityDirector = "Director"
	EntityStudio   = "Studio"
	EntityCountry  = "Country"
	EntityLanguage = "Language"
	EntityCast     = "Cast"
)

// Entities lists every table a snapshot needs, in load order.
var Entities = []string{
	EntityLanguage,
	EntityCountry,
	EntityStudio,
	EntityDirector,
	EntityActor,
	EntityFilm,
	EntityCast,
}

// TableName returns the source table name for an entity.
func TableName(entity string) string {
	return "tbl" + entity
}

// IDColumn returns the index column name for an entity.
func IDColumn(entity string) string {
	return entity + "ID"
}

// Source reads the raw entity tables. Implementations return a *LoadError
// wrapping ErrMissingFile when a requested table does not exist.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// ReadTables reads every named entity table.
	ReadTables(ctx context.Context, entities []string) (map[string]*RawTable, error)
}

// RawTable is an entity table as strings, before typing.
type RawTable struct {
	Entity  string
	Origin  string
	Header  []string
	Records [][]string

	// Lines holds the source line of each record, for error reporting.
	// When nil, records are assumed to start on line 2.
	Lines []int

	index map[string]int
}

// NewRawTable builds a RawTable. Header names are trimmed and a leading
// UTF-8 byte order mark is dropped.
func NewRawTable(entity, origin string, header []string, records [][]string) *RawTable {
	t := &RawTable{
		Entity:  entity,
		Origin:  origin,
		Header:  make([]string, len(header)),
		Records: records,
		index:   make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.Header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// Line returns the source line of record i.
func (t *RawTable) Line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// Column returns the position of a named column.
func (t *RawTable) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// NewSource builds the Source selected by configuration.
func NewSource(cfg *config.DatasetConfig) (Source, error) {
	delim := ','
	if cfg.Delimiter != "" {
		delim = []rune(cfg.Delimiter)[0]
	}
	switch cfg.Source {
	case config.SourceCSV, "":
		return &CSVSource{Dir: cfg.Dir, Delimiter: delim}, nil
	case config.SourceDuckDB:
		return &DuckDBSource{Dir: cfg.Dir, Path: cfg.DuckDBPath, Delimiter: delim}, nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}
