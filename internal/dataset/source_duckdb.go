// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBSource reads entity tables through DuckDB.
//
// With Path set, tables named tbl<Entity> are read from that database file,
// opened read-only. Otherwise an in-memory DuckDB runs read_csv over
// tbl<Entity>.csv files in Dir with every column typed as VARCHAR, so values
// reach the loader exactly as written.
type DuckDBSource struct {
	Dir       string
	Path      string
	Delimiter rune
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	return "duckdb"
}

// ReadTables implements Source. A fresh connection is opened per call so
// that a replaced database file is picked up on reload.
func (s *DuckDBSource) ReadTables(ctx context.Context, entities []string) (map[string]*RawTable, error) {
	connStr := ":memory:"
	if s.Path != "" {
		if _, err := os.Stat(s.Path); err != nil {
			return nil, &LoadError{Entity: "database", Origin: s.Path, Err: fmt.Errorf("%w: %w", ErrMissingFile, err)}
		}
		connStr = s.Path + "?access_mode=read_only"
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer closeQuietly(conn)

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	var existing map[string]bool
	if s.Path != "" {
		if existing, err = listTables(ctx, conn); err != nil {
			return nil, err
		}
	}

	tables := make(map[string]*RawTable, len(entities))
	for _, entity := range entities {
		expr, origin, err := s.tableExpr(entity, existing)
		if err != nil {
			return nil, err
		}
		t, err := readQuery(ctx, conn, entity, origin, "SELECT * FROM "+expr)
		if err != nil {
			return nil, err
		}
		tables[entity] = t
	}
	return tables, nil
}

func (s *DuckDBSource) tableExpr(entity string, existing map[string]bool) (expr, origin string, err error) {
	name := TableName(entity)
	if s.Path != "" {
		if !existing[strings.ToLower(name)] {
			return "", "", &LoadError{Entity: entity, Origin: s.Path, Err: fmt.Errorf("%w: table %s", ErrMissingFile, name)}
		}
		return quoteIdent(name), s.Path + "#" + name, nil
	}

	path := filepath.Join(s.Dir, name+".csv")
	if _, statErr := os.Stat(path); statErr != nil {
		return "", "", &LoadError{Entity: entity, Origin: s.Dir, Err: fmt.Errorf("%w: %s.csv not found in %s", ErrMissingFile, name, s.Dir)}
	}
	delim := s.Delimiter
	if delim == 0 {
		delim = ','
	}
	expr = fmt.Sprintf("read_csv(%s, header = true, all_varchar = true, delim = %s)",
		quoteLiteral(path), quoteLiteral(string(delim)))
	return expr, path, nil
}

func listTables(ctx context.Context, conn *sql.DB) (map[string]bool, error) {
	rows, err := conn.QueryContext(ctx, "SELECT table_name FROM information_schema.tables")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer closeQuietly(rows)

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		out[strings.ToLower(name)] = true
	}
	return out, rows.Err()
}

// readQuery scans every column as a nullable string. NULL becomes "".
func readQuery(ctx context.Context, conn *sql.DB, entity, origin, query string) (*RawTable, error) {
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, &LoadError{Entity: entity, Origin: origin, Err: err}
	}
	defer closeQuietly(rows)

	header, err := rows.Columns()
	if err != nil {
		return nil, &LoadError{Entity: entity, Origin: origin, Err: err}
	}

	var records [][]string
	cells := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, &LoadError{Entity: entity, Origin: origin, Row: len(records) + 2, Err: err}
		}
		rec := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Entity: entity, Origin: origin, Err: err}
	}
	return NewRawTable(entity, origin, header, records), nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
