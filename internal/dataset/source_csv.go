// Blockbuster - Film Box-Office Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/blockbuster

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CSVSource reads tbl<Entity>.csv files from Dir. When a file is not directly
// in Dir, subdirectories are searched and the first match in lexical walk
// order wins. <Entity>.csv is accepted as a fallback name.
type CSVSource struct {
	Dir       string
	Delimiter rune
}

// Name implements Source.
func (s *CSVSource) Name() string {
	return "csv"
}

// ReadTables implements Source.
func (s *CSVSource) ReadTables(ctx context.Context, entities []string) (map[string]*RawTable, error) {
	tables := make(map[string]*RawTable, len(entities))
	for _, entity := range entities {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path, err := s.locate(entity)
		if err != nil {
			return nil, err
		}
		t, err := s.readFile(entity, path)
		if err != nil {
			return nil, err
		}
		tables[entity] = t
	}
	return tables, nil
}

// Files returns the paths of the tables currently present, keyed by entity.
func (s *CSVSource) Files(entities []string) map[string]string {
	out := make(map[string]string, len(entities))
	for _, entity := range entities {
		if path, err := s.locate(entity); err == nil {
			out[entity] = path
		}
	}
	return out
}

func (s *CSVSource) locate(entity string) (string, error) {
	names := []string{TableName(entity) + ".csv", entity + ".csv"}
	for _, name := range names {
		path := filepath.Join(s.Dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	var found string
	walkErr := filepath.WalkDir(s.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || found != "" {
			return nil
		}
		if d.Name() == names[0] {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if found != "" {
		return found, nil
	}

	cause := fmt.Errorf("%w: %s not found in %s", ErrMissingFile, names[0], s.Dir)
	if walkErr != nil && !errors.Is(walkErr, fs.SkipAll) {
		cause = fmt.Errorf("%w: %s: %w", ErrMissingFile, names[0], walkErr)
	}
	return "", &LoadError{Entity: entity, Origin: s.Dir, Err: cause}
}

func (s *CSVSource) readFile(entity, path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Entity: entity, Origin: path, Err: fmt.Errorf("%w: %w", ErrMissingFile, err)}
	}
	defer closeQuietly(f)

	r := csv.NewReader(f)
	r.Comma = s.Delimiter
	if r.Comma == 0 {
		r.Comma = ','
	}
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty file, header row required")
		}
		return nil, &LoadError{Entity: entity, Origin: path, Row: 1, Err: err}
	}

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			row := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				row = pe.Line
			}
			return nil, &LoadError{Entity: entity, Origin: path, Row: row, Err: err}
		}
		if isBlank(rec) {
			continue
		}
		line, _ := r.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}

	t := NewRawTable(entity, path, header, records)
	t.Lines = lines
	return t, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
