// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package dataset loads the raw training table from disk. Ingestion runs
// through an in-memory DuckDB instance: its CSV sniffer handles quoting,
// embedded newlines and encoding quirks that hand-rolled parsing gets
// wrong on real movie datasets.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Table is a raw, untyped table: every cell is a string exactly as it
// appeared in the source file. Schema resolution and typing happen later.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadCSV loads path into a Table. All columns are read as varchar so
// that typing decisions stay with the schema layer.
func ReadCSV(ctx context.Context, path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("dataset file %s: %w", path, err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	// read_csv_auto takes the path as a SQL literal, not a bind
	// parameter; single quotes in the path are doubled.
	query := fmt.Sprintf(
		"SELECT * FROM read_csv_auto('%s', header=true, all_varchar=true)",
		strings.ReplaceAll(path, "'", "''"),
	)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %s: columns: %w", path, err)
	}

	table := &Table{Columns: columns}
	scan := make([]sql.NullString, len(columns))
	ptrs := make([]any, len(columns))
	for i := range scan {
		ptrs[i] = &scan[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("read %s: scan: %w", path, err)
		}
		row := make([]string, len(columns))
		for i, v := range scan {
			if v.Valid {
				row[i] = v.String
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}
