// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package schema normalizes arbitrary movie-dataset headers onto the
// canonical fields the pipeline trains on. Public datasets name the same
// columns a dozen ways; the alias table absorbs that so the rest of the
// pipeline sees one schema.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cinerec/cinerec/internal/dataset"
	"github.com/cinerec/cinerec/internal/recommend"
)

// Canonical field names.
const (
	FieldTitle       = "title"
	FieldOverview    = "overview"
	FieldGenres      = "genres"
	FieldRating      = "rating"
	FieldReleaseDate = "release_date"
)

// field describes one canonical field: its alias list in priority order
// and whether training can proceed without it.
type field struct {
	name     string
	aliases  []string
	required bool
}

// aliasTable is the full schema in resolution order. Earlier aliases win
// when a dataset carries several candidates for the same field.
var aliasTable = []field{
	{name: FieldTitle, aliases: []string{"title", "movie_title", "name"}, required: true},
	{name: FieldOverview, aliases: []string{"overview", "plot", "description", "summary", "storyline"}, required: true},
	{name: FieldGenres, aliases: []string{"genres", "genre", "categories"}},
	{name: FieldRating, aliases: []string{"vote_average", "rating", "imdb_rating", "score"}},
	{name: FieldReleaseDate, aliases: []string{"release_date", "year", "release_year"}},
}

// Mapping records which source column each canonical field resolved to.
type Mapping map[string]ResolvedColumn

// ResolvedColumn is one resolved field: the source header and its column
// index in the table.
type ResolvedColumn struct {
	Source string
	Index  int
}

// SchemaError reports required canonical fields that no source column
// satisfies.
type SchemaError struct {
	Missing []string
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset is missing required column(s) %s; available columns: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Columns, ", "))
}

// EmptyCorpusError reports that cleaning removed every row.
type EmptyCorpusError struct {
	TotalRows int
}

func (e *EmptyCorpusError) Error() string {
	return fmt.Sprintf("no usable rows after cleaning (%d rows read, all missing title or overview)", e.TotalRows)
}

// Resolve maps the table's headers onto the canonical schema. Header
// comparison is case-insensitive with surrounding whitespace ignored.
// Missing optional fields simply stay absent from the mapping; missing
// required fields fail with a *SchemaError listing everything the caller
// needs to fix at once.
func Resolve(columns []string) (Mapping, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	mapping := make(Mapping, len(aliasTable))
	var missing []string
	for _, f := range aliasTable {
		found := false
		for _, alias := range f.aliases {
			if i, ok := index[alias]; ok {
				mapping[f.name] = ResolvedColumn{Source: columns[i], Index: i}
				found = true
				break
			}
		}
		if !found && f.required {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Columns: columns}
	}
	return mapping, nil
}

// Report returns one human-readable line per canonical field describing
// how it resolved, in schema order.
func (m Mapping) Report() []string {
	lines := make([]string, 0, len(aliasTable))
	for _, f := range aliasTable {
		if rc, ok := m[f.name]; ok {
			lines = append(lines, fmt.Sprintf("%s <- %s", f.name, rc.Source))
		} else {
			lines = append(lines, fmt.Sprintf("%s <- (absent)", f.name))
		}
	}
	return lines
}

// Clean projects the raw table through the mapping into a catalog. Rows
// with a blank title or overview are dropped; everything else is kept in
// source order, so the catalog index is stable across identical inputs.
// The rating column is parsed leniently: unparseable values become
// absent, never an error.
func Clean(m Mapping, t *dataset.Table) (recommend.Catalog, error) {
	title := m[FieldTitle]
	overview := m[FieldOverview]
	genres, hasGenres := m[FieldGenres]
	rating, hasRating := m[FieldRating]
	release, hasRelease := m[FieldReleaseDate]

	catalog := make(recommend.Catalog, 0, len(t.Rows))
	for _, row := range t.Rows {
		it := recommend.Item{
			Title:    strings.TrimSpace(cell(row, title.Index)),
			Overview: strings.TrimSpace(cell(row, overview.Index)),
		}
		if it.Title == "" || it.Overview == "" {
			continue
		}
		if hasGenres {
			it.Genres = strings.TrimSpace(cell(row, genres.Index))
		}
		if hasRating {
			if v, err := strconv.ParseFloat(strings.TrimSpace(cell(row, rating.Index)), 64); err == nil {
				it.Rating = &v
			}
		}
		if hasRelease {
			it.ReleaseDate = strings.TrimSpace(cell(row, release.Index))
		}
		catalog = append(catalog, it)
	}
	if len(catalog) == 0 {
		return nil, &EmptyCorpusError{TotalRows: len(t.Rows)}
	}
	return catalog, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
