// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/cinerec/cinerec/internal/dataset"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    map[string]string // canonical field -> source column
		wantErr bool
		missing []string
	}{
		{
			name:    "canonical names pass through",
			columns: []string{"title", "overview", "genres", "vote_average", "release_date"},
			want: map[string]string{
				FieldTitle:       "title",
				FieldOverview:    "overview",
				FieldGenres:      "genres",
				FieldRating:      "vote_average",
				FieldReleaseDate: "release_date",
			},
		},
		{
			name:    "aliases resolve",
			columns: []string{"movie_title", "plot", "genre", "imdb_rating", "year"},
			want: map[string]string{
				FieldTitle:       "movie_title",
				FieldOverview:    "plot",
				FieldGenres:      "genre",
				FieldRating:      "imdb_rating",
				FieldReleaseDate: "year",
			},
		},
		{
			name:    "case insensitive with whitespace",
			columns: []string{" Title ", "OVERVIEW"},
			want: map[string]string{
				FieldTitle:    " Title ",
				FieldOverview: "OVERVIEW",
			},
		},
		{
			name:    "first alias wins over later alias",
			columns: []string{"description", "summary", "name", "title"},
			want: map[string]string{
				FieldTitle:    "title",
				FieldOverview: "description",
			},
		},
		{
			name:    "optional fields may be absent",
			columns: []string{"title", "overview"},
			want: map[string]string{
				FieldTitle:    "title",
				FieldOverview: "overview",
			},
		},
		{
			name:    "missing required fields reported together",
			columns: []string{"genres", "runtime"},
			wantErr: true,
			missing: []string{"title", "overview"},
		},
		{
			name:    "missing overview only",
			columns: []string{"title", "genres"},
			wantErr: true,
			missing: []string{"overview"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Resolve(tt.columns)
			if tt.wantErr {
				var se *SchemaError
				if !errors.As(err, &se) {
					t.Fatalf("error = %v, want *SchemaError", err)
				}
				if strings.Join(se.Missing, ",") != strings.Join(tt.missing, ",") {
					t.Errorf("Missing = %v, want %v", se.Missing, tt.missing)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if len(m) != len(tt.want) {
				t.Errorf("resolved %d fields, want %d: %v", len(m), len(tt.want), m)
			}
			for fieldName, source := range tt.want {
				rc, ok := m[fieldName]
				if !ok {
					t.Errorf("field %q not resolved", fieldName)
					continue
				}
				if rc.Source != source {
					t.Errorf("field %q <- %q, want %q", fieldName, rc.Source, source)
				}
			}
		})
	}
}

func TestMappingReport(t *testing.T) {
	m, err := Resolve([]string{"name", "plot"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	lines := m.Report()
	if len(lines) != 5 {
		t.Fatalf("got %d report lines, want 5", len(lines))
	}
	if lines[0] != "title <- name" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if lines[2] != "genres <- (absent)" {
		t.Errorf("lines[2] = %q", lines[2])
	}
}

func TestClean(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"title", "overview", "genres", "vote_average", "release_date"},
		Rows: [][]string{
			{"The Matrix", "A hacker learns the truth.", "Action, Sci-Fi", "8.7", "1999-03-31"},
			{"", "An overview with no title.", "", "5.0", ""},
			{"No Overview", "   ", "", "", ""},
			{"Heat", "A thief and a detective.", "Crime", "not-a-number", "1995-12-15"},
		},
	}
	m, err := Resolve(table.Columns)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	catalog, err := Clean(m, table)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("got %d items, want 2 (blank title and blank overview rows dropped)", len(catalog))
	}

	matrix := catalog[0]
	if matrix.Title != "The Matrix" || matrix.Genres != "Action, Sci-Fi" || matrix.ReleaseDate != "1999-03-31" {
		t.Errorf("first item = %+v", matrix)
	}
	if matrix.Rating == nil || *matrix.Rating != 8.7 {
		t.Errorf("first item rating = %v, want 8.7", matrix.Rating)
	}

	heat := catalog[1]
	if heat.Title != "Heat" {
		t.Errorf("second item = %+v", heat)
	}
	if heat.Rating != nil {
		t.Errorf("unparseable rating should be absent, got %v", *heat.Rating)
	}
}

func TestCleanOptionalColumnsAbsent(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"title", "overview"},
		Rows: [][]string{
			{"Solaris", "A psychologist visits a space station."},
		},
	}
	m, err := Resolve(table.Columns)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	catalog, err := Clean(m, table)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	it := catalog[0]
	if it.Genres != "" || it.Rating != nil || it.ReleaseDate != "" {
		t.Errorf("optional fields should be zero, got %+v", it)
	}
}

func TestCleanEmptyCorpus(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"title", "overview"},
		Rows: [][]string{
			{"", "no title"},
			{"no overview", ""},
		},
	}
	m, err := Resolve(table.Columns)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	_, err = Clean(m, table)
	var ece *EmptyCorpusError
	if !errors.As(err, &ece) {
		t.Fatalf("error = %v, want *EmptyCorpusError", err)
	}
	if ece.TotalRows != 2 {
		t.Errorf("TotalRows = %d, want 2", ece.TotalRows)
	}
}

func TestCleanShortRows(t *testing.T) {
	// Rows narrower than the header must not panic; missing cells read
	// as blank.
	table := &dataset.Table{
		Columns: []string{"title", "overview", "genres"},
		Rows: [][]string{
			{"Alien", "A crew answers a distress call."},
		},
	}
	m, err := Resolve(table.Columns)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	catalog, err := Clean(m, table)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if catalog[0].Genres != "" {
		t.Errorf("genres = %q, want blank for a short row", catalog[0].Genres)
	}
}
