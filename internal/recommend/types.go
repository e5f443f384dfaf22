// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

import (
	"fmt"
	"time"
)

// Item is one catalog entry. Title and Overview are mandatory after
// cleaning; the remaining fields are optional and simply absent when the
// source dataset lacked them.
type Item struct {
	Title string `json:"title"`

	// Overview is the free-text description the model was vectorized
	// from. It is persisted in the artifact but never exposed through
	// the query API.
	Overview string `json:"overview"`

	Genres      string   `json:"genres,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// Projection returns the outward-facing view of the item: everything
// except the overview text.
func (it Item) Projection() RankedItem {
	return RankedItem{
		Title:       it.Title,
		Genres:      it.Genres,
		Rating:      it.Rating,
		ReleaseDate: it.ReleaseDate,
	}
}

// Catalog is the ordered item sequence. The slice index is the permanent
// item index joining the catalog to the similarity matrix. Immutable after
// training.
type Catalog []Item

// Titles returns all titles in index order.
func (c Catalog) Titles() []string {
	titles := make([]string, len(c))
	for i, it := range c {
		titles[i] = it.Title
	}
	return titles
}

// Model is the trained artifact: the cleaned catalog plus the dense
// pairwise cosine-similarity matrix over its items. Loaded once at process
// start and never mutated, so concurrent readers need no locking.
type Model struct {
	ID        string      `json:"id"`
	TrainedAt time.Time   `json:"trained_at"`
	Items     Catalog     `json:"items"`
	Matrix    [][]float64 `json:"matrix"`
}

// Validate checks the structural invariants the query engine relies on:
// the matrix is square with one row per catalog item.
func (m *Model) Validate() error {
	n := len(m.Items)
	if len(m.Matrix) != n {
		return fmt.Errorf("model matrix has %d rows for %d items", len(m.Matrix), n)
	}
	for i, row := range m.Matrix {
		if len(row) != n {
			return fmt.Errorf("model matrix row %d has %d columns, want %d", i, len(row), n)
		}
	}
	return nil
}

// RankedItem is the projection returned to callers: title plus the
// optional descriptive fields. Overviews and vectors never leave the
// engine.
type RankedItem struct {
	Title       string   `json:"title"`
	Genres      string   `json:"genres,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
}

// Resolution is the outcome of title disambiguation: which catalog item a
// free-text query resolved to, through which stage, and at what score
// (fuzzy stage only; exact and substring report 100).
type Resolution struct {
	Index int
	Title string
	Stage string
	Score int
}

// Response is a completed recommendation query.
type Response struct {
	Input   string       `json:"input_movie"`
	Matched string       `json:"matched_movie"`
	Items   []RankedItem `json:"recommendations"`
}

// SearchResult is one fuzzy title-search hit.
type SearchResult struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Score int    `json:"score"`
}

// Matcher attempts to resolve user input to a catalog item. Matchers are
// registered with the engine in priority order; the first to succeed wins.
type Matcher interface {
	// Name identifies the resolution stage ("exact", "fuzzy", ...).
	Name() string

	// Match reports the resolution and true on success. A false return
	// is the designed fall-through to the next stage, not an error.
	Match(c Catalog, input string) (Resolution, bool)
}

// Scorer computes a 0-100 similarity score between the user input and a
// catalog title. The engine uses it for the suggestion search and the
// /search endpoint; the fuzzy matcher uses it for resolution.
type Scorer interface {
	Score(input, title string) int
}
