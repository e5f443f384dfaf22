// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// stubExact resolves case-insensitive title equality. The real stages
// live in the matchers subpackage; the engine tests only need the
// contract.
type stubExact struct{}

func (stubExact) Name() string { return "exact" }

func (stubExact) Match(c Catalog, input string) (Resolution, bool) {
	for i, it := range c {
		if strings.EqualFold(it.Title, input) {
			return Resolution{Index: i, Title: it.Title, Stage: "exact", Score: 100}, true
		}
	}
	return Resolution{}, false
}

// prefixScorer scores 100 on shared first letter, 0 otherwise. Crude but
// deterministic for suggestion tests.
type prefixScorer struct{}

func (prefixScorer) Score(input, title string) int {
	if input == "" || title == "" {
		return 0
	}
	if strings.EqualFold(input[:1], title[:1]) {
		return 100
	}
	return 0
}

func testModel(titles ...string) *Model {
	n := len(titles)
	items := make(Catalog, n)
	matrix := make([][]float64, n)
	for i, title := range titles {
		items[i] = Item{Title: title, Overview: "overview of " + title}
		matrix[i] = make([]float64, n)
		for j := range matrix[i] {
			// Similarity falls off with index distance, so the
			// expected ranking for any query row is its neighbors
			// in order.
			d := i - j
			if d < 0 {
				d = -d
			}
			matrix[i][j] = 1.0 / float64(1+d)
		}
	}
	return &Model{
		ID:        "test-model",
		TrainedAt: time.Now(),
		Items:     items,
		Matrix:    matrix,
	}
}

func newTestEngine(t *testing.T, cfg *Config, model *Model) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, model, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.RegisterMatcher(stubExact{})
	e.SetScorer(prefixScorer{})
	return e
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopK = 0
	if _, err := NewEngine(cfg, testModel("A"), zerolog.Nop()); err == nil {
		t.Error("expected error for zero top k")
	}
}

func TestNewEngineRejectsMalformedModel(t *testing.T) {
	m := testModel("A", "B")
	m.Matrix = m.Matrix[:1]
	if _, err := NewEngine(nil, m, zerolog.Nop()); err == nil {
		t.Error("expected error for ragged matrix")
	}
}

func TestRecommendDegradedMode(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	if e.Loaded() {
		t.Error("Loaded() = true with nil model")
	}
	if _, err := e.Recommend(context.Background(), "Heat"); !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("error = %v, want ErrModelUnavailable", err)
	}
	if _, err := e.Search("heat", 30, 10); !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("Search error = %v, want ErrModelUnavailable", err)
	}
	if _, _, err := e.Movies(0, 10); !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("Movies error = %v, want ErrModelUnavailable", err)
	}
}

func TestRecommendRanksByRow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopK = 3
	e := newTestEngine(t, cfg, testModel("Alpha", "Beta", "Gamma", "Delta", "Epsilon"))

	resp, err := e.Recommend(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Matched != "Alpha" {
		t.Errorf("matched = %q, want Alpha", resp.Matched)
	}
	if resp.Input != "alpha" {
		t.Errorf("input = %q, want the raw query", resp.Input)
	}
	want := []string{"Beta", "Gamma", "Delta"}
	if len(resp.Items) != len(want) {
		t.Fatalf("got %d recommendations, want %d", len(resp.Items), len(want))
	}
	for i, w := range want {
		if resp.Items[i].Title != w {
			t.Errorf("item %d = %q, want %q", i, resp.Items[i].Title, w)
		}
	}
}

func TestRecommendExcludesSelf(t *testing.T) {
	e := newTestEngine(t, nil, testModel("Alpha", "Beta", "Gamma"))
	resp, err := e.Recommend(context.Background(), "Beta")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, it := range resp.Items {
		if it.Title == "Beta" {
			t.Error("query item appeared in its own recommendations")
		}
	}
}

func TestRecommendTrimsWhitespace(t *testing.T) {
	e := newTestEngine(t, nil, testModel("Alpha", "Beta"))
	resp, err := e.Recommend(context.Background(), "  Alpha  ")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Matched != "Alpha" {
		t.Errorf("matched = %q, want Alpha", resp.Matched)
	}
}

func TestRecommendNoMatchCarriesSuggestions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SuggestLimit = 3
	e := newTestEngine(t, cfg, testModel("Alpha", "Avalon", "Amadeus", "Alien", "Beta", "Gamma"))

	// prefixScorer gives every A-title 100 and the rest 0; "Amelie" is
	// not an exact match so resolution fails, but suggestions fire.
	_, err := e.Recommend(context.Background(), "Amelie")
	nm, ok := AsNoMatch(err)
	if !ok {
		t.Fatalf("error = %v, want *NoMatchError", err)
	}
	if nm.Input != "Amelie" {
		t.Errorf("Input = %q, want Amelie", nm.Input)
	}
	if len(nm.Suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3 (SuggestLimit)", len(nm.Suggestions))
	}
	// Top of the pool in catalog order: the four A-titles tie at 100,
	// stable sort keeps index order, limit trims to three.
	want := []string{"Alpha", "Avalon", "Amadeus"}
	for i, w := range want {
		if nm.Suggestions[i] != w {
			t.Errorf("suggestion %d = %q, want %q", i, nm.Suggestions[i], w)
		}
	}
}

func TestRecommendNoMatchBelowSuggestThreshold(t *testing.T) {
	e := newTestEngine(t, nil, testModel("Alpha", "Beta"))
	// "Zorro" scores 0 against everything: no match and no suggestions.
	_, err := e.Recommend(context.Background(), "Zorro")
	nm, ok := AsNoMatch(err)
	if !ok {
		t.Fatalf("error = %v, want *NoMatchError", err)
	}
	if len(nm.Suggestions) != 0 {
		t.Errorf("got suggestions %v, want none", nm.Suggestions)
	}
}

func TestRecommendEmptyInput(t *testing.T) {
	e := newTestEngine(t, nil, testModel("Alpha"))
	if _, err := e.Recommend(context.Background(), "   "); err == nil {
		t.Error("expected no-match error for blank input")
	}
}

func TestRecommendCachesByFoldedInput(t *testing.T) {
	e := newTestEngine(t, nil, testModel("Alpha", "Beta"))

	first, err := e.Recommend(context.Background(), "Alpha")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	second, err := e.Recommend(context.Background(), "ALPHA")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if first != second {
		t.Error("case-folded repeat query should hit the cache")
	}
	stats := e.CacheStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("cache stats = %+v, want 1 hit / 1 miss", stats)
	}
}

func TestRecommendCancelledContext(t *testing.T) {
	e := newTestEngine(t, nil, testModel("Alpha"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Recommend(ctx, "Alpha"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSearch(t *testing.T) {
	e := newTestEngine(t, nil, testModel("Alpha", "Avalon", "Beta"))

	results, err := e.Search("a", 50, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Alpha" || results[1].Title != "Avalon" {
		t.Errorf("results = %v, want Alpha then Avalon", results)
	}

	results, err = e.Search("a", 50, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("limit not honored: got %d results", len(results))
	}

	results, err = e.Search("  ", 50, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("blank query returned %d results, want 0", len(results))
	}
}

func TestMovies(t *testing.T) {
	e := newTestEngine(t, nil, testModel("Alpha", "Beta", "Gamma", "Delta"))

	total, page, err := e.Movies(1, 2)
	if err != nil {
		t.Fatalf("Movies: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	if len(page) != 2 || page[0].Title != "Beta" || page[1].Title != "Gamma" {
		t.Errorf("page = %v, want [Beta Gamma]", page)
	}

	total, page, err = e.Movies(3, 10)
	if err != nil {
		t.Fatalf("Movies: %v", err)
	}
	if total != 4 || len(page) != 1 || page[0].Title != "Delta" {
		t.Errorf("tail page = %v (total %d), want [Delta] (4)", page, total)
	}

	_, page, err = e.Movies(100, 10)
	if err != nil {
		t.Fatalf("Movies: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("out-of-range offset returned %d items", len(page))
	}
}

func TestModelInfo(t *testing.T) {
	m := testModel("Alpha", "Beta")
	e := newTestEngine(t, nil, m)
	id, trainedAt, items := e.ModelInfo()
	if id != m.ID || !trainedAt.Equal(m.TrainedAt) || items != 2 {
		t.Errorf("ModelInfo() = (%q, %v, %d), want (%q, %v, 2)", id, trainedAt, items, m.ID, m.TrainedAt)
	}

	degraded := newTestEngine(t, nil, nil)
	if id, _, items := degraded.ModelInfo(); id != "" || items != 0 {
		t.Errorf("degraded ModelInfo() = (%q, _, %d), want zero values", id, items)
	}
}
