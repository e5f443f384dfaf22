// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package recommend implements the online query engine: layered title
// resolution over the trained catalog followed by top-K extraction from
// the similarity matrix.
//
// The engine holds the model as an explicitly constructed, immutable
// context object. Matchers and the scorer are registered from the outside
// (see the matchers subpackage), which keeps thresholds and stage ordering
// independently testable and avoids an import cycle the same way the
// engine/algorithm split does in comparable ranking services.
package recommend

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinerec/cinerec/internal/cache"
	"github.com/cinerec/cinerec/internal/metrics"
)

// Engine answers recommendation queries against an immutable trained
// model. Safe for unlimited concurrent readers; nothing is mutated after
// construction except the internal response cache, which locks itself.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	model    *Model
	matchers []Matcher
	scorer   Scorer
	cache    *cache.LRU
}

// NewEngine creates an engine for the given model. A nil model puts the
// engine in degraded mode: every query fails fast with
// ErrModelUnavailable instead of crashing.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, model *Model, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if model != nil {
		if err := model.Validate(); err != nil {
			return nil, err
		}
		metrics.ModelItems.Set(float64(len(model.Items)))
	} else {
		metrics.ModelItems.Set(0)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		model:  model,
		cache:  cache.NewLRU(cfg.CacheSize, cfg.CacheTTL),
	}, nil
}

// RegisterMatcher appends a resolution stage. Registration order is
// priority order; call it for exact, fuzzy and substring in that order.
func (e *Engine) RegisterMatcher(m Matcher) {
	e.matchers = append(e.matchers, m)
	e.logger.Info().Str("matcher", m.Name()).Msg("registered matcher")
}

// SetScorer sets the 0-100 title scorer used by the suggestion search and
// the Search method.
func (e *Engine) SetScorer(s Scorer) {
	e.scorer = s
}

// Loaded reports whether a model is available.
func (e *Engine) Loaded() bool {
	return e.model != nil
}

// ModelInfo returns the loaded model's identity for health reporting.
// Returns zero values in degraded mode.
func (e *Engine) ModelInfo() (id string, trainedAt time.Time, items int) {
	if e.model == nil {
		return "", time.Time{}, 0
	}
	return e.model.ID, e.model.TrainedAt, len(e.model.Items)
}

// Recommend resolves the input title and returns the top-K most similar
// catalog items, excluding the resolved item itself. Failure modes:
// ErrModelUnavailable in degraded mode, *NoMatchError (with suggestions)
// when every resolution stage falls through.
//
// Resolution and ranking are purely in-memory, so ctx is only checked
// once up front.
func (e *Engine) Recommend(ctx context.Context, input string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.model == nil {
		metrics.RecordQuery(metrics.OutcomeUnavailable)
		return nil, ErrModelUnavailable
	}

	input = strings.TrimSpace(input)
	key := strings.ToLower(input)

	if cached, ok := e.cache.Get(key); ok {
		metrics.QueryCacheHits.Inc()
		return cached.(*Response), nil
	}
	metrics.QueryCacheMisses.Inc()

	res, ok := e.resolve(input)
	if !ok {
		metrics.RecordQuery(metrics.OutcomeNoMatch)
		nm := &NoMatchError{
			Input:       input,
			MinScore:    e.config.SuggestMinScore,
			Suggestions: e.suggest(input),
		}
		e.logger.Debug().
			Str("input", input).
			Strs("suggestions", nm.Suggestions).
			Msg("no match")
		return nil, nm
	}
	metrics.RecordResolveStage(res.Stage)

	ranked := rankRow(e.model.Matrix[res.Index], res.Index, e.config.TopK)
	items := make([]RankedItem, len(ranked))
	for i, idx := range ranked {
		items[i] = e.model.Items[idx].Projection()
	}

	resp := &Response{
		Input:   input,
		Matched: res.Title,
		Items:   items,
	}
	e.cache.Add(key, resp)
	metrics.RecordQuery(metrics.OutcomeMatch)

	e.logger.Debug().
		Str("input", input).
		Str("matched", res.Title).
		Str("stage", res.Stage).
		Int("score", res.Score).
		Int("returned", len(items)).
		Msg("query resolved")

	return resp, nil
}

// resolve walks the matcher chain in priority order, stopping at the
// first stage that succeeds.
func (e *Engine) resolve(input string) (Resolution, bool) {
	if input == "" {
		return Resolution{}, false
	}
	for _, m := range e.matchers {
		if res, ok := m.Match(e.model.Items, input); ok {
			return res, true
		}
	}
	return Resolution{}, false
}

// suggest runs the looser guidance search: score every title, keep the
// top SuggestPool, filter to scores >= SuggestMinScore, surface up to
// SuggestLimit. Used only after resolution has failed.
func (e *Engine) suggest(input string) []string {
	if e.scorer == nil || input == "" {
		return nil
	}

	pool := e.searchAll(input)
	if len(pool) > e.config.SuggestPool {
		pool = pool[:e.config.SuggestPool]
	}

	suggestions := make([]string, 0, e.config.SuggestLimit)
	for _, sr := range pool {
		if sr.Score < e.config.SuggestMinScore {
			continue
		}
		suggestions = append(suggestions, sr.Title)
		if len(suggestions) == e.config.SuggestLimit {
			break
		}
	}
	return suggestions
}

// Search scores every catalog title against the query and returns hits
// with score >= minScore, best first, capped at limit. Ties keep
// ascending index order.
func (e *Engine) Search(query string, minScore, limit int) ([]SearchResult, error) {
	if e.model == nil {
		return nil, ErrModelUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" || e.scorer == nil {
		return []SearchResult{}, nil
	}

	all := e.searchAll(query)
	out := make([]SearchResult, 0, limit)
	for _, sr := range all {
		if sr.Score < minScore {
			continue
		}
		out = append(out, sr)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// searchAll scores the whole catalog, sorted by score descending with
// ties by ascending index.
func (e *Engine) searchAll(query string) []SearchResult {
	results := make([]SearchResult, len(e.model.Items))
	for i, it := range e.model.Items {
		results[i] = SearchResult{
			Index: i,
			Title: it.Title,
			Score: e.scorer.Score(query, it.Title),
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

// Movies returns a page of catalog projections plus the catalog size.
func (e *Engine) Movies(offset, limit int) (int, []RankedItem, error) {
	if e.model == nil {
		return 0, nil, ErrModelUnavailable
	}

	total := len(e.model.Items)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return total, []RankedItem{}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]RankedItem, 0, end-offset)
	for _, it := range e.model.Items[offset:end] {
		items = append(items, it.Projection())
	}
	return total, items, nil
}

// CacheStats exposes response-cache counters for health reporting.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}
