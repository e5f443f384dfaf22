// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package matchers

import (
	fuzzywuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/cinerec/cinerec/internal/recommend"
)

// StageFuzzy is reported when a title matched by approximate scoring.
const StageFuzzy = "fuzzy"

// TokenSortScorer scores title pairs with token-sort ratio: both strings
// are tokenized, the tokens sorted and rejoined, then compared by edit
// similarity. Word order therefore does not matter ("matrix the" and
// "The Matrix" score 100).
type TokenSortScorer struct{}

// Score implements recommend.Scorer. Returns 0-100.
func (TokenSortScorer) Score(input, title string) int {
	return fuzzywuzzy.TokenSortRatio(input, title)
}

// Fuzzy matches the input against the single best-scoring catalog title,
// accepting it only when the score reaches MinScore. The best candidate
// is chosen by a strict-greater scan, so score ties keep the earliest
// title; a duplicated winning title resolves to its lowest index.
type Fuzzy struct {
	scorer   recommend.Scorer
	minScore int
}

// NewFuzzy returns the fuzzy stage with the given scorer and acceptance
// threshold.
func NewFuzzy(scorer recommend.Scorer, minScore int) *Fuzzy {
	return &Fuzzy{scorer: scorer, minScore: minScore}
}

// Name implements recommend.Matcher.
func (m *Fuzzy) Name() string { return StageFuzzy }

// Match implements recommend.Matcher.
func (m *Fuzzy) Match(c recommend.Catalog, input string) (recommend.Resolution, bool) {
	if len(c) == 0 {
		return recommend.Resolution{}, false
	}

	best := -1
	bestScore := -1
	for i, it := range c {
		if score := m.scorer.Score(input, it.Title); score > bestScore {
			best = i
			bestScore = score
		}
	}
	if bestScore < m.minScore {
		return recommend.Resolution{}, false
	}

	// Re-resolve the winning title to its first occurrence so duplicate
	// titles always map to the same matrix row.
	title := c[best].Title
	for i, it := range c {
		if it.Title == title {
			best = i
			break
		}
	}

	return recommend.Resolution{
		Index: best,
		Title: title,
		Stage: StageFuzzy,
		Score: bestScore,
	}, true
}
