// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package matchers

import (
	"strings"

	"github.com/cinerec/cinerec/internal/recommend"
)

// StageSubstring is reported when a title matched by containment.
const StageSubstring = "substring"

// Substring matches when the lowercased input occurs anywhere inside a
// lowercased catalog title. Last-resort stage: it catches short partial
// queries that score too low for the fuzzy stage.
type Substring struct{}

// NewSubstring returns the containment stage.
func NewSubstring() *Substring { return &Substring{} }

// Name implements recommend.Matcher.
func (m *Substring) Name() string { return StageSubstring }

// Match implements recommend.Matcher.
func (m *Substring) Match(c recommend.Catalog, input string) (recommend.Resolution, bool) {
	folded := strings.ToLower(input)
	if folded == "" {
		return recommend.Resolution{}, false
	}
	for i, it := range c {
		if strings.Contains(strings.ToLower(it.Title), folded) {
			return recommend.Resolution{
				Index: i,
				Title: it.Title,
				Stage: StageSubstring,
				Score: 0,
			}, true
		}
	}
	return recommend.Resolution{}, false
}
