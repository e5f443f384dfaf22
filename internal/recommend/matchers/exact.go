// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package matchers provides the title-resolution stages registered with
// the recommendation engine. Each stage is a recommend.Matcher; priority
// comes from registration order, not from anything in here.
package matchers

import (
	"strings"

	"github.com/cinerec/cinerec/internal/recommend"
)

// StageExact is reported when a title matched by case-insensitive
// equality.
const StageExact = "exact"

// Exact matches the input against catalog titles by case-insensitive
// equality. Duplicate titles resolve to the lowest index.
type Exact struct{}

// NewExact returns the exact-equality stage.
func NewExact() *Exact { return &Exact{} }

// Name implements recommend.Matcher.
func (m *Exact) Name() string { return StageExact }

// Match implements recommend.Matcher.
func (m *Exact) Match(c recommend.Catalog, input string) (recommend.Resolution, bool) {
	folded := strings.ToLower(input)
	for i, it := range c {
		if strings.ToLower(it.Title) == folded {
			return recommend.Resolution{
				Index: i,
				Title: it.Title,
				Stage: StageExact,
				Score: 100,
			}, true
		}
	}
	return recommend.Resolution{}, false
}
