// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

import (
	"fmt"
	"time"
)

// Config holds the query-engine tunables. Zero values are replaced with
// the defaults matching the reference deployment.
type Config struct {
	// TopK is the number of recommendations returned per query.
	TopK int

	// SuggestPool is the candidate pool size for the suggestion search.
	SuggestPool int

	// SuggestMinScore is the suggestion-search threshold. It is a
	// strictly looser bound than the fuzzy matcher's threshold and is
	// used only for user guidance, never for resolution.
	SuggestMinScore int

	// SuggestLimit caps how many suggestions a NoMatchError carries.
	SuggestLimit int

	// CacheTTL and CacheSize bound the response cache.
	CacheTTL  time.Duration
	CacheSize int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		TopK:            10,
		SuggestPool:     5,
		SuggestMinScore: 30,
		SuggestLimit:    3,
		CacheTTL:        5 * time.Minute,
		CacheSize:       1000,
	}
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top k must be positive, got %d", c.TopK)
	}
	if c.SuggestPool <= 0 {
		return fmt.Errorf("suggestion pool must be positive, got %d", c.SuggestPool)
	}
	if c.SuggestMinScore < 0 || c.SuggestMinScore > 100 {
		return fmt.Errorf("suggestion min score must be in [0,100], got %d", c.SuggestMinScore)
	}
	if c.SuggestLimit <= 0 || c.SuggestLimit > c.SuggestPool {
		return fmt.Errorf("suggestion limit must be in [1,%d], got %d", c.SuggestPool, c.SuggestLimit)
	}
	return nil
}
