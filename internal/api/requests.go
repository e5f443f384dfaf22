// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RecommendRequest is the /recommend query.
type RecommendRequest struct {
	Movie string `validate:"required,max=500"`
}

// SearchRequest is the /search query. MinScore and Limit are clamped to
// their ranges rather than rejected.
type SearchRequest struct {
	Query    string `validate:"required,max=500"`
	MinScore int
	Limit    int
}

// MoviesRequest is the /movies listing query.
type MoviesRequest struct {
	Limit  int `validate:"min=1,max=500"`
	Offset int `validate:"min=0"`
}

// parseRecommendRequest validates the /recommend query parameters.
func parseRecommendRequest(q url.Values) (*RecommendRequest, error) {
	req := &RecommendRequest{Movie: q.Get("movie")}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("movie parameter is required and must be at most 500 characters")
	}
	return req, nil
}

// parseSearchRequest validates the /search query parameters, applying
// defaults for min_score (30) and limit (20).
func parseSearchRequest(q url.Values) (*SearchRequest, error) {
	req := &SearchRequest{
		Query:    q.Get("query"),
		MinScore: 30,
		Limit:    20,
	}
	var err error
	if req.MinScore, err = intParam(q, "min_score", req.MinScore); err != nil {
		return nil, err
	}
	if req.Limit, err = intParam(q, "limit", req.Limit); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("query parameter is required and must be at most 500 characters")
	}
	req.MinScore = clamp(req.MinScore, 1, 100)
	req.Limit = clamp(req.Limit, 1, 100)
	return req, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseMoviesRequest validates the /movies query parameters, applying
// defaults for limit (50) and offset (0).
func parseMoviesRequest(q url.Values) (*MoviesRequest, error) {
	req := &MoviesRequest{Limit: 50}
	var err error
	if req.Limit, err = intParam(q, "limit", req.Limit); err != nil {
		return nil, err
	}
	if req.Offset, err = intParam(q, "offset", req.Offset); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("limit must be in [1,500] and offset must be non-negative")
	}
	return req, nil
}

// intParam parses an optional integer query parameter.
func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
