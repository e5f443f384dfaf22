// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package config provides layered configuration for the trainer and server
// binaries, loaded via Koanf v2 with clear precedence: ENV > file > defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration shared by both binaries.
// The trainer reads Training, Vectorizer and Logging; the server reads
// everything except Training.InputPath.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Training  TrainingConfig  `koanf:"training"`
	Resolver  ResolverConfig  `koanf:"resolver"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP query service.
type ServerConfig struct {
	// Host is the bind address.
	Host string `koanf:"host" validate:"required"`

	// Port is the HTTP listen port.
	Port int `koanf:"port" validate:"min=1,max=65535"`

	// Timeout is the per-request read/write timeout.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// CORSOrigins lists allowed CORS origins. Default: * (the API is a
	// public read-only surface consumed by browser frontends).
	CORSOrigins []string `koanf:"cors_origins" validate:"min=1"`

	// RateLimitReqs is the per-IP request budget per RateLimitWindow
	// for data endpoints. Health endpoints get 10x this budget.
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"min=1s"`

	// Environment is development or production.
	Environment string `koanf:"environment" validate:"oneof=development production"`
}

// TrainingConfig configures the offline model-building pipeline.
type TrainingConfig struct {
	// InputPath is the movie dataset CSV consumed by the trainer.
	InputPath string `koanf:"input_path" validate:"required"`

	// ModelPath is where the trained model artifact is written by the
	// trainer and loaded from by the server.
	ModelPath string `koanf:"model_path" validate:"required"`

	// MaxFeatures caps the TF-IDF vocabulary size, frequency-ranked.
	MaxFeatures int `koanf:"max_features" validate:"min=1"`

	// NgramMin and NgramMax bound the n-gram range over overview tokens.
	NgramMin int `koanf:"ngram_min" validate:"min=1"`
	NgramMax int `koanf:"ngram_max" validate:"min=1,gtefield=NgramMin"`
}

// ResolverConfig configures the layered title-resolution chain.
type ResolverConfig struct {
	// FuzzyMinScore is the acceptance threshold (0-100) for the fuzzy
	// matching stage.
	FuzzyMinScore int `koanf:"fuzzy_min_score" validate:"min=0,max=100"`

	// SuggestMinScore is the looser threshold used only for the
	// suggestion search after resolution fails.
	SuggestMinScore int `koanf:"suggest_min_score" validate:"min=0,max=100"`

	// SuggestPool is how many top-scoring candidates are considered
	// before threshold filtering.
	SuggestPool int `koanf:"suggest_pool" validate:"min=1"`

	// SuggestLimit caps how many suggestions are surfaced to the user.
	SuggestLimit int `koanf:"suggest_limit" validate:"min=1"`
}

// RecommendConfig configures the query engine.
type RecommendConfig struct {
	// TopK is the number of recommendations returned per query.
	TopK int `koanf:"top_k" validate:"min=1,max=100"`

	// CacheTTL and CacheSize bound the response cache. The model is
	// immutable after load, so caching is correctness-neutral.
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"min=0"`
	CacheSize int           `koanf:"cache_size" validate:"min=1"`
}

// LoggingConfig configures the zerolog global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration using go-playground/validator tags
// plus the cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Resolver.SuggestMinScore > c.Resolver.FuzzyMinScore {
		return fmt.Errorf("invalid configuration: resolver.suggest_min_score (%d) must not exceed resolver.fuzzy_min_score (%d)",
			c.Resolver.SuggestMinScore, c.Resolver.FuzzyMinScore)
	}
	if c.Resolver.SuggestLimit > c.Resolver.SuggestPool {
		return fmt.Errorf("invalid configuration: resolver.suggest_limit (%d) must not exceed resolver.suggest_pool (%d)",
			c.Resolver.SuggestLimit, c.Resolver.SuggestPool)
	}
	return nil
}

// asValidationErrors unwraps err into validator.ValidationErrors.
func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if verrs, ok := err.(validator.ValidationErrors); ok { //nolint:errorlint // validator returns the slice directly
		*target = verrs
		return true
	}
	return false
}
