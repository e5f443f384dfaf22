// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package trainer runs the offline model-building pipeline: ingest,
// schema resolution, cleaning, vectorization, similarity and artifact
// persistence, in that order. Any stage failing aborts the run with no
// artifact written.
package trainer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cinerec/cinerec/internal/artifact"
	"github.com/cinerec/cinerec/internal/config"
	"github.com/cinerec/cinerec/internal/dataset"
	"github.com/cinerec/cinerec/internal/recommend"
	"github.com/cinerec/cinerec/internal/schema"
	"github.com/cinerec/cinerec/internal/similarity"
	"github.com/cinerec/cinerec/internal/vectorize"
)

// Pipeline is one configured training run.
type Pipeline struct {
	cfg    config.TrainingConfig
	logger zerolog.Logger
}

// New returns a pipeline for the given training configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg config.TrainingConfig, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: logger.With().Str("component", "trainer").Logger(),
	}
}

// Run executes the full pipeline and writes the artifact to the
// configured model path. Returns the trained model for inspection.
func (p *Pipeline) Run(ctx context.Context) (*recommend.Model, error) {
	start := time.Now()

	p.logger.Info().Str("input", p.cfg.InputPath).Msg("loading dataset")
	table, err := dataset.ReadCSV(ctx, p.cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}
	p.logger.Info().
		Int("rows", len(table.Rows)).
		Strs("columns", table.Columns).
		Msg("dataset loaded")

	mapping, err := schema.Resolve(table.Columns)
	if err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}
	for _, line := range mapping.Report() {
		p.logger.Info().Str("mapping", line).Msg("schema resolved")
	}

	catalog, err := schema.Clean(mapping, table)
	if err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}
	dropped := len(table.Rows) - len(catalog)
	p.logger.Info().
		Int("items", len(catalog)).
		Int("dropped", dropped).
		Msg("corpus cleaned")

	corpus := make([]string, len(catalog))
	for i, it := range catalog {
		corpus[i] = it.Overview
	}
	vectorizer := &vectorize.Vectorizer{
		MaxFeatures: p.cfg.MaxFeatures,
		NgramMin:    p.cfg.NgramMin,
		NgramMax:    p.cfg.NgramMax,
	}
	vectors, vocab, err := vectorizer.FitTransform(corpus)
	if err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}
	p.logger.Info().
		Int("vocabulary", len(vocab)).
		Int("max_features", p.cfg.MaxFeatures).
		Msg("corpus vectorized")

	matrix := similarity.Cosine(vectors)
	p.logger.Info().Int("dimension", len(matrix)).Msg("similarity matrix computed")

	model := &recommend.Model{
		ID:        uuid.New().String(),
		TrainedAt: time.Now().UTC(),
		Items:     catalog,
		Matrix:    matrix,
	}
	if err := artifact.Save(p.cfg.ModelPath, model); err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}

	p.logger.Info().
		Str("model_id", model.ID).
		Str("path", p.cfg.ModelPath).
		Int("items", len(model.Items)).
		Dur("elapsed", time.Since(start)).
		Msg("model trained")
	return model, nil
}
