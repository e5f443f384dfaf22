// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// The trainer binary runs the offline pipeline: it reads the configured
// movie dataset, builds the TF-IDF similarity model and writes the
// artifact the server loads at startup. Exits non-zero without touching
// the artifact if any stage fails.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cinerec/cinerec/internal/config"
	"github.com/cinerec/cinerec/internal/logging"
	"github.com/cinerec/cinerec/internal/trainer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model, err := trainer.New(cfg.Training, logging.Logger()).Run(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("training failed")
		os.Exit(1)
	}
	logging.Info().
		Str("model_id", model.ID).
		Str("path", cfg.Training.ModelPath).
		Msg("training complete")
}
