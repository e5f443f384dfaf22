// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// The server binary loads the trained model artifact and serves the
// recommendation query API. A missing or unreadable artifact is not
// fatal: the server starts degraded, answers health checks honestly and
// returns 503 on data endpoints until a model exists and the process is
// restarted.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinerec/cinerec/internal/api"
	"github.com/cinerec/cinerec/internal/artifact"
	"github.com/cinerec/cinerec/internal/config"
	"github.com/cinerec/cinerec/internal/logging"
	"github.com/cinerec/cinerec/internal/recommend"
	"github.com/cinerec/cinerec/internal/recommend/matchers"
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
	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Msg("starting cinerec server")

	model := loadModel(cfg.Training.ModelPath)

	engine, err := recommend.NewEngine(&recommend.Config{
		TopK:            cfg.Recommend.TopK,
		SuggestPool:     cfg.Resolver.SuggestPool,
		SuggestMinScore: cfg.Resolver.SuggestMinScore,
		SuggestLimit:    cfg.Resolver.SuggestLimit,
		CacheTTL:        cfg.Recommend.CacheTTL,
		CacheSize:       cfg.Recommend.CacheSize,
	}, model, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build recommendation engine")
	}

	// Resolution stages in priority order.
	engine.RegisterMatcher(matchers.NewExact())
	engine.RegisterMatcher(matchers.NewFuzzy(matchers.TokenSortScorer{}, cfg.Resolver.FuzzyMinScore))
	engine.RegisterMatcher(matchers.NewSubstring())
	engine.SetScorer(matchers.TokenSortScorer{})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(engine, cfg),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
	logging.Info().Msg("server stopped")
}

// loadModel loads the artifact, downgrading every failure to degraded
// mode rather than refusing to start.
func loadModel(path string) *recommend.Model {
	model, err := artifact.Load(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).
			Msg("model artifact unavailable, starting in degraded mode")
		return nil
	}
	logging.Info().
		Str("model_id", model.ID).
		Time("trained_at", model.TrainedAt).
		Int("items", len(model.Items)).
		Msg("model loaded")
	return model
}
