// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinerec/cinerec/internal/config"
	"github.com/cinerec/cinerec/internal/recommend"
)

// NewRouter assembles the full HTTP surface.
func NewRouter(engine *recommend.Engine, cfg *config.Config) http.Handler {
	h := NewHandler(engine, cfg)

	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Index)
	r.Handle("/metrics", promhttp.Handler())

	// Health endpoints get a 10x rate budget so monitoring never starves.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.Server.RateLimitReqs*10, cfg.Server.RateLimitWindow))
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// Data endpoints: standard rate limit plus per-endpoint metrics.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.Server.RateLimitReqs, cfg.Server.RateLimitWindow))
		r.Use(Metrics())
		r.Get("/recommend", h.Recommend)
		r.Get("/movies", h.Movies)
		r.Get("/search", h.Search)
	})

	return r
}
