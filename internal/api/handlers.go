// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cinerec/cinerec/internal/config"
	"github.com/cinerec/cinerec/internal/logging"
	"github.com/cinerec/cinerec/internal/recommend"
)

// Handler serves the query API against the recommendation engine.
type Handler struct {
	engine    *recommend.Engine
	cfg       *config.Config
	startedAt time.Time
}

// NewHandler creates the API handler.
func NewHandler(engine *recommend.Engine, cfg *config.Config) *Handler {
	return &Handler{
		engine:    engine,
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

// Index describes the service and its endpoints.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"service": "cinerec",
		"endpoints": map[string]string{
			"recommend": "/api/v1/recommend?movie={title}",
			"movies":    "/api/v1/movies?limit={n}&offset={n}",
			"search":    "/api/v1/search?query={text}&min_score={n}&limit={n}",
			"health":    "/api/v1/health",
			"metrics":   "/metrics",
		},
	})
}

// Recommend answers GET /api/v1/recommend?movie={title}.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := parseRecommendRequest(r.URL.Query())
	if err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	resp, err := h.engine.Recommend(r.Context(), req.Movie)
	if err != nil {
		h.writeRecommendError(rw, r, err)
		return
	}
	rw.Success(resp)
}

// writeRecommendError maps engine failures onto the envelope. A failed
// title resolution is 404 with the suggestion list in the details; a
// missing model is 503 so load balancers steer away.
func (h *Handler) writeRecommendError(rw *ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, recommend.ErrModelUnavailable) {
		rw.Error(http.StatusServiceUnavailable, ErrCodeModelUnavailable,
			"recommendation model is not loaded; train a model and restart")
		return
	}
	if nm, ok := recommend.AsNoMatch(err); ok {
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNoMatch, nm.Error(), map[string]interface{}{
			"input":       nm.Input,
			"suggestions": nm.Suggestions,
		})
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// Client went away; nothing useful to write.
		return
	}
	logger := logging.Ctx(r.Context())
	logger.Error().Err(err).Msg("recommend query failed")
	rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "internal error")
}

// Movies answers GET /api/v1/movies with offset pagination over the
// catalog.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := parseMoviesRequest(r.URL.Query())
	if err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	total, items, err := h.engine.Movies(req.Offset, req.Limit)
	if err != nil {
		if errors.Is(err, recommend.ErrModelUnavailable) {
			rw.Error(http.StatusServiceUnavailable, ErrCodeModelUnavailable,
				"recommendation model is not loaded")
			return
		}
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("movies listing failed")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	rw.SuccessWithPagination(items, &PaginationMeta{
		Total:   total,
		Count:   len(items),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: req.Offset+len(items) < total,
	})
}

// Search answers GET /api/v1/search with fuzzy title search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := parseSearchRequest(r.URL.Query())
	if err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	results, err := h.engine.Search(req.Query, req.MinScore, req.Limit)
	if err != nil {
		if errors.Is(err, recommend.ErrModelUnavailable) {
			rw.Error(http.StatusServiceUnavailable, ErrCodeModelUnavailable,
				"recommendation model is not loaded")
			return
		}
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("search failed")
		rw.Error(http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}
	rw.Success(results)
}

// Health answers GET /api/v1/health with full service status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	modelID, trainedAt, items := h.engine.ModelInfo()
	cacheStats := h.engine.CacheStats()

	status := "ok"
	httpStatus := http.StatusOK
	if !h.engine.Loaded() {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	body := map[string]interface{}{
		"status":         status,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"model": map[string]interface{}{
			"loaded":     h.engine.Loaded(),
			"id":         modelID,
			"trained_at": trainedAt,
			"items":      items,
		},
		"cache": cacheStats,
	}

	rw := NewResponseWriter(w, r)
	if httpStatus == http.StatusOK {
		rw.Success(body)
		return
	}
	rw.ErrorWithDetails(httpStatus, ErrCodeModelUnavailable,
		"recommendation model is not loaded", body)
}

// HealthLive answers GET /api/v1/health/live: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// HealthReady answers GET /api/v1/health/ready: ready means a model is
// loaded and queries can be served.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.engine.Loaded() {
		rw.Error(http.StatusServiceUnavailable, ErrCodeModelUnavailable,
			"recommendation model is not loaded")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}

// NotFound is the catch-all for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Error(http.StatusNotFound, ErrCodeNotFound, "no such endpoint")
}

// MethodNotAllowed rejects wrong-method requests to known routes.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
		"method not allowed")
}
