// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package api provides the HTTP query surface: standardized response
// envelopes, request validation, chi routing and the handlers themselves.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinerec/cinerec/internal/logging"
)

// APIResponse is the envelope every endpoint returns. Exactly one of
// Data and Error is set.
type APIResponse struct {
	Success bool `json:"success"`

	// Data is the response payload (absent on error).
	Data interface{} `json:"data,omitempty"`

	// Error carries error details (absent on success).
	Error *APIError `json:"error,omitempty"`

	// Meta carries response metadata.
	Meta *APIMeta `json:"meta,omitempty"`
}

// APIError is the error half of the envelope.
type APIError struct {
	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is human-readable.
	Message string `json:"message"`

	// Details carries structured extras, e.g. the suggestion list on a
	// failed title resolution.
	Details interface{} `json:"details,omitempty"`

	// RequestID ties the error to the request for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// APIMeta carries per-response metadata.
type APIMeta struct {
	RequestID  string          `json:"request_id,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	DurationMs int64           `json:"duration_ms,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

// PaginationMeta describes a list page.
type PaginationMeta struct {
	Total   int  `json:"total"`
	Count   int  `json:"count"`
	Offset  int  `json:"offset,omitempty"`
	Limit   int  `json:"limit,omitempty"`
	HasMore bool `json:"has_more"`
}

// Error codes.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNoMatch          = "NO_MATCH"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeModelUnavailable = "MODEL_UNAVAILABLE"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
)

// ResponseWriter writes envelope responses for one request.
type ResponseWriter struct {
	w         http.ResponseWriter
	r         *http.Request
	startTime time.Time
}

// NewResponseWriter creates a response writer for the request.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, startTime: time.Now()}
}

// Success writes a 200 with data.
func (rw *ResponseWriter) Success(data interface{}) {
	rw.SuccessWithMeta(data, nil)
}

// SuccessWithPagination writes a 200 with data and page metadata.
func (rw *ResponseWriter) SuccessWithPagination(data interface{}, p *PaginationMeta) {
	rw.SuccessWithMeta(data, &APIMeta{Pagination: p})
}

// SuccessWithMeta writes a 200 with data and caller-supplied metadata.
func (rw *ResponseWriter) SuccessWithMeta(data interface{}, meta *APIMeta) {
	if meta == nil {
		meta = &APIMeta{}
	}
	meta.RequestID = logging.RequestIDFromContext(rw.r.Context())
	meta.Timestamp = time.Now().UTC()
	meta.DurationMs = time.Since(rw.startTime).Milliseconds()

	rw.writeJSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error writes an error envelope with the given status.
func (rw *ResponseWriter) Error(status int, code, message string) {
	rw.ErrorWithDetails(status, code, message, nil)
}

// ErrorWithDetails writes an error envelope carrying structured details.
func (rw *ResponseWriter) ErrorWithDetails(status int, code, message string, details interface{}) {
	rw.writeJSON(status, APIResponse{
		Success: false,
		Error: &APIError{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: logging.RequestIDFromContext(rw.r.Context()),
		},
	})
}

func (rw *ResponseWriter) writeJSON(status int, resp APIResponse) {
	rw.w.Header().Set("Content-Type", "application/json")
	rw.w.WriteHeader(status)
	if err := json.NewEncoder(rw.w).Encode(resp); err != nil {
		// Status and headers are already out; log and move on.
		logger := logging.Ctx(rw.r.Context())
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
