// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package artifact persists trained models. The on-disk format is a
// gzip-compressed JSON envelope; writes go through a temp file and rename
// so a crash mid-save never leaves a truncated artifact where the server
// would load it.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"

	"github.com/cinerec/cinerec/internal/recommend"
)

// FormatVersion is bumped whenever the envelope layout changes
// incompatibly. Loaders refuse versions they do not know.
const FormatVersion = 1

// ErrInvalidArtifact wraps every way an artifact can fail to load other
// than plain I/O: bad gzip stream, malformed JSON, unknown version,
// inconsistent model shape.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// envelope is the persisted layout.
type envelope struct {
	FormatVersion int              `json:"format_version"`
	Model         *recommend.Model `json:"model"`
}

// Save writes the model to path atomically. The temp file lives in the
// destination directory so the final rename stays on one filesystem.
func Save(path string, model *recommend.Model) error {
	if err := model.Validate(); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	zw := gzip.NewWriter(tmp)
	if err := json.NewEncoder(zw).Encode(envelope{FormatVersion: FormatVersion, Model: model}); err != nil {
		return fmt.Errorf("save artifact: encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("save artifact: compress: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("save artifact: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save artifact: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	return nil
}

// Load reads and validates a model artifact. I/O problems come back
// as-is; anything wrong with the content wraps ErrInvalidArtifact.
func Load(path string) (*recommend.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("load artifact %s: %w: %v", path, ErrInvalidArtifact, err)
	}
	defer zr.Close()

	var env envelope
	if err := json.NewDecoder(zr).Decode(&env); err != nil {
		return nil, fmt.Errorf("load artifact %s: %w: %v", path, ErrInvalidArtifact, err)
	}
	// A truncated gzip stream can decode cleanly up to the cut; drain to
	// force the checksum verification.
	if _, err := io.Copy(io.Discard, zr); err != nil {
		return nil, fmt.Errorf("load artifact %s: %w: %v", path, ErrInvalidArtifact, err)
	}

	if env.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("load artifact %s: %w: format version %d, want %d",
			path, ErrInvalidArtifact, env.FormatVersion, FormatVersion)
	}
	if env.Model == nil {
		return nil, fmt.Errorf("load artifact %s: %w: no model payload", path, ErrInvalidArtifact)
	}
	if err := env.Model.Validate(); err != nil {
		return nil, fmt.Errorf("load artifact %s: %w: %v", path, ErrInvalidArtifact, err)
	}
	return env.Model, nil
}
