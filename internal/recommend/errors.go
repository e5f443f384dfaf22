// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable is returned for every query when the engine was
// started without a loadable model artifact. The service stays up and
// fails fast instead of crashing.
var ErrModelUnavailable = errors.New("recommendation model is not loaded")

// NoMatchError reports that all resolution stages were exhausted for an
// input. It carries the threshold that was in effect and up to
// SuggestLimit close-but-rejected titles for user guidance.
type NoMatchError struct {
	Input       string
	MinScore    int
	Suggestions []string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no movie found matching %q (fuzzy threshold %d)", e.Input, e.MinScore)
}

// AsNoMatch unwraps err into a *NoMatchError.
func AsNoMatch(err error) (*NoMatchError, bool) {
	var nm *NoMatchError
	if errors.As(err, &nm) {
		return nm, true
	}
	return nil, false
}
