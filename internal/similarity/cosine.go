// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package similarity computes the dense pairwise cosine matrix over the
// vectorized corpus.
package similarity

import "github.com/cinerec/cinerec/internal/vectorize"

// Cosine returns the n x n pairwise cosine-similarity matrix for
// L2-normalized sparse vectors: each cell is the sparse dot product of
// its row and column vectors. The matrix is exactly symmetric (each pair
// is computed once and mirrored), the diagonal is 1.0 for any nonzero
// vector and 0.0 for a zero vector, and accumulated rounding above 1.0
// is clamped.
func Cosine(vectors []vectorize.Vector) [][]float64 {
	n := len(vectors)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		if len(vectors[i]) > 0 {
			matrix[i][i] = 1.0
		}
		for j := i + 1; j < n; j++ {
			s := dot(vectors[i], vectors[j])
			matrix[i][j] = s
			matrix[j][i] = s
		}
	}
	return matrix
}

// dot computes the sparse dot product, iterating the smaller map.
func dot(a, b vectorize.Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, w := range a {
		if bw, ok := b[idx]; ok {
			sum += w * bw
		}
	}
	if sum > 1.0 {
		sum = 1.0
	}
	return sum
}
