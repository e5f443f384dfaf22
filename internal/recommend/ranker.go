// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

import "sort"

// scoredIndex pairs a catalog index with its similarity score.
type scoredIndex struct {
	index int
	score float64
}

// rankRow returns up to k catalog indices from a similarity row, ordered
// by score descending with ties broken by ascending index, with the query
// item itself excluded. The self index is skipped explicitly rather than
// assumed to rank first: duplicate titles with identical vectors also
// score 1.0 and may tie with it.
func rankRow(row []float64, self, k int) []int {
	if k <= 0 {
		return []int{}
	}
	scored := make([]scoredIndex, len(row))
	for i, s := range row {
		scored[i] = scoredIndex{index: i, score: s}
	}

	// Stable keeps ascending index order within equal scores.
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	out := make([]int, 0, k)
	for _, sc := range scored {
		if sc.index == self {
			continue
		}
		out = append(out, sc.index)
		if len(out) == k {
			break
		}
	}
	return out
}
