// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package vectorize turns the cleaned overview corpus into L2-normalized
// TF-IDF vectors over a bounded unigram+bigram vocabulary.
package vectorize

import (
	"regexp"
	"strings"
)

// wordPattern extracts tokens: maximal runs of two or more word
// characters (letters, digits, underscore). Single-character tokens are
// discarded by construction.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// tokenize lowercases the text and splits it into word tokens with stop
// words removed. Stop-word removal happens here, before n-gram assembly,
// so bigrams bridge removed words ("man of steel" yields "man steel").
func tokenize(text string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ngrams expands a token sequence into all n-grams for n in [lo, hi],
// each joined with a single space. Unigrams come first, then bigrams,
// matching the order terms are counted in.
func ngrams(tokens []string, lo, hi int) []string {
	if lo < 1 {
		lo = 1
	}
	out := make([]string, 0, len(tokens)*(hi-lo+1))
	for n := lo; n <= hi; n++ {
		if n == 1 {
			out = append(out, tokens...)
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
