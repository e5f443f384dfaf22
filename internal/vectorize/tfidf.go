// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package vectorize

import (
	"fmt"
	"math"
	"sort"
)

// Vector is a sparse document vector: vocabulary index to weight.
type Vector map[int]float64

// Vectorizer converts a document corpus into smoothed, L2-normalized
// TF-IDF vectors. The algorithm is deterministic: the same corpus always
// yields the same vocabulary, indices and weights.
type Vectorizer struct {
	// MaxFeatures caps the vocabulary at the terms with the highest
	// total corpus frequency. Zero means unbounded.
	MaxFeatures int

	// NgramMin and NgramMax bound the n-gram sizes counted as terms.
	NgramMin int
	NgramMax int
}

// NewVectorizer returns a vectorizer with the reference settings:
// unigrams and bigrams, 5000-term vocabulary.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{MaxFeatures: 5000, NgramMin: 1, NgramMax: 2}
}

// FitTransform learns the vocabulary from docs and returns one sparse
// vector per document plus the vocabulary terms in index order.
//
// Term weighting is the smoothed form: tf is the raw in-document count,
// idf = ln((1+N)/(1+df)) + 1 with N the corpus size and df the number of
// documents containing the term, and each vector is L2-normalized. A
// document left with no in-vocabulary terms yields an empty (all-zero)
// vector, not an error.
func (v *Vectorizer) FitTransform(docs []string) ([]Vector, []string, error) {
	if len(docs) == 0 {
		return nil, nil, fmt.Errorf("vectorize: empty corpus")
	}
	if v.NgramMin < 1 || v.NgramMax < v.NgramMin {
		return nil, nil, fmt.Errorf("vectorize: invalid ngram range [%d,%d]", v.NgramMin, v.NgramMax)
	}

	// Per-document term counts, plus corpus totals and document
	// frequencies for vocabulary selection and idf.
	counts := make([]map[string]int, len(docs))
	totalFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for i, doc := range docs {
		terms := ngrams(tokenize(doc), v.NgramMin, v.NgramMax)
		c := make(map[string]int, len(terms))
		for _, term := range terms {
			c[term]++
		}
		counts[i] = c
		for term, n := range c {
			totalFreq[term] += n
			docFreq[term]++
		}
	}

	vocab := v.selectVocabulary(totalFreq)
	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, c := range counts {
		vec := make(Vector, len(c))
		var norm float64
		for term, tf := range c {
			j, ok := index[term]
			if !ok {
				continue
			}
			w := float64(tf) * idf[j]
			vec[j] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j, w := range vec {
				vec[j] = w / norm
			}
		}
		vectors[i] = vec
	}
	return vectors, vocab, nil
}

// selectVocabulary keeps the MaxFeatures terms with the highest total
// corpus frequency, breaking frequency ties lexicographically, then
// assigns indices in alphabetical term order.
func (v *Vectorizer) selectVocabulary(totalFreq map[string]int) []string {
	terms := make([]string, 0, len(totalFreq))
	for term := range totalFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(a, b int) bool {
		fa, fb := totalFreq[terms[a]], totalFreq[terms[b]]
		if fa != fb {
			return fa > fb
		}
		return terms[a] < terms[b]
	})
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)
	return terms
}
