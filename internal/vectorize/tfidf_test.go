// Cinerec - Content-Based Movie Recommendation Service
// Copyright 2026 Cinerec contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package vectorize

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits",
			text: "Space Marines FIGHT aliens",
			want: []string{"space", "marines", "fight", "aliens"},
		},
		{
			name: "drops single characters",
			text: "a I x ray",
			want: []string{"ray"},
		},
		{
			name: "drops stop words",
			text: "the man of steel",
			want: []string{"man", "steel"},
		},
		{
			name: "punctuation separates tokens",
			text: "sci-fi: thriller, noir.",
			want: []string{"sci", "fi", "thriller", "noir"},
		},
		{
			name: "digits and underscores are word characters",
			text: "blade_runner 2049",
			want: []string{"blade_runner", "2049"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNgrams(t *testing.T) {
	tokens := []string{"dark", "city", "nights"}

	got := ngrams(tokens, 1, 2)
	want := []string{"dark", "city", "nights", "dark city", "city nights"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ngrams(1,2) = %v, want %v", got, want)
	}

	got = ngrams(tokens, 1, 1)
	if !reflect.DeepEqual(got, tokens) {
		t.Errorf("ngrams(1,1) = %v, want %v", got, tokens)
	}

	got = ngrams([]string{"solo"}, 1, 2)
	if !reflect.DeepEqual(got, []string{"solo"}) {
		t.Errorf("ngrams of single token = %v, want [solo]", got)
	}
}

func TestBigramsBridgeRemovedStopWords(t *testing.T) {
	// Stop words are removed before n-gram assembly, so the bigram joins
	// the surviving neighbors.
	terms := ngrams(tokenize("man of steel"), 1, 2)
	want := []string{"man", "steel", "man steel"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("terms = %v, want %v", terms, want)
	}
}

func TestFitTransformVocabulary(t *testing.T) {
	v := &Vectorizer{NgramMin: 1, NgramMax: 1}
	docs := []string{
		"robot city robot",
		"city lights",
	}
	_, vocab, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	// Indices are assigned in alphabetical term order.
	want := []string{"city", "lights", "robot"}
	if !reflect.DeepEqual(vocab, want) {
		t.Errorf("vocab = %v, want %v", vocab, want)
	}
}

func TestFitTransformMaxFeatures(t *testing.T) {
	v := &Vectorizer{MaxFeatures: 2, NgramMin: 1, NgramMax: 1}
	docs := []string{
		"robot robot robot city city lights",
	}
	_, vocab, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	// robot (3) and city (2) survive the cap; lights (1) is cut.
	want := []string{"city", "robot"}
	if !reflect.DeepEqual(vocab, want) {
		t.Errorf("vocab = %v, want %v", vocab, want)
	}
}

func TestFitTransformFrequencyTieBreaksLexicographically(t *testing.T) {
	v := &Vectorizer{MaxFeatures: 2, NgramMin: 1, NgramMax: 1}
	docs := []string{"zebra apple mango"}
	_, vocab, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	// All frequency 1; the cap keeps the lexicographically smallest.
	want := []string{"apple", "mango"}
	if !reflect.DeepEqual(vocab, want) {
		t.Errorf("vocab = %v, want %v", vocab, want)
	}
}

func TestFitTransformWeights(t *testing.T) {
	v := &Vectorizer{NgramMin: 1, NgramMax: 1}
	docs := []string{
		"robot city",
		"robot wars",
	}
	vectors, vocab, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	idx := make(map[string]int, len(vocab))
	for i, term := range vocab {
		idx[term] = i
	}

	// robot appears in both docs: idf = ln(3/3)+1 = 1.
	// city appears in one:        idf = ln(3/2)+1.
	idfRobot := 1.0
	idfCity := math.Log(1.5) + 1
	norm := math.Sqrt(idfRobot*idfRobot + idfCity*idfCity)

	got := vectors[0][idx["robot"]]
	want := idfRobot / norm
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("weight(robot, doc0) = %v, want %v", got, want)
	}
	got = vectors[0][idx["city"]]
	want = idfCity / norm
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("weight(city, doc0) = %v, want %v", got, want)
	}
}

func TestFitTransformL2Norm(t *testing.T) {
	v := NewVectorizer()
	docs := []string{
		"a lone gunslinger rides into a frontier town",
		"an astronaut stranded on mars grows potatoes to survive",
		"two rival magicians escalate a deadly feud in victorian london",
	}
	vectors, _, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	for i, vec := range vectors {
		var sum float64
		for _, w := range vec {
			sum += w * w
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("doc %d norm^2 = %v, want 1.0", i, sum)
		}
	}
}

func TestFitTransformStopWordOnlyDocument(t *testing.T) {
	v := NewVectorizer()
	docs := []string{
		"the and of to",
		"rogue archaeologist hunts a lost ark",
	}
	vectors, _, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	if len(vectors[0]) != 0 {
		t.Errorf("stop-word-only doc has %d weights, want empty vector", len(vectors[0]))
	}
	if len(vectors[1]) == 0 {
		t.Error("content doc unexpectedly empty")
	}
}

func TestFitTransformDeterministic(t *testing.T) {
	v := NewVectorizer()
	docs := []string{
		"heist crew plans one last job in the city",
		"retired assassin returns for revenge",
		"deep space crew answers a distress call",
	}
	v1, vocab1, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	v2, vocab2, err := v.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}
	if !reflect.DeepEqual(vocab1, vocab2) {
		t.Error("vocabulary differs across runs on identical corpus")
	}
	if !reflect.DeepEqual(v1, v2) {
		t.Error("vectors differ across runs on identical corpus")
	}
}

func TestFitTransformEmptyCorpus(t *testing.T) {
	if _, _, err := NewVectorizer().FitTransform(nil); err == nil {
		t.Error("expected error for empty corpus")
	}
}

func TestFitTransformInvalidNgramRange(t *testing.T) {
	v := &Vectorizer{NgramMin: 2, NgramMax: 1}
	if _, _, err := v.FitTransform([]string{"some text"}); err == nil {
		t.Error("expected error for inverted ngram range")
	}
}
