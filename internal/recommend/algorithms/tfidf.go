// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/tomtom215/foodaware/internal/recommend"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// sparseVector maps vocabulary index to weight.
type sparseVector map[int]float64

// dot returns the inner product. For L2-normalized vectors this is the
// cosine similarity.
func (v sparseVector) dot(o sparseVector) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}
	var s float64
	for i, w := range v {
		s += w * o[i]
	}
	return s
}

// tfidfModel is a fitted TF-IDF vectorizer together with the vectors of the
// documents it was fit on.
//
// Weighting: raw term counts, smooth idf = ln((1+n)/(1+df)) + 1, L2 norm.
type tfidfModel struct {
	vocabulary map[string]int
	idf        []float64
	docs       []sparseVector
}

// tokenize lowercases text, extracts tokens and drops English stop words.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := englishStopWords[t]; !stop {
			out = append(out, t)
		}
	}
	return out
}

// fitTFIDF builds the vocabulary from docs. It fails with
// recommend.ErrVectorizer when no document yields a token.
func fitTFIDF(docs []string) (*tfidfModel, error) {
	tokenized := make([][]string, len(docs))
	vocab := make(map[string]int)
	var df []int

	for d, doc := range docs {
		tokens := tokenize(doc)
		tokenized[d] = tokens

		seen := make(map[int]struct{}, len(tokens))
		for _, t := range tokens {
			idx, ok := vocab[t]
			if !ok {
				idx = len(vocab)
				vocab[t] = idx
				df = append(df, 0)
			}
			if _, dup := seen[idx]; !dup {
				seen[idx] = struct{}{}
				df[idx]++
			}
		}
	}

	if len(vocab) == 0 {
		return nil, fmt.Errorf("empty vocabulary over %d documents: %w", len(docs), recommend.ErrVectorizer)
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, count := range df {
		idf[i] = math.Log((1+n)/(1+float64(count))) + 1
	}

	m := &tfidfModel{vocabulary: vocab, idf: idf, docs: make([]sparseVector, len(docs))}
	for d, tokens := range tokenized {
		m.docs[d] = m.weigh(tokens)
	}
	return m, nil
}

// transform vectorizes text with the fitted vocabulary. Unknown terms are
// ignored.
func (m *tfidfModel) transform(text string) sparseVector {
	return m.weigh(tokenize(text))
}

func (m *tfidfModel) weigh(tokens []string) sparseVector {
	v := make(sparseVector)
	for _, t := range tokens {
		if idx, ok := m.vocabulary[t]; ok {
			v[idx]++
		}
	}

	var norm float64
	for idx, tf := range v {
		w := tf * m.idf[idx]
		v[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for idx := range v {
		v[idx] /= norm
	}
	return v
}

// similarities returns the cosine similarity of text to every fitted document.
func (m *tfidfModel) similarities(text string) []float64 {
	q := m.transform(text)
	out := make([]float64, len(m.docs))
	for i, d := range m.docs {
		out[i] = q.dot(d)
	}
	return out
}
