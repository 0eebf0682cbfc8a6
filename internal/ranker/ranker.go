// file: internal/ranker/ranker.go
// version: 1.2.0
// guid: 9c0d1e2f-3a4b-5c6d-7e8f-9a0b1c2d3e4f

package ranker

import (
	"fmt"
	"sort"
	"time"

	"github.com/jdfalk/booksearch/internal/levenshtein"
)

// DefaultK is the number of results returned when the caller does not
// ask for a specific count.
const DefaultK = 10

// ScoredCandidate pairs a candidate with its similarity score (0-100).
type ScoredCandidate struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Result holds the ranked top-K candidates and the wall-clock time the
// scoring and selection took. Dataset acquisition is not included.
type Result struct {
	Candidates []ScoredCandidate `json:"candidates"`
	Elapsed    time.Duration     `json:"elapsed"`
}

// Ranker scores queries against candidate lists using a pluggable
// distance kernel.
type Ranker struct {
	dist levenshtein.Func
}

// New creates a Ranker using the full-table kernel.
func New() *Ranker {
	return NewWithKernel(levenshtein.Distance)
}

// NewWithKernel creates a Ranker with an explicit distance strategy.
// A nil kernel falls back to the full-table default.
func NewWithKernel(dist levenshtein.Func) *Ranker {
	if dist == nil {
		dist = levenshtein.Distance
	}
	return &Ranker{dist: dist}
}

// Rank scores every candidate against query and returns the k highest
// scorers, descending by score. Equal scores keep their dataset order.
// k <= 0 means DefaultK; an empty dataset ranks to an empty result.
func (r *Ranker) Rank(query string, candidates []string, k int) (Result, error) {
	if k <= 0 {
		k = DefaultK
	}
	start := time.Now()

	scored := make([]ScoredCandidate, 0, len(candidates))
	for i, c := range candidates {
		s, err := levenshtein.SimilarityFunc(query, c, r.dist)
		if err != nil {
			return Result{}, fmt.Errorf("scoring candidate %d: %w", i, err)
		}
		scored = append(scored, ScoredCandidate{Text: c, Score: s})
	}

	// Stable sort so ties preserve dataset order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > k {
		scored = scored[:k]
	}

	return Result{Candidates: scored, Elapsed: time.Since(start)}, nil
}
