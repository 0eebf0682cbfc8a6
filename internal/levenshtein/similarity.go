// file: internal/levenshtein/similarity.go
// version: 1.1.0
// guid: 5c6d7e8f-9a0b-1c2d-3e4f-5a6b7c8d9e0f

package levenshtein

import "strings"

// Similarity converts edit distance into a percentage in [0, 100]:
// 100 * (maxLen - distance) / maxLen. If either string is empty the
// result is 0.0, including when both are empty: an empty operand means
// "no information", not a perfect match. No rounding is applied.
func Similarity(a, b string) (float64, error) {
	return SimilarityFunc(a, b, Distance)
}

// SimilarityFunc is Similarity with an explicit distance strategy.
// Operands are folded here so maxLen is measured on the same bytes the
// kernel compares; ToLower can grow a string, and an unfolded maxLen
// would let the score go negative.
func SimilarityFunc(a, b string, dist Func) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		if err := CheckLengths(len(a), len(b)); err != nil {
			return 0, err
		}
		return 0.0, nil
	}
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	d, err := dist(a, b)
	if err != nil {
		return 0, err
	}
	maxLen := max(len(a), len(b))
	score := 100 * float64(maxLen-d) / float64(maxLen)
	if score < 0 {
		score = 0
	}
	return score, nil
}
