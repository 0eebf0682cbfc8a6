// file: internal/levenshtein/distance.go
// version: 1.1.0
// guid: 3f8a1b2c-4d5e-6f70-8a9b-0c1d2e3f4a5b

package levenshtein

import (
	"errors"
	"fmt"
	"strings"
)

// MaxInputLen is the largest operand length either distance strategy
// accepts. The bound guards against pathological table allocations, not
// any real operational limit.
const MaxInputLen = 1<<31 - 1

// ErrInputTooLarge is returned when an operand exceeds MaxInputLen.
// Inputs are never silently truncated.
var ErrInputTooLarge = errors.New("input exceeds maximum supported length")

// Func is a distance strategy: any function from two strings to an edit
// distance. Distance and DistanceTwoRow both satisfy it, as does any
// alternative kernel, so callers can swap strategies freely.
type Func func(a, b string) (int, error)

// CheckLengths validates operand lengths against MaxInputLen.
func CheckLengths(la, lb int) error {
	if la > MaxInputLen {
		return fmt.Errorf("first operand is %d bytes: %w", la, ErrInputTooLarge)
	}
	if lb > MaxInputLen {
		return fmt.Errorf("second operand is %d bytes: %w", lb, ErrInputTooLarge)
	}
	return nil
}

// Distance computes the edit distance between two strings using the full
// (n+1)×(m+1) dynamic-programming table. Comparison is case-insensitive;
// insert, delete, and substitute each cost 1.
func Distance(a, b string) (int, error) {
	if err := CheckLengths(len(a), len(b)); err != nil {
		return 0, err
	}
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	la, lb := len(a), len(b)
	if la == 0 {
		return lb, nil
	}
	if lb == 0 {
		return la, nil
	}

	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i][j-1]+1, min(d[i-1][j]+1, d[i-1][j-1]+cost))
		}
	}
	return d[la][lb], nil
}

// DistanceTwoRow computes the same edit distance as Distance using two
// rolling rows, so memory is O(min(n,m)) instead of O(n*m). Results are
// identical to Distance for all inputs.
func DistanceTwoRow(a, b string) (int, error) {
	if err := CheckLengths(len(a), len(b)); err != nil {
		return 0, err
	}
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	// Keep b as the shorter string so the rows stay small.
	if len(b) > len(a) {
		a, b = b, a
	}
	la, lb := len(a), len(b)
	if lb == 0 {
		return la, nil
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[lb], nil
}
