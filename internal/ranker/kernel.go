// file: internal/ranker/kernel.go
// version: 1.1.0
// guid: 0d1e2f3a-4b5c-6d7e-8f9a-0b1c2d3e4f5a

package ranker

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jdfalk/booksearch/internal/levenshtein"
)

// Kernel names accepted by KernelByName.
const (
	KernelTable     = "table"
	KernelTwoRow    = "two-row"
	KernelLithammer = "lithammer"
)

// LithammerKernel adapts fuzzysearch's Levenshtein implementation to the
// levenshtein.Func contract: same case folding and input bound as the
// built-in kernels, identical results for ASCII input. fuzzysearch
// counts runes where the built-in kernels count bytes, so multi-byte
// UTF-8 operands can score edits cheaper here.
func LithammerKernel(a, b string) (int, error) {
	if err := levenshtein.CheckLengths(len(a), len(b)); err != nil {
		return 0, err
	}
	return fuzzy.LevenshteinDistance(strings.ToLower(a), strings.ToLower(b)), nil
}

// KernelByName resolves a configured kernel name to a strategy. Unknown
// names fall back to the full-table kernel.
func KernelByName(name string) levenshtein.Func {
	switch name {
	case KernelTwoRow:
		return levenshtein.DistanceTwoRow
	case KernelLithammer:
		return LithammerKernel
	default:
		return levenshtein.Distance
	}
}
