// Package coauthors counts, for every unordered pair of authors, the number
// of paths both have touched across the full history.
package coauthors

import (
	"sort"

	"github.com/Sumatoshi-tech/gitpulse/internal/history"
)

// Pair is one co-authorship result. AuthorA sorts before AuthorB, so (A,B)
// and (B,A) are always the same entry.
type Pair struct {
	AuthorA     string `json:"author_a"     yaml:"author_a"`
	AuthorB     string `json:"author_b"     yaml:"author_b"`
	SharedFiles int    `json:"shared_files" yaml:"shared_files"`
}

// pairKey canonicalizes an unordered author pair.
type pairKey struct {
	a, b string
}

// Compute collects, per path, the distinct authors who ever touched it and
// increments a shared-file counter for every unordered author pair. All-pairs
// per file is quadratic in the per-file author count, which stays small in
// practice; single-author files contribute nothing and are skipped outright.
func Compute(idx *history.PathIndex) []Pair {
	counts := make(map[pairKey]int)

	for path := range idx.Counts {
		authors := idx.Authors(path)
		if len(authors) < 2 {
			continue
		}

		// Authors come back sorted, so i < j already canonicalizes.
		for i := 0; i < len(authors); i++ {
			for j := i + 1; j < len(authors); j++ {
				counts[pairKey{a: authors[i], b: authors[j]}]++
			}
		}
	}

	pairs := make([]Pair, 0, len(counts))
	for key, count := range counts {
		pairs = append(pairs, Pair{AuthorA: key.a, AuthorB: key.b, SharedFiles: count})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].SharedFiles != pairs[j].SharedFiles {
			return pairs[i].SharedFiles > pairs[j].SharedFiles
		}

		if pairs[i].AuthorA != pairs[j].AuthorA {
			return pairs[i].AuthorA < pairs[j].AuthorA
		}

		return pairs[i].AuthorB < pairs[j].AuthorB
	})

	return pairs
}
