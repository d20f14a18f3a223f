package busfactor

import (
	"sort"

	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib"
)

// AuthorLines is one author's owned-line count for a single file at HEAD.
type AuthorLines struct {
	Author string  `json:"author" yaml:"author"`
	Lines  int     `json:"lines"  yaml:"lines"`
	Share  float64 `json:"share"  yaml:"share"`
}

// BlameSummary blames one file at HEAD and breaks its current lines down by
// author. The caller keeps ownership of the repository handle.
func BlameSummary(repo *gitlib.Repository, path string) ([]AuthorLines, error) {
	return blameSummary(&gitBlamer{repo: repo}, path)
}

// blameSummary turns per-author line counts into ranked rows: lines
// descending, ties broken by author ascending.
func blameSummary(b blamer, path string) ([]AuthorLines, error) {
	counts, err := b.Blame(path)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, lines := range counts {
		total += lines
	}

	rows := make([]AuthorLines, 0, len(counts))

	for author, lines := range counts {
		share := 0.0
		if total > 0 {
			share = float64(lines) / float64(total)
		}

		rows = append(rows, AuthorLines{Author: author, Lines: lines, Share: share})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Lines != rows[j].Lines {
			return rows[i].Lines > rows[j].Lines
		}

		return rows[i].Author < rows[j].Author
	})

	return rows, nil
}
