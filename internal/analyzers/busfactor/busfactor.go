// Package busfactor ranks paths by ownership concentration: the share of a
// path owned by its single strongest author. Two strategies share one output
// shape: accurate mode blames every tracked file at HEAD on a worker pool,
// fast mode reuses touch counts from the already-loaded ledger.
package busfactor

import (
	"sort"

	"github.com/Sumatoshi-tech/gitpulse/pkg/pathutil"
)

// Mode selects the ownership strategy.
type Mode string

// Ownership strategies.
const (
	// ModeAccurate attributes every current line to its last-modifying
	// author via blame.
	ModeAccurate Mode = "accurate"
	// ModeFast approximates ownership by per-author touch counts over
	// recent history.
	ModeFast Mode = "fast"
)

// NoRollup disables directory aggregation; rows are per file.
const NoRollup = -1

// Defaults shared by both modes.
const (
	// DefaultThreshold flags paths whose top-author share reaches 75%.
	DefaultThreshold = 0.75
	// DefaultMinTotal filters tiny files (lines in accurate mode, touches
	// in fast mode).
	DefaultMinTotal = 25
	// DefaultMaxCommits bounds the fast-mode history window.
	DefaultMaxCommits = 5000
)

// Options configures a bus-factor computation.
type Options struct {
	// Threshold is the minimum top-author share for a path to be flagged.
	Threshold float64
	// MinTotal drops paths whose total (lines or touches) is below it.
	MinTotal int
	// Depth rolls paths up to their first Depth directory components
	// before recomputing the top-owner share. NoRollup keeps per-file rows.
	Depth int
	// Threads bounds the accurate-mode worker pool. 0 means available
	// parallelism.
	Threads int
	// MaxCommits bounds the fast-mode window (most recent N ledger
	// commits). 0 means DefaultMaxCommits.
	MaxCommits int
}

// Row is one ranked ownership result.
type Row struct {
	Path      string  `json:"path"       yaml:"path"`
	Mode      Mode    `json:"mode"       yaml:"mode"`
	TopAuthor string  `json:"top_author" yaml:"top_author"`
	Share     float64 `json:"share"      yaml:"share"`
	Total     int     `json:"total"      yaml:"total"`
	Flagged   bool    `json:"flagged"    yaml:"flagged"`
}

// Result carries the ranked rows plus per-file warnings. A non-empty warning
// list signals a partial (but still valid) result.
type Result struct {
	Rows     []Row
	Warnings []string
}

// rollupKey maps a file path to its aggregation key for the given depth.
func rollupKey(path string, depth int) string {
	if depth == NoRollup {
		return path
	}

	return pathutil.DirKey(path, depth)
}

// mergeCounts adds per-author counts into the accumulator for one key.
func mergeCounts(byKey map[string]map[string]int, key string, counts map[string]int) {
	dst := byKey[key]
	if dst == nil {
		dst = make(map[string]int, len(counts))
		byKey[key] = dst
	}

	for author, count := range counts {
		dst[author] += count
	}
}

// rankOwnership turns per-key author counts into ranked, flagged rows.
// Paths with zero total are excluded (share undefined); paths below MinTotal
// are filtered. Ranking is share descending, ties broken by total descending
// then path ascending; top-author ties go to the lexicographically smaller
// identity so output is deterministic.
func rankOwnership(byKey map[string]map[string]int, mode Mode, opts Options) []Row {
	rows := make([]Row, 0, len(byKey))

	for key, counts := range byKey {
		total := 0
		for _, count := range counts {
			total += count
		}

		if total == 0 || total < opts.MinTotal {
			continue
		}

		topAuthor, topCount := topOwner(counts)
		share := float64(topCount) / float64(total)

		rows = append(rows, Row{
			Path:      key,
			Mode:      mode,
			TopAuthor: topAuthor,
			Share:     share,
			Total:     total,
			Flagged:   share >= opts.Threshold,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Share != rows[j].Share {
			return rows[i].Share > rows[j].Share
		}

		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}

		return rows[i].Path < rows[j].Path
	})

	return rows
}

func topOwner(counts map[string]int) (string, int) {
	var (
		topAuthor string
		topCount  int
	)

	for author, count := range counts {
		if count > topCount || (count == topCount && (topAuthor == "" || author < topAuthor)) {
			topAuthor = author
			topCount = count
		}
	}

	return topAuthor, topCount
}
