// Package churn computes windowed, time-decay-weighted change volume per
// path. Recent changes weigh more: the weight is 1.0 at the newest commit and
// falls linearly to 0.0 at the window boundary.
package churn

import (
	"sort"
	"time"

	"github.com/Sumatoshi-tech/gitpulse/internal/history"
	"github.com/Sumatoshi-tech/gitpulse/pkg/pathutil"
)

// NoRollup disables directory aggregation; rows are per file.
const NoRollup = -1

// hoursPerDay converts the window length to a duration.
const hoursPerDay = 24

// Options configures a churn computation.
type Options struct {
	// WindowDays is the trailing window length ending at the newest commit.
	WindowDays int
	// Depth rolls paths up to their first Depth directory components.
	// 0 aggregates to the repository root; NoRollup keeps per-file rows.
	Depth int
	// MinTotal drops rows whose unweighted adds+dels or touches fall below
	// this threshold, applied after aggregation.
	MinTotal int
}

// Row is one ranked churn result.
type Row struct {
	Path    string  `json:"path"    yaml:"path"`
	Churn   float64 `json:"churn"   yaml:"churn"`
	Adds    int     `json:"adds"    yaml:"adds"`
	Dels    int     `json:"dels"    yaml:"dels"`
	Touches int     `json:"touches" yaml:"touches"`
}

// accumulator is the running per-path state during the pass.
type accumulator struct {
	churn   float64
	adds    int
	dels    int
	touches int
}

// Compute filters ledger commits to the trailing window, applies linear decay
// weighting and sums per path (or per directory key). "now" is the newest
// commit timestamp, so the result is reproducible for archived repositories.
func Compute(ledger *history.Ledger, opts Options) []Row {
	now := ledger.Now()
	window := time.Duration(opts.WindowDays) * hoursPerDay * time.Hour

	byPath := make(map[string]*accumulator)

	for _, commit := range ledger.Commits {
		age := now.Sub(commit.When)
		if age < 0 || age > window {
			// Commit ordering is irrelevant here: anything outside the
			// window contributes zero regardless of position.
			continue
		}

		weight := 1 - age.Seconds()/window.Seconds()
		if weight < 0 {
			weight = 0
		}

		for _, change := range commit.Changes {
			key := change.Path
			if opts.Depth != NoRollup {
				key = pathutil.DirKey(change.Path, opts.Depth)
			}

			acc := byPath[key]
			if acc == nil {
				acc = &accumulator{}
				byPath[key] = acc
			}

			acc.churn += weight * float64(change.Added+change.Deleted)
			acc.adds += change.Added
			acc.dels += change.Deleted
			acc.touches++
		}
	}

	rows := make([]Row, 0, len(byPath))

	for path, acc := range byPath {
		if acc.adds+acc.dels < opts.MinTotal || acc.touches < opts.MinTotal {
			continue
		}

		rows = append(rows, Row{
			Path:    path,
			Churn:   acc.churn,
			Adds:    acc.adds,
			Dels:    acc.dels,
			Touches: acc.touches,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Churn != rows[j].Churn {
			return rows[i].Churn > rows[j].Churn
		}

		if rows[i].Touches != rows[j].Touches {
			return rows[i].Touches > rows[j].Touches
		}

		return rows[i].Path < rows[j].Path
	})

	return rows
}
