package busfactor

import (
	"github.com/Sumatoshi-tech/gitpulse/internal/history"
)

// ComputeFast approximates ownership from touch counts over the most recent
// MaxCommits ledger entries. No blame and no parallel work: it runs directly
// over already-loaded data.
func ComputeFast(ledger *history.Ledger, opts Options) *Result {
	maxCommits := opts.MaxCommits
	if maxCommits <= 0 {
		maxCommits = DefaultMaxCommits
	}

	idx := history.NewPathIndexLimit(ledger, maxCommits)

	byKey := make(map[string]map[string]int, len(idx.Counts))
	for path, counts := range idx.Counts {
		mergeCounts(byKey, rollupKey(path, opts.Depth), counts)
	}

	return &Result{Rows: rankOwnership(byKey, ModeFast, opts)}
}
