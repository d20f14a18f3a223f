package churn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitpulse/internal/history"
	"github.com/Sumatoshi-tech/gitpulse/pkg/pathutil"
)

const (
	aliceEmail     = "alice@example.com"
	testWindowDays = 30
	floatTolerance = 1e-9
)

var newest = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// changeCommit builds one ledger commit touching the given paths.
func changeCommit(when time.Time, changes ...history.PathChange) *history.Commit {
	return &history.Commit{AuthorEmail: aliceEmail, When: when, Changes: changes}
}

func TestCompute_NewestCommitHasFullWeight(t *testing.T) {
	t.Parallel()

	ledger := &history.Ledger{Commits: []*history.Commit{
		changeCommit(newest, history.PathChange{Path: "main.go", Added: 10, Deleted: 5}),
	}}

	rows := Compute(ledger, Options{WindowDays: testWindowDays, Depth: NoRollup})
	require.Len(t, rows, 1)

	assert.Equal(t, "main.go", rows[0].Path)
	assert.InDelta(t, 15.0, rows[0].Churn, floatTolerance)
	assert.Equal(t, 10, rows[0].Adds)
	assert.Equal(t, 5, rows[0].Dels)
	assert.Equal(t, 1, rows[0].Touches)
}

func TestCompute_WindowBoundaryHasZeroWeight(t *testing.T) {
	t.Parallel()

	boundary := newest.Add(-time.Duration(testWindowDays) * 24 * time.Hour)

	ledger := &history.Ledger{Commits: []*history.Commit{
		changeCommit(newest, history.PathChange{Path: "main.go", Added: 1}),
		changeCommit(boundary, history.PathChange{Path: "old.go", Added: 100}),
	}}

	rows := Compute(ledger, Options{WindowDays: testWindowDays, Depth: NoRollup})
	require.Len(t, rows, 2)

	// The boundary commit is inside the window but decays to weight zero.
	// Its unweighted adds still count.
	var oldRow Row

	for _, row := range rows {
		if row.Path == "old.go" {
			oldRow = row
		}
	}

	assert.InDelta(t, 0.0, oldRow.Churn, floatTolerance)
	assert.Equal(t, 100, oldRow.Adds)
}

func TestCompute_OutsideWindowExcluded(t *testing.T) {
	t.Parallel()

	outside := newest.Add(-time.Duration(testWindowDays)*24*time.Hour - time.Second)

	ledger := &history.Ledger{Commits: []*history.Commit{
		changeCommit(newest, history.PathChange{Path: "main.go", Added: 1}),
		changeCommit(outside, history.PathChange{Path: "old.go", Added: 100}),
	}}

	rows := Compute(ledger, Options{WindowDays: testWindowDays, Depth: NoRollup})
	require.Len(t, rows, 1)
	assert.Equal(t, "main.go", rows[0].Path)
}

func TestCompute_HalfWindowWeight(t *testing.T) {
	t.Parallel()

	half := newest.Add(-time.Duration(testWindowDays) * 12 * time.Hour)

	ledger := &history.Ledger{Commits: []*history.Commit{
		changeCommit(newest, history.PathChange{Path: "a.go", Added: 1}),
		changeCommit(half, history.PathChange{Path: "b.go", Added: 10}),
	}}

	rows := Compute(ledger, Options{WindowDays: testWindowDays, Depth: NoRollup})
	require.Len(t, rows, 2)

	for _, row := range rows {
		if row.Path == "b.go" {
			assert.InDelta(t, 5.0, row.Churn, floatTolerance)
		}
	}
}

func TestCompute_DirectoryRollup(t *testing.T) {
	t.Parallel()

	ledger := &history.Ledger{Commits: []*history.Commit{
		changeCommit(newest,
			history.PathChange{Path: "pkg/a/x.go", Added: 1},
			history.PathChange{Path: "pkg/b/y.go", Added: 2},
			history.PathChange{Path: "top.go", Added: 4},
		),
	}}

	rows := Compute(ledger, Options{WindowDays: testWindowDays, Depth: 1})
	require.Len(t, rows, 2)

	byPath := make(map[string]Row, len(rows))
	for _, row := range rows {
		byPath[row.Path] = row
	}

	assert.InDelta(t, 3.0, byPath["pkg"].Churn, floatTolerance)
	assert.Equal(t, 2, byPath["pkg"].Touches)
	assert.InDelta(t, 4.0, byPath[pathutil.RootKey].Churn, floatTolerance)
}

func TestCompute_MinTotalFilter(t *testing.T) {
	t.Parallel()

	// big.go: 2 touches, 60 changed lines. rare.go: 1 touch, 50 lines.
	// small.go: 2 touches, 2 lines. Both thresholds must hold.
	ledger := &history.Ledger{Commits: []*history.Commit{
		changeCommit(newest,
			history.PathChange{Path: "big.go", Added: 50},
			history.PathChange{Path: "rare.go", Added: 50},
			history.PathChange{Path: "small.go", Added: 1},
		),
		changeCommit(newest.Add(-time.Hour),
			history.PathChange{Path: "big.go", Added: 10},
			history.PathChange{Path: "small.go", Added: 1},
		),
	}}

	rows := Compute(ledger, Options{WindowDays: testWindowDays, Depth: NoRollup, MinTotal: 2})
	require.Len(t, rows, 1)
	assert.Equal(t, "big.go", rows[0].Path)
}

func TestCompute_Ordering(t *testing.T) {
	t.Parallel()

	ledger := &history.Ledger{Commits: []*history.Commit{
		changeCommit(newest,
			history.PathChange{Path: "b.go", Added: 5},
			history.PathChange{Path: "a.go", Added: 5},
			history.PathChange{Path: "c.go", Added: 9},
		),
	}}

	rows := Compute(ledger, Options{WindowDays: testWindowDays, Depth: NoRollup})
	require.Len(t, rows, 3)

	// Churn descending, then path ascending for the tie.
	assert.Equal(t, "c.go", rows[0].Path)
	assert.Equal(t, "a.go", rows[1].Path)
	assert.Equal(t, "b.go", rows[2].Path)
}

func TestCompute_EmptyLedger(t *testing.T) {
	t.Parallel()

	rows := Compute(&history.Ledger{}, Options{WindowDays: testWindowDays, Depth: NoRollup})
	assert.Empty(t, rows)
}
