package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func countsOf(pairs ...authorCount) []authorCount {
	return pairs
}

func TestSortedAuthorCounts_Deterministic(t *testing.T) {
	t.Parallel()

	counts := sortedAuthorCounts(map[string]int{
		"carol@example.com": 5,
		"bob@example.com":   5,
		"alice@example.com": 9,
	})

	assert.Equal(t, countsOf(
		authorCount{email: "alice@example.com", count: 9},
		authorCount{email: "bob@example.com", count: 5},
		authorCount{email: "carol@example.com", count: 5},
	), counts)
}

func TestHHI(t *testing.T) {
	t.Parallel()

	// Single author owns everything.
	single := countsOf(authorCount{email: aliceEmail, count: 10})
	assert.InDelta(t, 1.0, hhi(single, 10), floatTolerance)

	// Four uniform authors: HHI = 1/4.
	uniform := countsOf(
		authorCount{email: "a", count: 5},
		authorCount{email: "b", count: 5},
		authorCount{email: "c", count: 5},
		authorCount{email: "d", count: 5},
	)
	assert.InDelta(t, 0.25, hhi(uniform, 20), floatTolerance)

	assert.InDelta(t, 0.0, hhi(nil, 0), floatTolerance)
}

func TestGini(t *testing.T) {
	t.Parallel()

	// Perfect equality.
	uniform := countsOf(
		authorCount{email: "a", count: 3},
		authorCount{email: "b", count: 3},
		authorCount{email: "c", count: 3},
	)
	assert.InDelta(t, 0.0, gini(uniform), floatTolerance)

	// Counts [2, 1]: ascending [1, 2], Gini = 1/6.
	skewed := countsOf(
		authorCount{email: aliceEmail, count: 2},
		authorCount{email: bobEmail, count: 1},
	)
	assert.InDelta(t, 1.0/6.0, gini(skewed), floatTolerance)

	// Single author is trivially equal.
	assert.InDelta(t, 0.0, gini(countsOf(authorCount{email: aliceEmail, count: 7})), floatTolerance)

	assert.InDelta(t, 0.0, gini(nil), floatTolerance)
}

func TestCoreSize(t *testing.T) {
	t.Parallel()

	// 10 commits, target ceil(8.0)=8: alice alone covers it.
	dominant := countsOf(
		authorCount{email: aliceEmail, count: 8},
		authorCount{email: bobEmail, count: 2},
	)
	assert.Equal(t, 1, coreSize(dominant, 10, coreCoveragePct))

	// 10 commits split 5/3/2: alice+bob reach 8.
	spread := countsOf(
		authorCount{email: "a", count: 5},
		authorCount{email: "b", count: 3},
		authorCount{email: "c", count: 2},
	)
	assert.Equal(t, 2, coreSize(spread, 10, coreCoveragePct))

	assert.Equal(t, 0, coreSize(nil, 0, coreCoveragePct))
}

func TestDriveByRatioPct(t *testing.T) {
	t.Parallel()

	counts := countsOf(
		authorCount{email: "a", count: 50},
		authorCount{email: "b", count: 2},
		authorCount{email: "c", count: 1},
		authorCount{email: "d", count: 3},
	)

	// Two of four authors have at most two commits.
	assert.InDelta(t, 50.0, driveByRatioPct(counts), floatTolerance)

	assert.InDelta(t, 0.0, driveByRatioPct(nil), floatTolerance)
}
