package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test author identities.
const (
	aliceEmail = "alice@example.com"
	bobEmail   = "bob@example.com"
)

// newTestLedger builds the canonical three-commit fixture: alice touches
// main.go twice (once together with util.go), bob touches main.go once.
// Commits are newest-first, one day apart.
func newTestLedger() *Ledger {
	newest := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)

	return &Ledger{Commits: []*Commit{
		{
			AuthorEmail: aliceEmail,
			When:        newest,
			Changes:     []PathChange{{Path: "main.go", Added: 5, Deleted: 1}},
		},
		{
			AuthorEmail: bobEmail,
			When:        newest.AddDate(0, 0, -1),
			Changes:     []PathChange{{Path: "main.go", Added: 2, Deleted: 2}},
		},
		{
			AuthorEmail: aliceEmail,
			When:        newest.AddDate(0, 0, -2),
			Changes: []PathChange{
				{Path: "main.go", Added: 10, Deleted: 0},
				{Path: "util.go", Added: 30, Deleted: 0},
			},
		},
	}}
}

func TestNewPathIndex_Counts(t *testing.T) {
	t.Parallel()

	idx := NewPathIndex(newTestLedger())

	require.Len(t, idx.Counts, 2)
	assert.Equal(t, map[string]int{aliceEmail: 2, bobEmail: 1}, idx.Counts["main.go"])
	assert.Equal(t, map[string]int{aliceEmail: 1}, idx.Counts["util.go"])
}

func TestNewPathIndex_TouchesKeepLedgerOrder(t *testing.T) {
	t.Parallel()

	idx := NewPathIndex(newTestLedger())

	touches := idx.Touches["main.go"]
	require.Len(t, touches, 3)
	assert.Equal(t, aliceEmail, touches[0].AuthorEmail)
	assert.Equal(t, bobEmail, touches[1].AuthorEmail)
	assert.Equal(t, aliceEmail, touches[2].AuthorEmail)
}

func TestNewPathIndexLimit_RecentPrefix(t *testing.T) {
	t.Parallel()

	// Only the two newest commits: util.go drops out entirely.
	idx := NewPathIndexLimit(newTestLedger(), 2)

	require.Len(t, idx.Counts, 1)
	assert.Equal(t, map[string]int{aliceEmail: 1, bobEmail: 1}, idx.Counts["main.go"])
}

func TestNewPathIndexLimit_ZeroMeansAll(t *testing.T) {
	t.Parallel()

	idx := NewPathIndexLimit(newTestLedger(), 0)

	assert.Len(t, idx.Touches["main.go"], 3)
}

func TestPathIndex_Paths_Sorted(t *testing.T) {
	t.Parallel()

	idx := NewPathIndex(newTestLedger())

	assert.Equal(t, []string{"main.go", "util.go"}, idx.Paths())
}

func TestPathIndex_Authors_SortedDistinct(t *testing.T) {
	t.Parallel()

	idx := NewPathIndex(newTestLedger())

	assert.Equal(t, []string{aliceEmail, bobEmail}, idx.Authors("main.go"))
	assert.Equal(t, []string{aliceEmail}, idx.Authors("util.go"))
	assert.Empty(t, idx.Authors("missing.go"))
}
