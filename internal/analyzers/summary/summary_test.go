package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitpulse/internal/history"
)

// Test author identities.
const (
	aliceEmail = "alice@example.com"
	bobEmail   = "bob@example.com"
)

const floatTolerance = 1e-9

// commitAt builds a minimal ledger commit for aggregation tests.
func commitAt(email string, when time.Time) *history.Commit {
	return &history.Commit{
		AuthorEmail: email,
		When:        when,
		Subject:     "change something",
	}
}

// threeCommitLedger is the canonical scenario: alice commits on day 1 and
// day 3, bob on day 2.
func threeCommitLedger() *history.Ledger {
	day1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	return &history.Ledger{Commits: []*history.Commit{
		commitAt(aliceEmail, day1.AddDate(0, 0, 2)),
		commitAt(bobEmail, day1.AddDate(0, 0, 1)),
		commitAt(aliceEmail, day1),
	}}
}

func TestCompute_EmptyLedger(t *testing.T) {
	t.Parallel()

	_, err := Compute(&history.Ledger{})
	require.ErrorIs(t, err, ErrNoCommits)
}

func TestCompute_ThreeCommitScenario(t *testing.T) {
	t.Parallel()

	report, err := Compute(threeCommitLedger())
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalCommits)
	assert.Equal(t, 2, report.ContributorsTotal)
	assert.Equal(t, aliceEmail, report.FirstCommit.Author)
	assert.Equal(t, "2024-03-01T10:00:00Z", report.FirstCommit.Date)
	assert.Equal(t, aliceEmail, report.LastCommit.Author)
	assert.Equal(t, "2024-03-03T10:00:00Z", report.LastCommit.Date)

	// Day distance between first and last commit dates.
	assert.Equal(t, 2, report.ActiveDays)
	assert.InDelta(t, 1.5, report.AvgCommitsPerDay, floatTolerance)

	// One commit per day: peak ties break to the earliest date.
	assert.Equal(t, "2024-03-01", report.PeakDay)
	assert.Equal(t, 1, report.PeakDayCommits)
	assert.Equal(t, 1, report.LongestIdleGapDays)

	// Everything is inside the 90-day window.
	assert.InDelta(t, 100.0, report.Momentum90dPct, floatTolerance)
	assert.Equal(t, 2, report.ActiveAuthorsLast90d)

	// Shares 2/3 and 1/3.
	assert.InDelta(t, 5.0/9.0, report.ConcentrationHHI, floatTolerance)
	assert.InDelta(t, 1.0/6.0, report.ConcentrationGini, floatTolerance)

	// 80% of 3 commits needs ceil(2.4)=3, so both authors are core.
	assert.Equal(t, 2, report.CoreSize80Pct)

	// Both authors have at most two commits.
	assert.InDelta(t, 100.0, report.DriveByRatioPct, floatTolerance)

	// All commits at 10:00, inside work hours and the morning bucket.
	assert.InDelta(t, 100.0, report.WorkHoursPct, floatTolerance)
	assert.InDelta(t, 100.0, report.HourBuckets.MorningPct, floatTolerance)
	assert.InDelta(t, 0.0, report.HourBuckets.NightPct, floatTolerance)
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()

	ledger := threeCommitLedger()

	first, err := Compute(ledger)
	require.NoError(t, err)

	second, err := Compute(ledger)
	require.NoError(t, err)

	// The ledger is read-only; recomputing must reproduce the report exactly.
	assert.Equal(t, first, second)
}

func TestCompute_WeekdayCountsMondayFirst(t *testing.T) {
	t.Parallel()

	// 2024-03-04 is a Monday, 2024-03-10 a Sunday.
	monday := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	ledger := &history.Ledger{Commits: []*history.Commit{
		commitAt(aliceEmail, sunday),
		commitAt(aliceEmail, monday),
		commitAt(aliceEmail, monday.Add(time.Hour)),
	}}

	report, err := Compute(ledger)
	require.NoError(t, err)

	assert.Equal(t, [7]int{2, 0, 0, 0, 0, 0, 1}, report.WeekdayCounts)
}

func TestCompute_HourBucketBoundaries(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	hours := []int{0, 5, 6, 11, 12, 17, 18, 23}

	commits := make([]*history.Commit, 0, len(hours))
	for _, hour := range hours {
		commits = append(commits, commitAt(aliceEmail, day.Add(time.Duration(hour)*time.Hour)))
	}

	report, err := Compute(&history.Ledger{Commits: commits})
	require.NoError(t, err)

	assert.InDelta(t, 25.0, report.HourBuckets.NightPct, floatTolerance)
	assert.InDelta(t, 25.0, report.HourBuckets.MorningPct, floatTolerance)
	assert.InDelta(t, 25.0, report.HourBuckets.AfternoonPct, floatTolerance)
	assert.InDelta(t, 25.0, report.HourBuckets.EveningPct, floatTolerance)

	// Work hours are [9, 18): of the sampled hours only 11, 12 and 17 hit.
	assert.InDelta(t, 100.0*3.0/8.0, report.WorkHoursPct, floatTolerance)
}

func TestCompute_LongestIdleGap(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	ledger := &history.Ledger{Commits: []*history.Commit{
		commitAt(aliceEmail, start.AddDate(0, 0, 12)),
		commitAt(aliceEmail, start.AddDate(0, 0, 2)),
		commitAt(aliceEmail, start.AddDate(0, 0, 2).Add(time.Hour)), // same day, no gap
		commitAt(aliceEmail, start),
	}}

	report, err := Compute(ledger)
	require.NoError(t, err)

	assert.Equal(t, 10, report.LongestIdleGapDays)
}

func TestCompute_MomentumWindow(t *testing.T) {
	t.Parallel()

	newest := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	ledger := &history.Ledger{Commits: []*history.Commit{
		commitAt(aliceEmail, newest),
		commitAt(aliceEmail, newest.AddDate(0, 0, -momentumWindowDays)), // exactly on the boundary
		commitAt(bobEmail, newest.AddDate(0, 0, -momentumWindowDays-1)),
		commitAt(bobEmail, newest.AddDate(-1, 0, 0)),
	}}

	report, err := Compute(ledger)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, report.Momentum90dPct, floatTolerance)
	assert.Equal(t, 1, report.ActiveAuthorsLast90d)
}

func TestCompute_MergeAndRevertRates(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	merge := commitAt(aliceEmail, when)
	merge.IsMerge = true

	revert := commitAt(aliceEmail, when.Add(time.Hour))
	revert.IsRevert = true

	ledger := &history.Ledger{Commits: []*history.Commit{
		merge,
		revert,
		commitAt(bobEmail, when.Add(2 * time.Hour)),
		commitAt(bobEmail, when.Add(3 * time.Hour)),
	}}

	report, err := Compute(ledger)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, report.MergeRatePct, floatTolerance)
	assert.InDelta(t, 25.0, report.RevertRatePct, floatTolerance)
}

func TestCompute_MessageHygiene(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	conventional := commitAt(aliceEmail, when)
	conventional.Subject = "feat(core): add thing"
	conventional.Body = "Why the thing matters."

	plain := commitAt(bobEmail, when.Add(time.Hour))
	plain.Subject = "add other thing"

	report, err := Compute(&history.Ledger{Commits: []*history.Commit{conventional, plain}})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, report.ConventionalCommitPct, floatTolerance)
	assert.InDelta(t, 50.0, report.BodyPresentPct, floatTolerance)
}

func TestDaysBetween_SameDay(t *testing.T) {
	t.Parallel()

	morning := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 4, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysBetween(morning, evening))
}

func TestMondayIndexed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, mondayIndexed(time.Monday))
	assert.Equal(t, 5, mondayIndexed(time.Saturday))
	assert.Equal(t, 6, mondayIndexed(time.Sunday))
}
