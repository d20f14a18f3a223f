// Package summary computes repo-wide descriptive statistics from the ledger:
// counts, date ranges, idle gaps, momentum, concentration indices, time-of-day
// buckets and message hygiene.
package summary

import (
	"errors"
	"sort"
	"time"

	"github.com/Sumatoshi-tech/gitpulse/internal/history"
)

// ErrNoCommits is returned when the ledger is empty; every derived metric
// would be undefined.
var ErrNoCommits = errors.New("ledger contains no commits")

// Time-relative windows and thresholds.
const (
	momentumWindowDays = 90
	coreCoveragePct    = 80
	driveByMaxCommits  = 2
	workHoursStart     = 9
	workHoursEnd       = 18 // exclusive
	percent            = 100.0
	hoursPerDay        = 24
)

// Hour bucket boundaries (inclusive start of each bucket).
const (
	morningStart   = 6
	afternoonStart = 12
	eveningStart   = 18
)

// CommitStamp identifies one commit by author and ISO-8601 date.
type CommitStamp struct {
	Author string `json:"author" yaml:"author"`
	Date   string `json:"date"   yaml:"date"`
}

// HourBuckets holds commit percentages per time-of-day bucket.
type HourBuckets struct {
	NightPct     float64 `json:"night_pct"     yaml:"night_pct"`
	MorningPct   float64 `json:"morning_pct"   yaml:"morning_pct"`
	AfternoonPct float64 `json:"afternoon_pct" yaml:"afternoon_pct"`
	EveningPct   float64 `json:"evening_pct"   yaml:"evening_pct"`
}

// Report is the structured result of the aggregation engine. All time-relative
// metrics use the newest commit timestamp as "now", never the wall clock, so
// two runs over the same ledger are byte-identical.
type Report struct {
	FirstCommit           CommitStamp `json:"first_commit"             yaml:"first_commit"`
	LastCommit            CommitStamp `json:"last_commit"              yaml:"last_commit"`
	TotalCommits          int         `json:"total_commits"            yaml:"total_commits"`
	ContributorsTotal     int         `json:"contributors_total"       yaml:"contributors_total"`
	ActiveDays            int         `json:"active_days"              yaml:"active_days"`
	AvgCommitsPerDay      float64     `json:"avg_commits_per_day"      yaml:"avg_commits_per_day"`
	PeakDay               string      `json:"peak_day"                 yaml:"peak_day"`
	PeakDayCommits        int         `json:"peak_day_commits"         yaml:"peak_day_commits"`
	LongestIdleGapDays    int         `json:"longest_idle_gap_days"    yaml:"longest_idle_gap_days"`
	Momentum90dPct        float64     `json:"momentum_90d_pct"         yaml:"momentum_90d_pct"`
	ActiveAuthorsLast90d  int         `json:"active_authors_last_90d"  yaml:"active_authors_last_90d"`
	DriveByRatioPct       float64     `json:"drive_by_ratio_pct"       yaml:"drive_by_ratio_pct"`
	CoreSize80Pct         int         `json:"core_size_80pct"          yaml:"core_size_80pct"`
	ConcentrationHHI      float64     `json:"concentration_hhi"        yaml:"concentration_hhi"`
	ConcentrationGini     float64     `json:"concentration_gini"       yaml:"concentration_gini"`
	WeekdayCounts         [7]int      `json:"weekday_counts"           yaml:"weekday_counts,flow"`
	HourBuckets           HourBuckets `json:"hour_buckets"             yaml:"hour_buckets"`
	WorkHoursPct          float64     `json:"work_hours_pct"           yaml:"work_hours_pct"`
	MergeRatePct          float64     `json:"merge_rate_pct"           yaml:"merge_rate_pct"`
	RevertRatePct         float64     `json:"revert_rate_pct"          yaml:"revert_rate_pct"`
	MedianSubjectLen      int         `json:"median_subject_len"       yaml:"median_subject_len"`
	BodyPresentPct        float64     `json:"body_present_pct"         yaml:"body_present_pct"`
	ConventionalCommitPct float64     `json:"conventional_commit_pct"  yaml:"conventional_commit_pct"`
}

// Compute aggregates the ledger into a Report. It is a pure function of the
// ledger: no wall-clock reads, no mutation of ledger state.
func Compute(ledger *history.Ledger) (*Report, error) {
	if ledger.Empty() {
		return nil, ErrNoCommits
	}

	now := ledger.Now()
	total := len(ledger.Commits)
	report := &Report{TotalCommits: total}

	var (
		first, last     *history.Commit
		days            = make(map[string]int)
		authorCommits   = make(map[string]int)
		recentAuthors   = make(map[string]struct{})
		recentCommits   int
		workHoursHits   int
		merges, reverts int
		bodyHits        int
		convHits        int
		subjectLens     = make([]int, 0, total)
		buckets         [4]int
	)

	momentumStart := now.AddDate(0, 0, -momentumWindowDays)

	for _, commit := range ledger.Commits {
		if first == nil || commit.When.Before(first.When) {
			first = commit
		}

		if last == nil || commit.When.After(last.When) {
			last = commit
		}

		authorCommits[commit.AuthorEmail]++
		days[commit.When.Format(time.DateOnly)]++

		if !commit.When.Before(momentumStart) {
			recentCommits++
			recentAuthors[commit.AuthorEmail] = struct{}{}
		}

		report.WeekdayCounts[mondayIndexed(commit.When.Weekday())]++

		hour := commit.When.Hour()
		buckets[hourBucket(hour)]++

		if hour >= workHoursStart && hour < workHoursEnd {
			workHoursHits++
		}

		if commit.IsMerge {
			merges++
		}

		if commit.IsRevert {
			reverts++
		}

		if commit.Body != "" {
			bodyHits++
		}

		if IsConventionalSubject(commit.Subject) {
			convHits++
		}

		subjectLens = append(subjectLens, len([]rune(commit.Subject)))
	}

	report.FirstCommit = CommitStamp{Author: first.AuthorEmail, Date: first.When.Format(time.RFC3339)}
	report.LastCommit = CommitStamp{Author: last.AuthorEmail, Date: last.When.Format(time.RFC3339)}
	report.ContributorsTotal = len(authorCommits)

	report.ActiveDays = daysBetween(first.When, last.When)
	if report.ActiveDays > 0 {
		report.AvgCommitsPerDay = float64(total) / float64(report.ActiveDays)
	}

	report.PeakDay, report.PeakDayCommits = peakDay(days)
	report.LongestIdleGapDays = longestIdleGap(days)

	totalF := float64(total)
	report.Momentum90dPct = percent * float64(recentCommits) / totalF
	report.ActiveAuthorsLast90d = len(recentAuthors)

	counts := sortedAuthorCounts(authorCommits)
	report.DriveByRatioPct = driveByRatioPct(counts)
	report.CoreSize80Pct = coreSize(counts, total, coreCoveragePct)
	report.ConcentrationHHI = hhi(counts, total)
	report.ConcentrationGini = gini(counts)

	report.HourBuckets = HourBuckets{
		NightPct:     percent * float64(buckets[0]) / totalF,
		MorningPct:   percent * float64(buckets[1]) / totalF,
		AfternoonPct: percent * float64(buckets[2]) / totalF,
		EveningPct:   percent * float64(buckets[3]) / totalF,
	}
	report.WorkHoursPct = percent * float64(workHoursHits) / totalF
	report.MergeRatePct = percent * float64(merges) / totalF
	report.RevertRatePct = percent * float64(reverts) / totalF

	report.MedianSubjectLen = medianInt(subjectLens)
	report.BodyPresentPct = percent * float64(bodyHits) / totalF
	report.ConventionalCommitPct = percent * float64(convHits) / totalF

	return report, nil
}

// mondayIndexed converts Go's Sunday-first weekday to the Monday=0 layout
// used by weekday_counts.
func mondayIndexed(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}

// hourBucket maps a local hour to its bucket index: 0 night (00-05),
// 1 morning (06-11), 2 afternoon (12-17), 3 evening (18-23). Every hour
// lands in exactly one bucket.
func hourBucket(hour int) int {
	switch {
	case hour < morningStart:
		return 0
	case hour < afternoonStart:
		return 1
	case hour < eveningStart:
		return 2
	default:
		return 3
	}
}

// daysBetween returns the calendar-day distance between two instants, using
// each commit's recorded offset for the date.
func daysBetween(first, last time.Time) int {
	firstDay, _ := time.Parse(time.DateOnly, first.Format(time.DateOnly))
	lastDay, _ := time.Parse(time.DateOnly, last.Format(time.DateOnly))

	return int(lastDay.Sub(firstDay).Hours() / hoursPerDay)
}

// peakDay picks the calendar day with the most commits, ties broken by
// earliest date.
func peakDay(days map[string]int) (string, int) {
	var (
		bestDay   string
		bestCount int
	)

	for day, count := range days {
		if count > bestCount || (count == bestCount && (bestDay == "" || day < bestDay)) {
			bestDay = day
			bestCount = count
		}
	}

	return bestDay, bestCount
}

// longestIdleGap returns the maximum day distance between consecutive
// distinct commit dates. Commits on the same day never contribute a gap.
func longestIdleGap(days map[string]int) int {
	dates := make([]time.Time, 0, len(days))

	for day := range days {
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			continue
		}

		dates = append(dates, date)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest := 0

	for i := 1; i < len(dates); i++ {
		gap := int(dates[i].Sub(dates[i-1]).Hours() / hoursPerDay)
		if gap > longest {
			longest = gap
		}
	}

	return longest
}
