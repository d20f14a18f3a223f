package summary

import (
	"math"
	"sort"
)

// authorCount pairs an author identity with a commit count.
type authorCount struct {
	email string
	count int
}

// sortedAuthorCounts orders authors by commit count descending, ties broken
// by email ascending for determinism.
func sortedAuthorCounts(authorCommits map[string]int) []authorCount {
	counts := make([]authorCount, 0, len(authorCommits))
	for email, count := range authorCommits {
		counts = append(counts, authorCount{email: email, count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}

		return counts[i].email < counts[j].email
	})

	return counts
}

// driveByRatioPct is the percentage of authors with at most two commits.
func driveByRatioPct(counts []authorCount) float64 {
	if len(counts) == 0 {
		return 0
	}

	driveBy := 0

	for _, c := range counts {
		if c.count <= driveByMaxCommits {
			driveBy++
		}
	}

	return percent * float64(driveBy) / float64(len(counts))
}

// coreSize returns the smallest number of top authors whose cumulative commit
// count reaches coverage% of the total.
func coreSize(counts []authorCount, total, coverage int) int {
	if total == 0 {
		return 0
	}

	target := int(math.Ceil(float64(total) * float64(coverage) / percent))
	accumulated := 0
	size := 0

	for _, c := range counts {
		size++
		accumulated += c.count

		if accumulated >= target {
			break
		}
	}

	return size
}

// hhi is the Herfindahl-Hirschman Index: the sum of squared contribution
// shares. Ranges from 1/N (uniform) to 1 (single author).
func hhi(counts []authorCount, total int) float64 {
	if total == 0 {
		return 0
	}

	sum := 0.0

	for _, c := range counts {
		share := float64(c.count) / float64(total)
		sum += share * share
	}

	return sum
}

// gini is the inequality coefficient of the per-author commit distribution,
// computed over sorted cumulative shares. 0 means perfectly equal.
func gini(counts []authorCount) float64 {
	if len(counts) == 0 {
		return 0
	}

	values := make([]float64, 0, len(counts))
	sum := 0.0

	for _, c := range counts {
		values = append(values, float64(c.count))
		sum += float64(c.count)
	}

	if sum == 0 {
		return 0
	}

	sort.Float64s(values)

	n := float64(len(values))
	cumulative := 0.0
	weighted := 0.0

	for _, v := range values {
		cumulative += v
		weighted += cumulative
	}

	return (n + 1 - 2*(weighted/sum)) / n
}
