package summary

import (
	"regexp"
	"sort"
)

// conventionalSubject matches the conventional-commit shape
// `type(scope)?: subject` for a fixed set of recognized types.
var conventionalSubject = regexp.MustCompile(
	`^(feat|fix|chore|refactor|docs|test|perf|style|build|ci|revert|deps)(\([^)]*\))?!?: `,
)

// IsConventionalSubject reports whether a subject line follows the
// conventional-commit pattern.
func IsConventionalSubject(subject string) bool {
	return conventionalSubject.MatchString(subject)
}

// medianInt returns the upper median of the values. Zero for an empty slice.
func medianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	return sorted[len(sorted)/2]
}
