// Package activity provides per-author views over the ledger: commit counts
// with first/last dates, first contributions, time-of-day habits and per-file
// contribution breakdowns.
package activity

import (
	"errors"
	"sort"
	"time"

	"github.com/Sumatoshi-tech/gitpulse/internal/history"
)

// ErrUnknownAuthor is returned when an author email has no commits in the
// ledger.
var ErrUnknownAuthor = errors.New("no commits by author")

// Hour bucket boundaries, matching the summary engine's buckets.
const (
	morningStart   = 6
	afternoonStart = 12
	eveningStart   = 18
)

// AuthorStat is one author's commit count and active range.
type AuthorStat struct {
	Author  string `json:"author"  yaml:"author"`
	Commits int    `json:"commits" yaml:"commits"`
	First   string `json:"first"   yaml:"first"`
	Last    string `json:"last"    yaml:"last"`
}

// TopAuthors ranks authors by commit count descending (ties by author
// ascending), optionally restricted to commits at or after since.
func TopAuthors(ledger *history.Ledger, since time.Time) []AuthorStat {
	type meta struct {
		count       int
		first, last time.Time
	}

	byAuthor := make(map[string]*meta)

	for _, commit := range ledger.Commits {
		if !since.IsZero() && commit.When.Before(since) {
			continue
		}

		m := byAuthor[commit.AuthorEmail]
		if m == nil {
			m = &meta{first: commit.When, last: commit.When}
			byAuthor[commit.AuthorEmail] = m
		}

		m.count++

		if commit.When.Before(m.first) {
			m.first = commit.When
		}

		if commit.When.After(m.last) {
			m.last = commit.When
		}
	}

	stats := make([]AuthorStat, 0, len(byAuthor))
	for email, m := range byAuthor {
		stats = append(stats, AuthorStat{
			Author:  email,
			Commits: m.count,
			First:   m.first.Format(time.RFC3339),
			Last:    m.last.Format(time.RFC3339),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Commits != stats[j].Commits {
			return stats[i].Commits > stats[j].Commits
		}

		return stats[i].Author < stats[j].Author
	})

	return stats
}

// AuthorActivity returns the activity of a single author email.
func AuthorActivity(ledger *history.Ledger, email string) (AuthorStat, error) {
	for _, stat := range TopAuthors(ledger, time.Time{}) {
		if stat.Author == email {
			return stat, nil
		}
	}

	return AuthorStat{}, ErrUnknownAuthor
}

// FirstCommit is an author's earliest contribution.
type FirstCommit struct {
	Author string `json:"author" yaml:"author"`
	Date   string `json:"date"   yaml:"date"`
}

// FirstCommits returns each author's first contribution date, authors
// ascending.
func FirstCommits(ledger *history.Ledger) []FirstCommit {
	firsts := make(map[string]time.Time)

	for _, commit := range ledger.Commits {
		seen, ok := firsts[commit.AuthorEmail]
		if !ok || commit.When.Before(seen) {
			firsts[commit.AuthorEmail] = commit.When
		}
	}

	out := make([]FirstCommit, 0, len(firsts))
	for email, when := range firsts {
		out = append(out, FirstCommit{Author: email, Date: when.Format(time.RFC3339)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Author < out[j].Author })

	return out
}

// AuthorTimes is one author's commit histogram across time-of-day buckets,
// using each commit's recorded offset.
type AuthorTimes struct {
	Author    string `json:"author"    yaml:"author"`
	Night     int    `json:"night"     yaml:"night"`
	Morning   int    `json:"morning"   yaml:"morning"`
	Afternoon int    `json:"afternoon" yaml:"afternoon"`
	Evening   int    `json:"evening"   yaml:"evening"`
}

// CommitTimes buckets every commit by its author-local hour, authors
// ascending.
func CommitTimes(ledger *history.Ledger) []AuthorTimes {
	byAuthor := make(map[string]*AuthorTimes)

	for _, commit := range ledger.Commits {
		times := byAuthor[commit.AuthorEmail]
		if times == nil {
			times = &AuthorTimes{Author: commit.AuthorEmail}
			byAuthor[commit.AuthorEmail] = times
		}

		hour := commit.When.Hour()

		switch {
		case hour < morningStart:
			times.Night++
		case hour < afternoonStart:
			times.Morning++
		case hour < eveningStart:
			times.Afternoon++
		default:
			times.Evening++
		}
	}

	out := make([]AuthorTimes, 0, len(byAuthor))
	for _, times := range byAuthor {
		out = append(out, *times)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Author < out[j].Author })

	return out
}

// AuthorTouches is one author's touch count on a path.
type AuthorTouches struct {
	Author  string `json:"author"  yaml:"author"`
	Touches int    `json:"touches" yaml:"touches"`
}

// FileContribution is the per-author touch breakdown for one path.
type FileContribution struct {
	Path    string          `json:"path"    yaml:"path"`
	Authors []AuthorTouches `json:"authors" yaml:"authors"`
}

// FileContributions lists every path with its per-author touch counts, paths
// ascending, authors by touches descending then author ascending.
func FileContributions(idx *history.PathIndex) []FileContribution {
	out := make([]FileContribution, 0, len(idx.Counts))

	for _, path := range idx.Paths() {
		counts := idx.Counts[path]

		authors := make([]AuthorTouches, 0, len(counts))
		for email, touches := range counts {
			authors = append(authors, AuthorTouches{Author: email, Touches: touches})
		}

		sort.Slice(authors, func(i, j int) bool {
			if authors[i].Touches != authors[j].Touches {
				return authors[i].Touches > authors[j].Touches
			}

			return authors[i].Author < authors[j].Author
		})

		out = append(out, FileContribution{Path: path, Authors: authors})
	}

	return out
}
