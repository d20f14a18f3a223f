// Package history loads a repository's commit graph into an immutable
// in-memory ledger and derives per-path indexes from it. The ledger is built
// by exactly one traversal and shared read-only by every analysis engine.
package history

import (
	"strings"
	"time"

	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib"
)

// unknownEmail is used when a commit carries no author email.
const unknownEmail = "unknown@localhost"

// PathChange records line counts for one path changed by one commit. Diff
// stats are computed against the first parent; merges with no net diff
// against their first parent contribute no path changes.
type PathChange struct {
	Path    string
	Added   int
	Deleted int
}

// Commit is an immutable record of one traversed commit. It is created once
// by the loader and never mutated afterwards.
type Commit struct {
	Hash        gitlib.Hash
	AuthorName  string
	AuthorEmail string
	When        time.Time // recorded instant with the author's UTC offset
	Parents     []gitlib.Hash
	Subject     string
	Body        string
	Changes     []PathChange
	IsMerge     bool
	IsRevert    bool
}

// Ledger is the ordered sequence of traversed commits, newest-first in
// graph-walk order. Once built it is read-only and safe for concurrent use.
type Ledger struct {
	Commits  []*Commit
	Warnings []string
}

// Empty reports whether the ledger holds no commits.
func (l *Ledger) Empty() bool {
	return len(l.Commits) == 0
}

// Now returns the newest commit timestamp in the ledger. Analyses use this
// instead of wall-clock time so results are reproducible for archived
// repositories. Zero time for an empty ledger.
func (l *Ledger) Now() time.Time {
	var newest time.Time

	for _, c := range l.Commits {
		if c.When.After(newest) {
			newest = c.When
		}
	}

	return newest
}

// revertMarker is the trailer git writes into revert commit bodies.
const revertMarker = "This reverts commit"

// IsRevertMessage reports whether a commit message looks like a revert.
// Message-pattern detection is a heuristic: it both under- and over-counts.
func IsRevertMessage(subject, message string) bool {
	return strings.HasPrefix(subject, "Revert") || strings.Contains(message, revertMarker)
}

// messageBody returns the text after the first blank line of a commit
// message, trimmed. Empty when the message has no body.
func messageBody(message string) string {
	_, body, found := strings.Cut(message, "\n\n")
	if !found {
		return ""
	}

	return strings.TrimSpace(body)
}
