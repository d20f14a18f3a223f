package history

import "sort"

// Touch is one commit modifying one path.
type Touch struct {
	Commit      *Commit
	AuthorEmail string
}

// PathIndex groups ledger commits by path and by (path, author). It is a
// derived view: rebuildable from the ledger at any time, never persisted and
// never shared across invocations.
type PathIndex struct {
	// Touches maps a path to its touches in ledger (newest-first) order.
	Touches map[string][]Touch
	// Counts maps path to author email to touch count.
	Counts map[string]map[string]int
}

// NewPathIndex builds an index over the whole ledger.
func NewPathIndex(ledger *Ledger) *PathIndex {
	return NewPathIndexLimit(ledger, 0)
}

// NewPathIndexLimit builds an index over the most recent maxCommits ledger
// entries. The ledger is newest-first, so the prefix is the recent window.
// maxCommits <= 0 means no restriction.
func NewPathIndexLimit(ledger *Ledger, maxCommits int) *PathIndex {
	commits := ledger.Commits
	if maxCommits > 0 && maxCommits < len(commits) {
		commits = commits[:maxCommits]
	}

	idx := &PathIndex{
		Touches: make(map[string][]Touch),
		Counts:  make(map[string]map[string]int),
	}

	for _, commit := range commits {
		for _, change := range commit.Changes {
			idx.Touches[change.Path] = append(idx.Touches[change.Path], Touch{
				Commit:      commit,
				AuthorEmail: commit.AuthorEmail,
			})

			byAuthor := idx.Counts[change.Path]
			if byAuthor == nil {
				byAuthor = make(map[string]int)
				idx.Counts[change.Path] = byAuthor
			}

			byAuthor[commit.AuthorEmail]++
		}
	}

	return idx
}

// Paths returns all indexed paths in ascending order.
func (idx *PathIndex) Paths() []string {
	paths := make([]string, 0, len(idx.Touches))
	for path := range idx.Touches {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths
}

// Authors returns the distinct authors who ever touched the path, in
// ascending order.
func (idx *PathIndex) Authors(path string) []string {
	byAuthor := idx.Counts[path]

	authors := make([]string, 0, len(byAuthor))
	for email := range byAuthor {
		authors = append(authors, email)
	}

	sort.Strings(authors)

	return authors
}
