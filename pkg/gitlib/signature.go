package gitlib

import "time"

// Signature represents a git signature (author/committer). When carries the
// UTC offset recorded in the commit, not the local zone of the process.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}
