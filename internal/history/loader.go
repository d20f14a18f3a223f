package history

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib"
)

// Sentinel errors for the history loader.
var (
	// ErrRepository indicates the reference or object database is unreadable.
	// Fatal: no ledger is produced.
	ErrRepository = errors.New("repository unreadable")
	// ErrTraversal indicates every visited commit failed to load or diff.
	ErrTraversal = errors.New("history traversal produced no commits")
)

// LoadOptions configures the single commit-graph traversal.
type LoadOptions struct {
	// Reference is the starting revision spec. Empty means HEAD.
	Reference string
	// Limit caps the number of commits visited. Zero means no limit.
	Limit int
	// Since excludes commits whose committer time is before this instant.
	// Zero means unbounded.
	Since time.Time
}

// Load performs one traversal of the commit graph and returns the ledger.
// Per-commit failures (unreadable tree, corrupt diff) are recorded as
// warnings and the commit is skipped; the walk only fails when the starting
// reference cannot be resolved or no commit survives.
func Load(repo *gitlib.Repository, opts LoadOptions) (*Ledger, error) {
	start, err := resolveStart(repo, opts.Reference)
	if err != nil {
		return nil, err
	}

	walk, err := repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRepository, err)
	}
	defer walk.Free()

	pushErr := walk.Push(start)
	if pushErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrRepository, pushErr)
	}

	walk.SortDeterministic()

	ledger := &Ledger{}
	attempted := 0

	for {
		if opts.Limit > 0 && len(ledger.Commits) >= opts.Limit {
			break
		}

		hash, nextErr := walk.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}

		if nextErr != nil {
			return nil, fmt.Errorf("%w: %s", ErrRepository, nextErr)
		}

		attempted++

		record, skip, visitErr := visitCommit(repo, hash, opts.Since)
		if visitErr != nil {
			ledger.Warnings = append(ledger.Warnings, visitErr.Error())
			slog.Warn("skipping unreadable commit", "commit", hash.String(), "err", visitErr)

			continue
		}

		if skip {
			continue
		}

		ledger.Commits = append(ledger.Commits, record)
	}

	// A since bound that excludes everything is an empty result, not a
	// failure. Only fail when every visited commit was unreadable.
	if ledger.Empty() && attempted > 0 && len(ledger.Warnings) == attempted {
		return nil, fmt.Errorf("%w: %d commits skipped", ErrTraversal, len(ledger.Warnings))
	}

	return ledger, nil
}

// excludedBySince reports whether a commit falls behind the since bound. The
// comparison uses committer time: author dates survive rebases and
// cherry-picks unchanged, so they say nothing about where a commit sits in
// the history being walked.
func excludedBySince(committedAt, since time.Time) bool {
	return !since.IsZero() && committedAt.Before(since)
}

func resolveStart(repo *gitlib.Repository, reference string) (gitlib.Hash, error) {
	if reference == "" {
		head, err := repo.Head()
		if err != nil {
			return gitlib.Hash{}, fmt.Errorf("%w: %s", ErrRepository, err)
		}

		return head, nil
	}

	hash, err := repo.ResolveReference(reference)
	if err != nil {
		return gitlib.Hash{}, fmt.Errorf("%w: %s", ErrRepository, err)
	}

	return hash, nil
}

// visitCommit loads one commit, diffs it against its first parent and builds
// the ledger record. skip is true when the commit falls behind the since
// bound; the walk continues past it, because rebased or cherry-picked commits
// carry author dates much older than their position in the walk.
func visitCommit(repo *gitlib.Repository, hash gitlib.Hash, since time.Time) (record *Commit, skip bool, err error) {
	commit, err := repo.LookupCommit(hash)
	if err != nil {
		return nil, false, fmt.Errorf("lookup %s: %w", hash, err)
	}
	defer commit.Free()

	author := commit.Author()

	if excludedBySince(commit.Committer().When, since) {
		return nil, true, nil
	}

	changes, err := firstParentChanges(repo, commit)
	if err != nil {
		return nil, false, fmt.Errorf("diff %s: %w", hash, err)
	}

	email := author.Email
	if email == "" {
		email = unknownEmail
	}

	numParents := commit.NumParents()
	parents := make([]gitlib.Hash, numParents)

	for i := range parents {
		parents[i] = commit.ParentHash(i)
	}

	subject := commit.Summary()
	message := commit.Message()

	return &Commit{
		Hash:        hash,
		AuthorName:  author.Name,
		AuthorEmail: email,
		When:        author.When,
		Parents:     parents,
		Subject:     subject,
		Body:        messageBody(message),
		Changes:     changes,
		IsMerge:     numParents >= 2,
		IsRevert:    IsRevertMessage(subject, message),
	}, false, nil
}

// firstParentChanges diffs a commit against its first parent. Root commits
// diff against the empty tree, so every line counts as added.
func firstParentChanges(repo *gitlib.Repository, commit *gitlib.Commit) ([]PathChange, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}
	defer tree.Free()

	var parentTree *gitlib.Tree

	if commit.NumParents() > 0 {
		parent, parentErr := commit.Parent(0)
		if parentErr != nil {
			return nil, parentErr
		}
		defer parent.Free()

		parentTree, err = parent.Tree()
		if err != nil {
			return nil, err
		}
		defer parentTree.Free()
	}

	stats, err := gitlib.DiffTreeStats(repo, parentTree, tree)
	if err != nil {
		return nil, err
	}

	changes := make([]PathChange, 0, len(stats))
	for _, s := range stats {
		changes = append(changes, PathChange{Path: s.Path, Added: s.Added, Deleted: s.Deleted})
	}

	return changes, nil
}
