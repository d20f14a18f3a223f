package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// initialChangeCapacity is the initial capacity for change stat slices.
const initialChangeCapacity = 16

// ChangeStats holds per-path line counts for one commit's diff.
type ChangeStats struct {
	Path    string
	Added   int
	Deleted int
}

// DiffTreeStats diffs two trees and returns added/deleted line counts per
// changed path. oldTree may be nil (root commit, diff against empty tree).
// The path of a delta is the new-side path, falling back to the old side for
// deletions.
func DiffTreeStats(repo *Repository, oldTree, newTree *Tree) ([]ChangeStats, error) {
	if oldTree != nil && newTree != nil && oldTree.Hash() == newTree.Hash() {
		return []ChangeStats{}, nil
	}

	diff, err := repo.diffTreeToTree(oldTree, newTree)
	if err != nil {
		return nil, err
	}

	defer func() {
		// Free() errors are non-actionable in cleanup.
		_ = diff.Free()
	}()

	stats := make([]ChangeStats, 0, initialChangeCapacity)

	var current *ChangeStats

	fileCallback := func(delta git2go.DiffDelta, _ float64) (git2go.DiffForEachHunkCallback, error) {
		path := delta.NewFile.Path
		if path == "" {
			path = delta.OldFile.Path
		}

		stats = append(stats, ChangeStats{Path: path})
		current = &stats[len(stats)-1]

		return func(_ git2go.DiffHunk) (git2go.DiffForEachLineCallback, error) {
			return func(line git2go.DiffLine) error {
				switch line.Origin {
				case git2go.DiffLineAddition:
					current.Added++
				case git2go.DiffLineDeletion:
					current.Deleted++
				default:
				}

				return nil
			}, nil
		}, nil
	}

	err = diff.ForEach(fileCallback, git2go.DiffDetailLines)
	if err != nil {
		return nil, fmt.Errorf("diff foreach: %w", err)
	}

	return stats, nil
}
