package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Tree wraps a libgit2 tree.
type Tree struct {
	tree *git2go.Tree
	repo *Repository
}

// Hash returns the tree hash.
func (t *Tree) Hash() Hash {
	return HashFromOid(t.tree.Id())
}

// BlobPaths returns the paths of all blobs in the tree, walking subtrees
// recursively. Paths are slash-separated and relative to the tree root.
func (t *Tree) BlobPaths() ([]string, error) {
	var paths []string

	err := walkTree(t.repo, t.tree, "", func(path string, entry *git2go.TreeEntry) {
		if entry.Type == git2go.ObjectBlob {
			paths = append(paths, path)
		}
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

// Free releases the tree resources.
func (t *Tree) Free() {
	if t.tree != nil {
		t.tree.Free()
		t.tree = nil
	}
}

// walkTree recursively walks a tree and calls the callback for each entry.
func walkTree(repo *Repository, tree *git2go.Tree, prefix string, cb func(path string, entry *git2go.TreeEntry)) error {
	count := tree.EntryCount()

	for i := uint64(0); i < count; i++ {
		entry := tree.EntryByIndex(i)
		if entry == nil {
			continue
		}

		path := entry.Name
		if prefix != "" {
			path = prefix + "/" + entry.Name
		}

		if entry.Type == git2go.ObjectTree {
			subtree, err := repo.repo.LookupTree(entry.Id)
			if err != nil {
				// Skip subtrees we cannot look up.
				continue
			}

			walkErr := walkTree(repo, subtree, path, cb)
			subtree.Free()

			if walkErr != nil {
				return fmt.Errorf("walk subtree %s: %w", path, walkErr)
			}

			continue
		}

		cb(path, entry)
	}

	return nil
}
