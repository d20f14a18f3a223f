package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// BlameHunk attributes a run of lines in a file's current content to the
// author of the commit that last modified them.
type BlameHunk struct {
	Lines  int
	Author Signature
}

// BlameFile blames a file at the repository's current HEAD and returns one
// hunk per attribution run. Binary or missing files yield an error.
func (r *Repository) BlameFile(path string) ([]BlameHunk, error) {
	opts, err := git2go.DefaultBlameOptions()
	if err != nil {
		return nil, fmt.Errorf("get blame options: %w", err)
	}

	blame, err := r.repo.BlameFile(path, &opts)
	if err != nil {
		return nil, fmt.Errorf("blame %s: %w", path, err)
	}

	defer func() {
		// Free() errors are non-actionable in cleanup.
		_ = blame.Free()
	}()

	count := blame.HunkCount()
	hunks := make([]BlameHunk, 0, count)

	for i := 0; i < count; i++ {
		hunk, hunkErr := blame.HunkByIndex(i)
		if hunkErr != nil {
			return nil, fmt.Errorf("blame hunk %d of %s: %w", i, path, hunkErr)
		}

		out := BlameHunk{Lines: int(hunk.LinesInHunk)}
		if hunk.FinalSignature != nil {
			out.Author = Signature{
				Name:  hunk.FinalSignature.Name,
				Email: hunk.FinalSignature.Email,
				When:  hunk.FinalSignature.When,
			}
		}

		hunks = append(hunks, out)
	}

	return hunks, nil
}
