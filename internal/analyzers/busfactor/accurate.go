package busfactor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib"
)

// Sentinel errors for accurate-mode blame work.
var (
	// ErrBlame indicates a single file's blame failed; the file is skipped
	// with a warning, never aborting the batch.
	ErrBlame = errors.New("blame failed")
	// ErrWorker indicates a worker could not open its repository handle;
	// scheduling stops and a partial result is returned.
	ErrWorker = errors.New("blame worker failed")
)

// blamer computes per-author owned line counts for one file at HEAD.
type blamer interface {
	Blame(path string) (map[string]int, error)
	Close()
}

// blamerFactory opens one private blamer per worker. Workers never share
// mutable repository-access state.
type blamerFactory func() (blamer, error)

// gitBlamer blames files through its own read-only repository handle.
type gitBlamer struct {
	repo *gitlib.Repository
}

func (b *gitBlamer) Blame(path string) (map[string]int, error) {
	hunks, err := b.repo.BlameFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBlame, err)
	}

	counts := make(map[string]int)

	for _, hunk := range hunks {
		email := hunk.Author.Email
		if email == "" {
			email = "unknown@localhost"
		}

		counts[email] += hunk.Lines
	}

	return counts, nil
}

func (b *gitBlamer) Close() {
	b.repo.Free()
}

// ListTrackedFiles returns the blob paths of the repository's HEAD tree.
func ListTrackedFiles(repo *gitlib.Repository) ([]string, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}

	commit, err := repo.LookupCommit(head)
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}
	defer commit.Free()

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("list tracked files: %w", err)
	}
	defer tree.Free()

	return tree.BlobPaths()
}

// ComputeAccurate recomputes current-HEAD line ownership for the given files
// via parallel per-file blame. Each worker opens its own repository handle at
// repoPath; per-file results funnel over a channel to a single collector, so
// no shared accumulator is touched on the hot path. The files slice should
// already be filtered by the caller (extension allow/deny is a presentation
// concern).
func ComputeAccurate(ctx context.Context, repoPath string, files []string, opts Options) *Result {
	factory := func() (blamer, error) {
		repo, err := gitlib.DiscoverRepository(repoPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrWorker, err)
		}

		return &gitBlamer{repo: repo}, nil
	}

	return computeAccurate(ctx, files, factory, opts)
}

// fileOutcome is one worker's result for one file.
type fileOutcome struct {
	path   string
	counts map[string]int
	err    error
}

func computeAccurate(ctx context.Context, files []string, newBlamer blamerFactory, opts Options) *Result {
	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	outcomes := make(chan fileOutcome)

	// Feeder: stops scheduling as soon as a worker fails irrecoverably.
	go func() {
		defer close(jobs)

		for _, file := range files {
			select {
			case jobs <- file:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup

	for range threads {
		wg.Add(1)

		go func() {
			defer wg.Done()
			runWorker(jobs, outcomes, newBlamer, cancel)
		}()
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	// Single collector: merges completed per-file results without
	// interleaving. Completion order is nondeterministic, so ranking
	// re-sorts afterwards.
	byKey := make(map[string]map[string]int)
	result := &Result{}

	for outcome := range outcomes {
		if outcome.err != nil {
			result.Warnings = append(result.Warnings, outcome.err.Error())

			continue
		}

		mergeCounts(byKey, rollupKey(outcome.path, opts.Depth), outcome.counts)
	}

	result.Rows = rankOwnership(byKey, ModeAccurate, opts)

	return result
}

// runWorker drains the job queue with a private blamer. Per-file blame
// errors become warnings; a failed handle open cancels further scheduling
// after the in-flight queue drains.
func runWorker(jobs <-chan string, outcomes chan<- fileOutcome, newBlamer blamerFactory, cancel context.CancelFunc) {
	blame, err := newBlamer()
	if err != nil {
		cancel()

		outcomes <- fileOutcome{err: err}

		// Drain remaining jobs so the feeder never blocks.
		for range jobs {
		}

		return
	}
	defer blame.Close()

	for path := range jobs {
		counts, blameErr := blame.Blame(path)
		if blameErr != nil {
			outcomes <- fileOutcome{path: path, err: fmt.Errorf("%s: %w", path, blameErr)}

			continue
		}

		outcomes <- fileOutcome{path: path, counts: counts}
	}
}
