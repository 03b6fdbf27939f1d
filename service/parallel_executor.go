package service

import (
	"context"
	"sync"

	"github.com/cloneradar/cloneradar/domain"
)

// ParallelExtractor runs CloneService's per-file extraction step across a
// bounded pool of goroutines instead of one file at a time, so a large path
// set isn't gated on a single CPU core's parse+canonicalize throughput.
type ParallelExtractor struct {
	maxConcurrency int
}

// NewParallelExtractor creates an extractor bounded to maxConcurrency
// in-flight files. maxConcurrency <= 0 falls back to domain.DefaultMaxGoroutines.
func NewParallelExtractor(maxConcurrency int) *ParallelExtractor {
	if maxConcurrency <= 0 {
		maxConcurrency = domain.DefaultMaxGoroutines
	}
	return &ParallelExtractor{maxConcurrency: maxConcurrency}
}

// FileResult is one path's outcome: either fragments, or an error that the
// caller should treat as a per-file skip (spec.md §4.1).
type FileResult struct {
	Path      string
	Fragments []*domain.Fragment
	Err       error
}

// Run calls extract(path) for every entry in paths, bounded to at most
// maxConcurrency concurrent calls, and returns one FileResult per path in
// paths' original order. It returns early with ctx.Err() if ctx is
// cancelled before every file has been dispatched; files already in flight
// still finish and are included in the result.
func (p *ParallelExtractor) Run(ctx context.Context, paths []string, extract func(ctx context.Context, path string) ([]*domain.Fragment, error)) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	sem := make(chan struct{}, p.maxConcurrency)
	var wg sync.WaitGroup

	for i, path := range paths {
		select {
		case <-ctx.Done():
			wg.Wait()
			return results, ctx.Err()
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			fragments, err := extract(ctx, path)
			results[i] = FileResult{Path: path, Fragments: fragments, Err: err}
		}(i, path)
	}

	wg.Wait()
	return results, nil
}
