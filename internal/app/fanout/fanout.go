// Package fanout provides a bounded-concurrency fan-out helper for
// application-layer bulk operations. It runs a function across a slice of
// items on a fixed number of worker goroutines and returns per-item results
// in input order, which gives bulk commands their partial-success semantics.
package fanout

import (
	"context"
	"sync"
)

// Result holds the outcome of processing a single item: Value on success,
// Err on failure.
type Result[R any] struct {
	Value R
	Err   error
}

// Run executes fn for each item using at most maxWorkers concurrent
// goroutines (values below 1 are treated as 1). Results land at the same
// index as their input item.
//
// A goroutine still waiting for a worker slot when ctx is canceled records
// ctx.Err() without calling fn; goroutines already running complete normally
// (fn checks ctx itself if it supports cancellation). Run blocks until all
// goroutines finish and returns an empty non-nil slice for empty input.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	results := make([]Result[R], len(items))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = Result[R]{Err: ctx.Err()}
				return
			}

			val, err := fn(ctx, it)
			results[idx] = Result[R]{Value: val, Err: err}
		}(i, item)
	}

	wg.Wait()
	return results
}
