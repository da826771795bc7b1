package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of processing one item. Index refers back to the
// input slice, so callers recombine by identity rather than completion order.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// Map runs fn over items with at most workers concurrent executions and
// returns one Result per item, in input order. An item's error is captured
// in its Result and never aborts the siblings.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(ctx context.Context, item T) (R, error)) []Result[R] {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result[R], len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			value, err := fn(ctx, item)
			// Each worker writes only its own slot, so no lock is needed.
			results[i] = Result[R]{Index: i, Value: value, Err: err}
			return nil
		})
	}

	// Workers never return errors to the group; failures live in results.
	_ = g.Wait()

	return results
}
