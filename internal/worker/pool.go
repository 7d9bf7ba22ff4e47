// Package worker provides a bounded fan-out helper for per-ticker work.
package worker

import (
	"context"
	"sync"
)

// Result is the outcome of one key's work.
type Result[T any] struct {
	Value T
	Err   error
}

// Map runs fn for every key with at most workers goroutines in flight and
// returns results keyed by input. Keys are independent; no ordering is
// promised between them. Duplicate keys are computed once. A canceled
// context stops dispatching and marks the remaining keys with ctx.Err().
func Map[T any](ctx context.Context, workers int, keys []string, fn func(context.Context, string) (T, error)) map[string]Result[T] {
	if workers <= 0 {
		workers = 1
	}

	unique := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]Result[T], len(unique))
	)

	jobs := make(chan string)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				value, err := fn(ctx, key)
				mu.Lock()
				out[key] = Result[T]{Value: value, Err: err}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for i, key := range unique {
		select {
		case jobs <- key:
		case <-ctx.Done():
			mu.Lock()
			for _, skipped := range unique[i:] {
				out[skipped] = Result[T]{Err: ctx.Err()}
			}
			mu.Unlock()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	return out
}
