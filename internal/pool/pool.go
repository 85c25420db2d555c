// Package pool runs a batch of independent tasks across a fixed set of
// goroutines and collects their results in submission order, following
// the batch/channel/WaitGroup pattern matrix-profile-foundation's
// matrixprofile.stomp/stamp use for splitting a large row range across
// workers and merging per-batch results (compute.go).
package pool

import (
	"context"
	"runtime"
	"sync"
)

// Result pairs one task's output with any error it produced.
type Result[T any] struct {
	Value T
	Err   error
}

// Run executes fn(i) for every i in [0, n) across at most Parallelism
// goroutines (defaulting to runtime.NumCPU() when <= 0), returning one
// Result per index in the same order. If ctx is cancelled, tasks not yet
// started are skipped: a task a worker picks up after cancellation gets
// Result.Err = ctx.Err(), and a task never dispatched keeps
// Result.Err = context.Canceled. Tasks already in flight run to
// completion; Run waits for them before returning and keeps their
// results.
func Run[T any](ctx context.Context, n, parallelism int, fn func(ctx context.Context, i int) (T, error)) []Result[T] {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > n {
		parallelism = n
	}
	if n == 0 {
		return nil
	}

	results := make([]Result[T], n)
	for i := range results {
		results[i].Err = context.Canceled
	}
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(parallelism)
	for w := 0; w < parallelism; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					results[i] = Result[T]{Err: ctx.Err()}
					continue
				default:
				}
				v, err := fn(ctx, i)
				results[i] = Result[T]{Value: v, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()
	return results
}
