package pool

import (
	"context"
	"errors"
	"testing"
)

func TestRun_PreservesOrderAcrossWorkers(t *testing.T) {
	n := 50
	results := Run(context.Background(), n, 4, func(_ context.Context, i int) (int, error) {
		return i * i, nil
	})
	if len(results) != n {
		t.Fatalf("got %d results, want %d", len(results), n)
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("results[%d].Err = %v", i, r.Err)
		}
		if r.Value != i*i {
			t.Errorf("results[%d].Value = %d, want %d", i, r.Value, i*i)
		}
	}
}

func TestRun_PropagatesPerTaskErrors(t *testing.T) {
	boom := errors.New("boom")
	results := Run(context.Background(), 3, 2, func(_ context.Context, i int) (int, error) {
		if i == 1 {
			return 0, boom
		}
		return i, nil
	})
	if !errors.Is(results[1].Err, boom) {
		t.Errorf("results[1].Err = %v, want %v", results[1].Err, boom)
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("expected the other tasks to succeed")
	}
}

func TestRun_DefaultParallelismWithNoTasksReturnsEmpty(t *testing.T) {
	results := Run(context.Background(), 0, 0, func(_ context.Context, i int) (int, error) {
		return i, nil
	})
	if len(results) != 0 {
		t.Errorf("got %d results for n=0, want 0", len(results))
	}
}

func TestRun_CancelledContextSkipsUndispatchedTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := Run(ctx, 10, 2, func(_ context.Context, i int) (int, error) {
		return i, nil
	})
	for i, r := range results {
		if r.Err == nil {
			t.Errorf("results[%d].Err = nil, want a cancellation error after ctx was cancelled before Run", i)
		}
	}
}
