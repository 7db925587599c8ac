package fanout_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mkoskela/qualcore/internal/app/fanout"
)

func TestRun_ResultsInInputOrder(t *testing.T) {
	t.Parallel()

	items := []int{10, 20, 30, 40, 50}

	results := fanout.Run(context.Background(), 3, items,
		func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})

	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d", len(results), len(items))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d Err = %v, want nil", i, r.Err)
		}
		if r.Value != items[i]*2 {
			t.Errorf("result %d = %d, want %d (input order)", i, r.Value, items[i]*2)
		}
	}
}

func TestRun_PerItemErrors(t *testing.T) {
	t.Parallel()

	failOn := errors.New("item rejected")

	results := fanout.Run(context.Background(), 2, []int{1, 2, 3},
		func(_ context.Context, n int) (string, error) {
			if n == 2 {
				return "", failOn
			}
			return fmt.Sprintf("ok-%d", n), nil
		})

	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("healthy items errored: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, failOn) {
		t.Errorf("result 1 Err = %v, want %v", results[1].Err, failOn)
	}
	if results[0].Value != "ok-1" || results[2].Value != "ok-3" {
		t.Errorf("healthy values = %q, %q, want ok-1, ok-3", results[0].Value, results[2].Value)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()

	results := fanout.Run(context.Background(), 4, nil,
		func(context.Context, int) (int, error) { return 0, nil })

	if results == nil {
		t.Fatal("got nil, want empty non-nil slice")
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestRun_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	const maxWorkers = 3

	var current, peak atomic.Int64
	gate := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fanout.Run(context.Background(), maxWorkers, make([]int, 20),
			func(context.Context, int) (int, error) {
				n := current.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				<-gate
				current.Add(-1)
				return 0, nil
			})
	}()

	close(gate)
	wg.Wait()

	if got := peak.Load(); got > maxWorkers {
		t.Errorf("peak concurrency = %d, want at most %d", got, maxWorkers)
	}
}

func TestRun_InvalidWorkerCountFallsBackToOne(t *testing.T) {
	t.Parallel()

	var current, peak atomic.Int64

	fanout.Run(context.Background(), 0, make([]int, 10),
		func(context.Context, int) (int, error) {
			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			current.Add(-1)
			return 0, nil
		})

	if got := peak.Load(); got > 1 {
		t.Errorf("peak concurrency = %d, want 1 for maxWorkers=0", got)
	}
}

func TestRun_CancelledContextShortCircuitsQueuedItems(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := atomic.Int64{}
	results := fanout.Run(ctx, 1, make([]int, 10),
		func(context.Context, int) (int, error) {
			calls.Add(1)
			return 0, nil
		})

	cancelled := 0
	for _, r := range results {
		if errors.Is(r.Err, context.Canceled) {
			cancelled++
		}
	}
	// With the context already cancelled, each goroutine either wins the
	// worker slot or observes cancellation; every item still gets a result.
	if int(calls.Load())+cancelled != 10 {
		t.Errorf("calls (%d) + cancelled (%d) = %d, want 10", calls.Load(), cancelled, int(calls.Load())+cancelled)
	}
	if len(results) != 10 {
		t.Errorf("got %d results, want 10", len(results))
	}
}
