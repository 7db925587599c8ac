package uiloop_test

import (
	"sync"
	"testing"
	"time"

	"github.com/mkoskela/qualcore/internal/adapters/uiloop"
)

func TestRunOnUI_ExecutesSubmittedClosure(t *testing.T) {
	t.Parallel()

	loop := uiloop.New()
	loop.Start()
	defer loop.Stop()

	done := make(chan struct{})
	loop.RunOnUI(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("closure never ran")
	}
}

func TestRunOnUI_SubmissionOrder(t *testing.T) {
	t.Parallel()

	loop := uiloop.New()
	loop.Start()

	const n = 100
	var got []int
	for i := range n {
		loop.RunOnUI(func() { got = append(got, i) })
	}
	loop.Stop()

	if len(got) != n {
		t.Fatalf("ran %d closures, want %d", len(got), n)
	}
	for i := range n {
		if got[i] != i {
			t.Fatalf("closure %d ran at position %d", got[i], i)
		}
	}
}

func TestOnUIThread(t *testing.T) {
	t.Parallel()

	loop := uiloop.New()
	loop.Start()

	if loop.OnUIThread() {
		t.Error("OnUIThread() = true off the loop goroutine, want false")
	}

	onLoop := make(chan bool, 1)
	loop.RunOnUI(func() { onLoop <- loop.OnUIThread() })

	select {
	case got := <-onLoop:
		if !got {
			t.Error("OnUIThread() = false inside the loop goroutine, want true")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("closure never ran")
	}

	loop.Stop()
}

func TestRunOnUI_FromLoopGoroutineRunsSynchronously(t *testing.T) {
	t.Parallel()

	loop := uiloop.New()
	loop.Start()
	defer loop.Stop()

	result := make(chan bool, 1)
	loop.RunOnUI(func() {
		ran := false
		// A nested submission from the loop goroutine must not deadlock.
		loop.RunOnUI(func() { ran = true })
		result <- ran
	})

	select {
	case ran := <-result:
		if !ran {
			t.Error("nested RunOnUI did not execute synchronously on the loop goroutine")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("nested submission deadlocked")
	}
}

func TestStop_DrainsPendingQueue(t *testing.T) {
	t.Parallel()

	loop := uiloop.New()
	loop.Start()

	var mu sync.Mutex
	ran := 0
	const n = 50
	for range n {
		loop.RunOnUI(func() {
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}
	loop.Stop()

	if ran != n {
		t.Errorf("Stop drained %d closures, want %d", ran, n)
	}
}

func TestRunOnUI_AfterStopIsDropped(t *testing.T) {
	t.Parallel()

	loop := uiloop.New()
	loop.Start()
	loop.Stop()

	// Must not panic or block.
	loop.RunOnUI(func() { t.Error("closure ran after Stop") })
}

func TestStop_Idempotent(t *testing.T) {
	t.Parallel()

	loop := uiloop.New()
	loop.Start()
	loop.Stop()
	loop.Stop()
}

func TestRunOnUI_ConcurrentProducers(t *testing.T) {
	t.Parallel()

	loop := uiloop.New()
	loop.Start()

	const producers = 8
	const perProducer = 100

	counts := make(map[int]int)
	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				loop.RunOnUI(func() { counts[p]++ })
			}
		}()
	}
	wg.Wait()
	loop.Stop()

	for p := range producers {
		if counts[p] != perProducer {
			t.Errorf("producer %d: %d closures ran, want %d", p, counts[p], perProducer)
		}
	}
}
