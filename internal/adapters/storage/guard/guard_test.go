package guard_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/mkoskela/qualcore/internal/adapters/storage/guard"
	"github.com/mkoskela/qualcore/internal/domain"
	"github.com/mkoskela/qualcore/internal/platform/config"
	"github.com/mkoskela/qualcore/internal/ports"
)

func testGuardConfig() *config.GuardConfig {
	return &config.GuardConfig{
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
	}
}

// flakyCodes fails GetAll with a storage fault until failures runs out, then
// succeeds. Other methods delegate to fixed behavior.
type flakyCodes struct {
	mu       sync.Mutex
	failures int
	calls    int
	err      error
}

func (f *flakyCodes) GetAll(context.Context) ([]domain.Code, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		if f.err != nil {
			return nil, f.err
		}
		return nil, &domain.StorageError{Op: "codes.get_all", Err: errors.New("database is locked")}
	}
	return []domain.Code{{ID: 1, Name: "Theme A", Color: "#ff0000"}}, nil
}

func (f *flakyCodes) GetByID(context.Context, int64) (*domain.Code, error) {
	return nil, domain.ErrNotFound
}

func (f *flakyCodes) Save(context.Context, domain.Code) error { return nil }

func (f *flakyCodes) Delete(context.Context, int64) error { return nil }

func (f *flakyCodes) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestCodes_PassThroughOnSuccess(t *testing.T) {
	t.Parallel()

	inner := &flakyCodes{}
	codes := guard.Codes(guard.New(testGuardConfig(), "memory", nil, nil), inner)

	got, err := codes.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Theme A" {
		t.Errorf("GetAll = %v, want the inner store's codes", got)
	}
	if inner.callCount() != 1 {
		t.Errorf("inner called %d times, want 1", inner.callCount())
	}
}

func TestCodes_RetriesStorageFaults(t *testing.T) {
	t.Parallel()

	inner := &flakyCodes{failures: 2}
	codes := guard.Codes(guard.New(testGuardConfig(), "memory", nil, nil), inner)

	got, err := codes.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll error after retries: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("GetAll = %v, want the recovered result", got)
	}
	if inner.callCount() != 3 {
		t.Errorf("inner called %d times, want 3 (two faults then success)", inner.callCount())
	}
}

func TestCodes_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	inner := &flakyCodes{failures: 10}
	codes := guard.Codes(guard.New(testGuardConfig(), "memory", nil, nil), inner)

	_, err := codes.GetAll(context.Background())
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("err = %v, want a storage fault after exhausting attempts", err)
	}
	if inner.callCount() != 3 {
		t.Errorf("inner called %d times, want max_attempts=3", inner.callCount())
	}
}

func TestCodes_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	inner := &flakyCodes{failures: 10, err: domain.ErrNotFound}
	codes := guard.Codes(guard.New(testGuardConfig(), "memory", nil, nil), inner)

	_, err := codes.GetAll(context.Background())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound passed through", err)
	}
	if inner.callCount() != 1 {
		t.Errorf("inner called %d times, want 1 (answers are not retried)", inner.callCount())
	}
}

func TestCodes_CancelledContextStopsRetrying(t *testing.T) {
	t.Parallel()

	inner := &flakyCodes{failures: 10}
	codes := guard.Codes(guard.New(testGuardConfig(), "memory", nil, nil), inner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := codes.GetAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if inner.callCount() != 1 {
		t.Errorf("inner called %d times, want 1 (no retry after cancellation)", inner.callCount())
	}
}

func TestGuard_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	inner := &flakyCodes{failures: 1000}
	codes := guard.Codes(guard.New(testGuardConfig(), "memory", nil, nil), inner)

	// Each call makes up to 3 attempts; max_failures=3 consecutive faults
	// trip the breaker during the first call.
	_, err := codes.GetAll(context.Background())
	if err == nil {
		t.Fatal("GetAll = nil error, want failure")
	}

	calls := inner.callCount()
	_, err = codes.GetAll(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("err = %v, want ErrOpenState with the breaker tripped", err)
	}
	if inner.callCount() != calls {
		t.Errorf("inner reached %d calls through an open breaker, want %d", inner.callCount(), calls)
	}
}

func TestGuard_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	inner := &flakyCodes{failures: 1000, err: domain.ErrNotFound}
	codes := guard.Codes(guard.New(testGuardConfig(), "memory", nil, nil), inner)

	for range 10 {
		if _, err := codes.GetAll(context.Background()); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound on every call (breaker must stay closed)", err)
		}
	}
	if inner.callCount() != 10 {
		t.Errorf("inner called %d times, want 10", inner.callCount())
	}
}

// staticAlloc returns sequential IDs per call.
type staticAlloc struct {
	next int64
}

func (a *staticAlloc) NextID(context.Context, string) (int64, error) {
	a.next++
	return a.next, nil
}

func TestAllocator_PassThrough(t *testing.T) {
	t.Parallel()

	var alloc ports.IDAllocator = guard.Allocator(guard.New(testGuardConfig(), "memory", nil, nil), &staticAlloc{})

	id, err := alloc.NextID(context.Background(), "code")
	if err != nil {
		t.Fatalf("NextID error: %v", err)
	}
	if id != 1 {
		t.Errorf("NextID = %d, want 1", id)
	}
}
