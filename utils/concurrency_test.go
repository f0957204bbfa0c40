package utils

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSetNoDuplicates(t *testing.T) {
	s := NewSet[string]()

	if !s.Add("room-101") {
		t.Error("first Add should return true")
	}
	if s.Add("room-101") {
		t.Error("second Add of same id should return false")
	}
	if !s.Contains("room-101") {
		t.Error("Contains should report an added id")
	}
	if s.Contains("room-102") {
		t.Error("Contains should not report an id that was never added")
	}
	if s.Len() != 1 {
		t.Errorf("len: got %d, want 1", s.Len())
	}
}

func TestSetConcurrentAdds(t *testing.T) {
	s := NewSet[string]()
	var added int64

	pool := NewWorkerPool(10, 0)
	for i := 0; i < 100; i++ {
		pool.Submit(context.Background(), func(context.Context) error {
			if s.Add("hall-1") {
				atomic.AddInt64(&added, 1)
			}
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if added != 1 {
		t.Errorf("expected exactly 1 successful add, got %d", added)
	}
}

func TestWorkerPoolRateLimit(t *testing.T) {
	rateLimitMs := 100
	pool := NewWorkerPool(3, rateLimitMs)

	var (
		mu     sync.Mutex
		starts []time.Time
	)
	for i := 0; i < 3; i++ {
		pool.Submit(context.Background(), func(context.Context) error {
			mu.Lock()
			starts = append(starts, time.Now())
			mu.Unlock()
			return nil
		})
	}
	_ = pool.Wait()

	if len(starts) != 3 {
		t.Fatalf("expected 3 jobs to run, got %d", len(starts))
	}
	// Starts are spaced even with free workers; allow a little timer slack.
	min := time.Duration(rateLimitMs)*time.Millisecond - 5*time.Millisecond
	first, last := starts[0], starts[0]
	for _, s := range starts[1:] {
		if s.Before(first) {
			first = s
		}
		if s.After(last) {
			last = s
		}
	}
	if span := last.Sub(first); span < 2*min {
		t.Errorf("3 starts spanned %v, want at least %v", span, 2*min)
	}
}

func TestWorkerPoolCollectsErrors(t *testing.T) {
	errRoom := errors.New("room failed")
	errHall := errors.New("hall failed")

	pool := NewWorkerPool(2, 0)
	pool.Submit(context.Background(), func(context.Context) error { return errRoom })
	pool.Submit(context.Background(), func(context.Context) error { return nil })
	pool.Submit(context.Background(), func(context.Context) error { return errHall })

	err := pool.Wait()
	if !errors.Is(err, errRoom) || !errors.Is(err, errHall) {
		t.Fatalf("expected both job errors, got %v", err)
	}
	if err := pool.Wait(); err != nil {
		t.Errorf("errors should be cleared after Wait, got %v", err)
	}
}

func TestWorkerPoolSkipsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewWorkerPool(1, 0)
	var ran int64
	pool.Submit(ctx, func(context.Context) error {
		atomic.AddInt64(&ran, 1)
		return nil
	})

	if err := pool.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if ran != 0 {
		t.Errorf("job ran after cancellation")
	}
}

func TestWorkerPoolClampsWorkers(t *testing.T) {
	pool := NewWorkerPool(0, 0)
	var ran int64
	pool.Submit(context.Background(), func(context.Context) error {
		atomic.AddInt64(&ran, 1)
		return nil
	})
	_ = pool.Wait()
	if ran != 1 {
		t.Errorf("job did not run on a pool created with 0 workers")
	}
}
