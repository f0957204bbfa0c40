package utils

import (
	"context"
	"errors"
	"sync"
	"time"
)

// WorkerPool runs jobs on a bounded number of goroutines. Job starts are
// spaced by at least the rate limit so a sync does not flood the hotel API.
// Job errors are collected and returned together by Wait.
type WorkerPool struct {
	slots    chan struct{}
	interval time.Duration
	wg       sync.WaitGroup

	mu        sync.Mutex
	nextStart time.Time
	errs      []error
}

// NewWorkerPool creates a WorkerPool. maxWorkers below 1 is treated as 1.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		slots:    make(chan struct{}, maxWorkers),
		interval: time.Duration(rateLimitMs) * time.Millisecond,
	}
}

// Submit blocks until a worker is free, then runs job on it. Once ctx is
// done, remaining jobs are not started and ctx.Err() is recorded instead.
func (wp *WorkerPool) Submit(ctx context.Context, job func(context.Context) error) {
	wp.wg.Add(1)
	select {
	case wp.slots <- struct{}{}:
	case <-ctx.Done():
		wp.record(ctx.Err())
		wp.wg.Done()
		return
	}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.slots }()

		if err := wp.waitTurn(ctx); err != nil {
			wp.record(err)
			return
		}
		wp.record(job(ctx))
	}()
}

// Wait blocks until every submitted job has finished and returns their
// joined errors, or nil.
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()

	wp.mu.Lock()
	defer wp.mu.Unlock()
	err := errors.Join(wp.errs...)
	wp.errs = nil
	return err
}

func (wp *WorkerPool) record(err error) {
	if err == nil {
		return
	}
	wp.mu.Lock()
	wp.errs = append(wp.errs, err)
	wp.mu.Unlock()
}

// waitTurn reserves the next start slot and sleeps until it comes up.
func (wp *WorkerPool) waitTurn(ctx context.Context) error {
	wp.mu.Lock()
	now := time.Now()
	start := wp.nextStart
	if start.Before(now) {
		start = now
	}
	wp.nextStart = start.Add(wp.interval)
	wp.mu.Unlock()

	delay := time.Until(start)
	if delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Set is a set of comparable keys, safe for concurrent use.
type Set[T comparable] struct {
	mu   sync.RWMutex
	seen map[T]struct{}
}

// NewSet creates an empty Set.
func NewSet[T comparable]() *Set[T] {
	return &Set[T]{seen: make(map[T]struct{})}
}

// Add returns true if v was newly added, false if already present.
func (s *Set[T]) Add(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[v]; exists {
		return false
	}
	s.seen[v] = struct{}{}
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[v]
	return exists
}

// Len returns the number of distinct values added.
func (s *Set[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
