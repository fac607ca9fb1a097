// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package task implements the fork-join task runtime external collaborator
// from the engine's §5/§6: spawn/sync/together/wrap over a fixed pool of
// workers.
//
// The teacher package is purely sequential (every kernel recurses on its own
// goroutine, in program order). The pack supplies the idiomatic Go answer
// for fork-join concurrency in golang.org/x/sync: errgroup for join points
// and semaphore for bounding how many branches run at once, used throughout
// the retrieval pack (ethereum-go-ethereum, vechain-thor, gia-lo-sai-terraform
// and others) anywhere a tree of work needs bounded parallel recursion. We
// build Spawn/Sync on top of semaphore.Weighted with lazy task execution:
// if no worker slot is free when a branch is spawned, the branch simply
// runs on the caller at Sync time instead of blocking for a slot, which is
// exactly how a work-stealing scheduler behaves when nobody steals a task
// before its continuation needs the result, and it rules out the pool
// deadlock that a blocking acquire would risk once recursion depth exceeds
// pool width.
package task

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool is a fixed-width fork-join worker pool.
type Pool struct {
	sem   *semaphore.Weighted
	width int64
}

// NewPool returns a Pool that runs at most width branches concurrently, in
// addition to the caller's own goroutine.
func NewPool(width int) *Pool {
	if width < 1 {
		width = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(width)), width: int64(width)}
}

// Width returns the pool's configured concurrency.
func (p *Pool) Width() int { return int(p.width) }

// Handle is a pending or completed spawned task.
type Handle[T any] struct {
	acquired bool
	done     chan struct{}
	result   T
	thunk    func() T
}

// Spawn enqueues fn for concurrent execution and returns immediately with a
// Handle; call Sync on the handle to obtain the result. Between Spawn and
// Sync, the caller must keep any edges it is holding live on its own
// reference stack (see the engine's refs stacks: newRefs, push, pop) so that a concurrent
// collection can still find them.
func Spawn[T any](p *Pool, fn func() T) *Handle[T] {
	h := &Handle[T]{thunk: fn}
	if p.sem.TryAcquire(1) {
		h.acquired = true
		h.done = make(chan struct{})
		go func() {
			defer p.sem.Release(1)
			h.result = fn()
			close(h.done)
		}()
	}
	return h
}

// Sync blocks until the spawned task completes and returns its result. If
// the task never acquired a worker slot, it runs synchronously here instead.
func (h *Handle[T]) Sync() T {
	if h.acquired {
		<-h.done
		return h.result
	}
	return h.thunk()
}

// Together runs fn once per worker slot, concurrently, and waits for every
// invocation to finish. The engine's garbage collector does not use it: its
// mark phase traces roots sequentially on the calling goroutine.
func (p *Pool) Together(fn func(worker int)) {
	var wg sync.WaitGroup
	wg.Add(int(p.width))
	for w := 0; w < int(p.width); w++ {
		w := w
		go func() {
			defer wg.Done()
			fn(w)
		}()
	}
	wg.Wait()
}

// Wrap invokes a user-supplied callback on the current goroutine. Its only
// purpose is to mark, at a call site, a point where control leaves the
// engine's own kernels and re-enters caller code that might itself call
// back into the engine (see spec.md §9's note on re-entrant enumeration
// callbacks). The engine's enumeration functions call their callbacks
// directly, not through Wrap.
func Wrap[T any](fn func() T) T {
	return fn()
}

// Background returns a context suitable for semaphore acquisitions that must
// not be cancelled; the pool never cancels in-flight work.
func Background() context.Context { return context.Background() }
