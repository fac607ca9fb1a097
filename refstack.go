// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "sync"

// Go has no per-goroutine storage the runtime exposes to a library, so the
// "per-thread reference stack" of spec.md §5/§9 is adapted here as an
// explicit value threaded through the recursive kernels rather than true
// thread-local state: every exported operation starts a fresh stack, and
// every task spawned through internal/task carries its own. Each stack is
// only ever pushed/popped by the goroutine that owns it — that part is
// exactly like TLS — but spec.md also requires the GC's mark phase to be
// able to see every such stack that is currently in scope (its "per-worker
// vector... the GC's per-worker mark phase iterates it"). Since Go has no
// registry of goroutine-local values for GC to walk either, newRefs/dropRefs
// below register/deregister each stack with the owning Engine, and
// Engine.activeRefs (gc.go) walks that registry during a collection; a GC
// can therefore run concurrently with the goroutine that owns a given
// stack, which is why push/pop/edges take a mutex.
//
// Protected root pointers (long-lived edges the caller keeps past a single
// operation, e.g. fields of a Set) still need the process-wide registry
// spec.md describes; that part is global because its lifetime is the
// caller's, not a single call stack. See Protect/Unprotect below.

// refs is a per-call reference stack, continuing the teacher's
// pushref/popref/initref idiom (bdd.go, gc.go) generalized from a single
// shared b.refstack to a value the caller owns for the duration of one
// operation (or one spawned sub-task). Unlike the teacher's single
// goroutine, a GC here can run concurrently with the goroutine that owns
// this stack (triggered by an unrelated allocation elsewhere), so push/pop
// guard the slice with a mutex purely for that cross-goroutine visibility,
// not because the owning goroutine itself needs to synchronize with
// itself.
type refs struct {
	mu    sync.Mutex
	stack []Edge
}

// newRefs allocates a reference stack and registers it with the engine's
// live-refs table so GC's mark phase can trace it; the caller must release
// it with dropRefs (typically via defer) once the operation it guards
// returns, per spec.md §9's "between spawn and sync" reference-safety
// property.
func (e *Engine) newRefs(capacity int) *refs {
	r := &refs{stack: make([]Edge, 0, capacity)}
	e.refmu.Lock()
	e.liveRefs = append(e.liveRefs, r)
	e.refmu.Unlock()
	return r
}

// dropRefs deregisters r from the engine's live-refs table. After this
// call a concurrent GC can no longer see r's edges, so it must only be
// called once the caller no longer needs any edge r alone was protecting.
func (e *Engine) dropRefs(r *refs) {
	e.refmu.Lock()
	for i, v := range e.liveRefs {
		if v == r {
			e.liveRefs = append(e.liveRefs[:i], e.liveRefs[i+1:]...)
			break
		}
	}
	e.refmu.Unlock()
}

// push keeps e alive across a recursive call or a spawn/sync window.
func (r *refs) push(e Edge) Edge {
	r.mu.Lock()
	r.stack = append(r.stack, e)
	r.mu.Unlock()
	return e
}

// pop discards the last n pushed edges; they are no longer protected by
// this stack (they may still be reachable some other way).
func (r *refs) pop(n int) {
	r.mu.Lock()
	r.stack = r.stack[:len(r.stack)-n]
	r.mu.Unlock()
}

// edges returns a snapshot of the live edges on this stack, for the GC
// mark phase (Engine.activeRefs).
func (r *refs) edges() []Edge {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Edge, len(r.stack))
	copy(out, r.stack)
	return out
}

// Protect registers ptr with the engine's root protection table: the
// pointed-to edge is treated as a GC root until Unprotect is called. Use it
// for long-lived edges held outside any single operation call (fields on a
// caller's struct, package-level variables), where a per-call refs stack
// would go out of scope too soon.
func (e *Engine) Protect(ptr *Edge) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.protected[ptr] = struct{}{}
}

// Unprotect removes ptr from the root protection table.
func (e *Engine) Unprotect(ptr *Edge) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.protected, ptr)
}

// ProtectedCount returns the number of currently protected pointers.
func (e *Engine) ProtectedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.protected)
}

func (e *Engine) protectedRoots() []Edge {
	e.mu.Lock()
	defer e.mu.Unlock()
	roots := make([]Edge, 0, len(e.protected))
	for ptr := range e.protected {
		roots = append(roots, *ptr)
	}
	return roots
}
