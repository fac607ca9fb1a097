// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "log"

// gcstat records the history of collections for an Engine, in the spirit of
// the teacher's gcstat/gcpoint (gc.go).
type gcstat struct {
	nodes, free int
}

// collectAndRetry runs a forced collection and retries fn once. It is the
// engine's answer to spec.md §4.1's "if the interner is full after a
// collection, report fatal unique table exhausted": every call site that
// allocates a node goes through it instead of failing on the first
// lookup_or_insert miss.
func (e *Engine) collectAndRetry(fn func() (uint64, bool, error)) (uint64, bool, error) {
	e.GC()
	idx, created, err := fn()
	if err != nil {
		used := e.nodes.Capacity() - e.nodes.FreeCount()
		return 0, false, &ErrTableExhausted{Used: used, Capacity: e.nodes.Capacity()}
	}
	return idx, created, nil
}

// GC forces a mark-and-sweep collection: every root (protected pointers,
// every live reference stack, the engine's own pinned literals and domain
// chain) is marked, the interner rehashes and discards the rest, and the
// memoization cache is invalidated since its keys refer to node indices
// that may have just moved or vanished. Mirrors the teacher's gbc (gc.go),
// generalized to the interner/task-pool external collaborators of §5/§6.
func (e *Engine) GC() {
	e.gcmu.Lock()
	defer e.gcmu.Unlock()

	if _LOGLEVEL > 0 {
		log.Println("tbdd: starting GC")
	}

	e.markRoot(e.domChain)
	for _, v := range e.ithvar {
		e.markRoot(v)
	}
	for _, v := range e.nithvar {
		e.markRoot(v)
	}
	for _, r := range e.protectedRoots() {
		e.markRoot(r)
	}
	e.activeRefs(func(edges []Edge) {
		for _, r := range edges {
			e.markRoot(r)
		}
	})

	e.nodes.RehashAll()
	e.cache.Reset()
	e.gcount++
	e.growIfNeeded()

	if _LOGLEVEL > 0 {
		log.Printf("tbdd: end GC; free %d/%d\n", e.nodes.FreeCount(), e.nodes.Capacity())
	}
}

// growIfNeeded enlarges the node interner when a collection leaves fewer
// free slots than config.minfreenodes (WithMinFreeNodes) of capacity, per
// spec.md §9's discussion of a fixed-capacity table: rather than fail the
// next allocation outright, grow once by _DEFAULTMAXNODEINC and let
// collectAndRetry's caller proceed.
func (e *Engine) growIfNeeded() {
	capacity := e.nodes.Capacity()
	if capacity == 0 {
		return
	}
	free := e.nodes.FreeCount()
	if free*100 >= capacity*uint64(e.config.minfreenodes) {
		return
	}
	e.nodes.Grow(capacity + _DEFAULTMAXNODEINC)
	if _LOGLEVEL > 0 {
		log.Printf("tbdd: grew node table to %d\n", e.nodes.Capacity())
	}
}

// markRoot traces edge through the interner's mark primitive, recursing
// into the children of marked internal nodes. Per spec.md §5's GC
// protocol, this recursion would itself run on the fork-join runtime in a
// systems-language implementation with a true stop-the-world mark phase;
// here, since Go's garbage collector already protects objects the process
// can still reach, this trace exists to drive interner.Mark/RehashAll
// bookkeeping (so that the interner's own free-list reclaims genuinely
// unreachable node slots) rather than to keep Go's GC from collecting a
// live Go value out from under us.
func (e *Engine) markRoot(edge Edge) {
	if edge.IsConstant() || !edge.IsValid() {
		return
	}
	idx := edge.Index()
	if !e.nodes.Mark(idx) {
		return
	}
	r := e.nodes.Get(idx)
	if r.IsLeaf {
		return
	}
	e.markRoot(Edge(r.Low))
	e.markRoot(Edge(r.High))
}

// activeRefs walks every reference stack currently registered by a live
// call to a recursive kernel (see refstack.go's newRefs/dropRefs) and hands
// each one's snapshot to fn, implementing spec.md §5's "every worker's
// reference stack" mark-phase step: an edge held only by a caller's *refs
// between a spawn and its matching sync must survive a collection that
// interleaves with it.
func (e *Engine) activeRefs(fn func([]Edge)) {
	e.refmu.Lock()
	live := make([]*refs, len(e.liveRefs))
	copy(live, e.liveRefs)
	e.refmu.Unlock()
	for _, r := range live {
		fn(r.edges())
	}
}
