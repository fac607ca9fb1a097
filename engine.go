// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import (
	"fmt"
	"log"
	"sync"

	"github.com/dalzilio/tbdd/internal/interner"
	"github.com/dalzilio/tbdd/internal/memo"
	"github.com/dalzilio/tbdd/internal/task"
)

// Leaf type codes the core itself assigns meaning to. Callers are free to
// mint their own leaf types for multi-terminal interop; LeafTypeBool (the
// type of False and True) is the one the Boolean operators (And, Or, Ite,
// Not, ...) understand.
const (
	LeafTypeBool uint32 = 0
)

// Engine owns every piece of process-wide state a tagged hybrid decision
// diagram needs: the node interner, the memoization cache, the fork-join
// task pool, the root protection table and the reference-stack registry.
// It corresponds to the teacher's *BDD / *tables pair, generalized from a
// single hash-consed table of (level, low, high) triples to the tagged-edge
// node model.
type Engine struct {
	nodes *interner.Interner
	cache *memo.Cache
	pool  *task.Pool

	domainSize int
	config     *configs

	mu        sync.Mutex // guards protected and err
	protected map[*Edge]struct{}
	err       error

	refmu    sync.Mutex // guards liveRefs; see refstack.go
	liveRefs []*refs    // every refs stack currently in scope, scanned by GC

	gcmu   sync.Mutex
	gcount int

	domChain Edge   // chain of domainSize nodes, one per variable, built at New
	ithvar   []Edge // ithvar[i] == positive literal of variable i
	nithvar  []Edge // nithvar[i] == negative literal of variable i
}

// New creates an Engine over a domain of domainSize variables numbered
// [0, domainSize). Options configure the interner's initial capacity, the
// memoization cache's size, and the width of the task pool; see Option.
func New(domainSize int, opts ...Option) (*Engine, error) {
	if domainSize < 0 || domainSize > int(MaxVariable) {
		return nil, fmt.Errorf("tbdd: bad domain size (%d)", domainSize)
	}
	cfg := makeconfigs(domainSize)
	for _, f := range opts {
		f(cfg)
	}
	cache, err := memo.New(cfg.cacheCounters)
	if err != nil {
		return nil, fmt.Errorf("tbdd: cannot allocate memoization cache: %w", err)
	}
	e := &Engine{
		nodes:      interner.New(cfg.nodeCapacity),
		cache:      cache,
		pool:       task.NewPool(cfg.workers),
		domainSize: domainSize,
		config:     cfg,
		protected:  make(map[*Edge]struct{}, 4096),
		liveRefs:   make([]*refs, 0, cfg.workers*2+4),
		ithvar:     make([]Edge, domainSize),
		nithvar:    make([]Edge, domainSize),
	}
	if _LOGLEVEL > 0 {
		log.Printf("tbdd: new engine, domain size %d\n", domainSize)
	}
	if err := e.buildDomain(); err != nil {
		return nil, err
	}
	return e, nil
}

// buildDomain materializes the domain chain (one node per variable, high
// edge points to the next) together with the positive and negative literal
// for each variable, following the teacher's New: build each ithvar/nithvar
// once, up front, and pin them for the engine's lifetime.
func (e *Engine) buildDomain() error {
	// The domain chain is a plain linked list of marker nodes, one per
	// variable, threaded through the high edge; it is built with internNode
	// directly (not MakeNode) because MakeNode's low==high reduction (rule
	// 1) would collapse every link into the innermost False.
	dom := tagNoneEdge(False)
	for v := e.domainSize - 1; v >= 0; v-- {
		d, err := e.internNode(uint32(v), dom, dom)
		if err != nil {
			return err
		}
		dom = d
	}
	e.domChain = dom
	for v := 0; v < e.domainSize; v++ {
		nv := nextVarAfter(uint32(v), e.domainSize)
		// Positive literal: make_node(v, False, True, nextvar), per
		// spec.md §8 scenario S2.
		pos, err := e.MakeNode(uint32(v), False, True, nv)
		if err != nil {
			return err
		}
		// Negative literal: the Not kernel applied to the positive literal,
		// over the sub-domain starting at v. Not's single recursion step
		// ends in MakeNode(v, True, False, nv), so this is the same edge as
		// make_node(v, True, False, nextvar).
		neg, err := e.Not(pos, domAdvance(e, e.domChain, uint32(v)))
		if err != nil {
			return err
		}
		e.ithvar[v] = pos
		e.nithvar[v] = neg
	}
	return nil
}

// Domain returns the canonical domain edge this engine was built with: a
// chain of domainSize nodes, one per variable, reached by following high
// edges, terminated by False. Kernels that take an explicit dom parameter
// accept any sub-chain of this value.
func (e *Engine) Domain() Edge { return e.domChain }

// DomainSize returns the number of variables in this engine's domain.
func (e *Engine) DomainSize() int { return e.domainSize }

// Close releases the engine's background resources (the memoization
// cache's eviction goroutines). An Engine must not be used after Close.
func (e *Engine) Close() {
	e.cache.Close()
}

// Error returns the engine's sticky error (recorded by seterror), or nil.
// Continuing the teacher's b.error / Errored() idiom (errors.go, bdd.go).
// The operations of this package return their errors directly and do not
// call seterror, so Error reports nil after them.
func (e *Engine) Error() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Engine) seterror(format string, args ...interface{}) error {
	err := fmt.Errorf("tbdd: "+format, args...)
	e.mu.Lock()
	e.err = err
	e.mu.Unlock()
	return err
}

// Stats returns a human-readable summary of the engine's node table and
// cache occupancy, in the spirit of the teacher's (*tables).stats.
func (e *Engine) Stats() string {
	used := e.nodes.Capacity() - e.nodes.FreeCount()
	return fmt.Sprintf(
		"Domain:     %d\nAllocated:  %d\nUsed:       %d\nFree:       %d\nCollections:%d\n",
		e.domainSize, e.nodes.Capacity(), used, e.nodes.FreeCount(), e.gcount,
	)
}

func tagNoneEdge(e Edge) Edge { return e.withTag(tagNone) }
