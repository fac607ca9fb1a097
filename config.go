// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "runtime"

// configs stores the values of the different tunable parameters of an
// Engine, set through functional options passed to New.
type configs struct {
	domainSize  int // number of distinct variables the domain edge will name
	nodeCapacity uint64
	cacheCounters int64
	workers      int
	minfreenodes int // % of free slots that must remain after a collection
}

func makeconfigs(domainSize int) *configs {
	c := &configs{domainSize: domainSize}
	c.nodeCapacity = uint64(2*domainSize + 1024)
	c.cacheCounters = 100000
	c.workers = runtime.GOMAXPROCS(0)
	c.minfreenodes = _MINFREENODES
	return c
}

// Option configures an Engine created with New.
type Option func(*configs)

// WithNodeCapacity sets the initial number of slots in the node interner. The
// engine grows the table when collections leave too few free slots, but a
// well-chosen capacity avoids early resizes.
func WithNodeCapacity(capacity uint64) Option {
	return func(c *configs) {
		if capacity >= uint64(2*c.domainSize+2) {
			c.nodeCapacity = capacity
		}
	}
}

// WithCacheCounters sets the approximate number of (operation, edges) entries
// the memoization cache holds: n becomes github.com/dgraph-io/ristretto/v2's
// MaxCost (each entry costs 1), and its NumCounters admission-tracking knob
// is set to 10*n.
func WithCacheCounters(n int64) Option {
	return func(c *configs) {
		if n > 0 {
			c.cacheCounters = n
		}
	}
}

// WithWorkers sets the width of the fork-join task pool used by the
// recursive kernels. The default is runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *configs) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithMinFreeNodes sets the percentage of free interner slots that must
// remain after a collection before the engine grows the node table. The
// default is 20.
func WithMinFreeNodes(pct int) Option {
	return func(c *configs) {
		if pct > 0 && pct < 100 {
			c.minfreenodes = pct
		}
	}
}
