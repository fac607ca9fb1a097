// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package memo implements the memoization cache external collaborator from
// the engine's §6: a lossy table keyed on (operation-id, up to three edges)
// mapping to one or two result words.
//
// The teacher package hand-rolls this as data4ncache/data3ncache, a fixed
// slice of slots probed by a custom pairing hash with silent overwrite on
// collision. We keep the same contract (get/put, get6/put6, purely
// advisory, races overwrite but never corrupt) but back it with
// github.com/dgraph-io/ristretto/v2, the concurrent admission-aware cache
// pulled in by the pack's straga-Mimir_lite graph database for exactly this
// "fixed capacity, lossy, correctness-preserving" role.
package memo

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
)

type slot struct {
	op, a, b, c uint64
	r0, r1      uint64
	wide        bool
}

// Cache is the engine's memoization cache.
type Cache struct {
	rc *ristretto.Cache[uint64, slot]
}

// New returns a Cache sized for roughly numCounters distinct recent keys.
func New(numCounters int64) (*Cache, error) {
	if numCounters <= 0 {
		numCounters = 1e6
	}
	rc, err := ristretto.NewCache(&ristretto.Config[uint64, slot]{
		NumCounters: numCounters * 10,
		MaxCost:     numCounters,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{rc: rc}, nil
}

// Close releases the cache's background resources.
func (c *Cache) Close() {
	c.rc.Close()
}

// Reset discards every cached entry, used after a collection invalidates the
// node indices the cache's keys refer to.
func (c *Cache) Reset() {
	c.rc.Clear()
}

func key(op, a, b, c uint64) uint64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:8], op)
	binary.LittleEndian.PutUint64(buf[8:16], a)
	binary.LittleEndian.PutUint64(buf[16:24], b)
	binary.LittleEndian.PutUint64(buf[24:32], c)
	return xxhash.Sum64(buf[:])
}

// Get looks up a single-word result for (op, a, b, c). A digest collision
// against a different operand tuple is treated as a miss, never a wrong hit.
func (c *Cache) Get(op, a, b, c uint64) (uint64, bool) {
	s, ok := c.rc.Get(key(op, a, b, c))
	if !ok || s.op != op || s.a != a || s.b != b || s.c != c || s.wide {
		return 0, false
	}
	return s.r0, true
}

// Put records a single-word result for (op, a, b, c).
func (c *Cache) Put(op, a, b, c, res uint64) {
	c.rc.Set(key(op, a, b, c), slot{op: op, a: a, b: b, c: c, r0: res}, 1)
}

// Get6 looks up a two-word result for (op, a, b, c).
func (c *Cache) Get6(op, a, b, c uint64) (uint64, uint64, bool) {
	s, ok := c.rc.Get(key(op, a, b, c))
	if !ok || !s.wide || s.op != op || s.a != a || s.b != b || s.c != c {
		return 0, 0, false
	}
	return s.r0, s.r1, true
}

// Put6 records a two-word result for (op, a, b, c).
func (c *Cache) Put6(op, a, b, c, r0, r1 uint64) {
	c.rc.Set(key(op, a, b, c), slot{op: op, a: a, b: b, c: c, r0: r0, r1: r1, wide: true}, 1)
}
