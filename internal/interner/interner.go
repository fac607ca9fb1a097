// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package interner implements the node interner external collaborator from
// the engine's §6: a concurrent, fixed-capacity hash set of packed node
// records, with lookup_or_insert/mark/is_marked/rehash_all/count_marked.
//
// We shard the unique table the way the teacher package's "hudd" tables
// shard their own runtime hashmap behind a sync.RWMutex, but split the table
// into a fixed number of independently-locked shards so that lookups against
// unrelated hash buckets can proceed concurrently, and key every shard with
// github.com/cespare/xxhash/v2 instead of hand rolled pairing functions.
package interner

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Rec is the two-word node record. Branch records describe a decision on
// Variable with two child edges (caller-defined 61-bit values); leaf records
// carry an opaque 32-bit type and 64-bit value. We trade the bit-exact packed
// layout used for MTBDD interoperability (out of scope here, see spec.md §1)
// for a small struct that is easier to keep correct.
type Rec struct {
	IsLeaf    bool
	Variable  uint32
	Low, High uint64 // child edges, caller-defined encoding
	LeafType  uint32
	LeafValue uint64
}

func (r Rec) hash() uint64 {
	var buf [32]byte
	if r.IsLeaf {
		binary.LittleEndian.PutUint32(buf[0:4], r.LeafType)
		binary.LittleEndian.PutUint64(buf[4:12], r.LeafValue)
		buf[12] = 1
		return xxhash.Sum64(buf[:13])
	}
	binary.LittleEndian.PutUint32(buf[0:4], r.Variable)
	binary.LittleEndian.PutUint64(buf[4:12], r.Low)
	binary.LittleEndian.PutUint64(buf[12:20], r.High)
	return xxhash.Sum64(buf[:20])
}

// entry is a stored slot: either live (Low/High/Variable meaningful) or free,
// in which case rec.Low points to the next free slot (0 if none, like the
// teacher's freepos chains).
type entry struct {
	rec  Rec
	mark uint32 // atomic
}

const shardCount = 64

type shard struct {
	mu    sync.RWMutex
	index map[uint64]uint64 // hash -> interner index, within this shard's bucket
}

// Interner is the fixed-capacity, concurrent node table.
type Interner struct {
	shards [shardCount]shard

	mu       sync.Mutex // guards entries/freepos/freenum below
	entries  []entry
	occupied []bool
	freepos  uint64
	freenum  uint64
	capacity uint64
}

// New returns an Interner with room for capacity records (rounded up to
// accommodate the reserved indices 0 and 1).
func New(capacity uint64) *Interner {
	if capacity < 4 {
		capacity = 4
	}
	in := &Interner{
		entries:  make([]entry, capacity),
		occupied: make([]bool, capacity),
		capacity: capacity,
	}
	for i := range in.shards {
		in.shards[i].index = make(map[uint64]uint64)
	}
	// index 0 and 1 are reserved by the caller for the False/True leaves;
	// we still materialize them here so Mark/IsMarked/RehashAll see them.
	in.entries[0] = entry{rec: Rec{IsLeaf: true, LeafType: 0, LeafValue: 0}}
	in.entries[1] = entry{rec: Rec{IsLeaf: true, LeafType: 0, LeafValue: 1}}
	in.occupied[0] = true
	in.occupied[1] = true
	in.freepos = 2
	for i := uint64(2); i < capacity; i++ {
		in.entries[i].rec.Low = i + 1
	}
	in.entries[capacity-1].rec.Low = 0
	if capacity > 2 {
		in.freenum = capacity - 2
	}
	return in
}

// Capacity returns the total number of slots in the table.
func (in *Interner) Capacity() uint64 {
	return in.capacity
}

// Get returns the record stored at idx.
func (in *Interner) Get(idx uint64) Rec {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.entries[idx].rec
}

// ErrFull is returned by LookupOrInsert when no free slot remains.
var ErrFull = fmt.Errorf("interner: unique table exhausted")

// LookupOrInsert returns the canonical index for rec, creating a new entry if
// none exists yet. It returns ErrFull if the table has no free slots; the
// caller is expected to run a collection and retry.
func (in *Interner) LookupOrInsert(rec Rec) (idx uint64, created bool, err error) {
	h := rec.hash()
	sh := &in.shards[h%shardCount]

	sh.mu.RLock()
	if i, ok := sh.index[h]; ok {
		got := in.Get(i)
		if got == rec {
			sh.mu.RUnlock()
			return i, false, nil
		}
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if i, ok := sh.index[h]; ok {
		if in.Get(i) == rec {
			return i, false, nil
		}
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.freepos == 0 {
		return 0, false, ErrFull
	}
	i := in.freepos
	in.freepos = in.entries[i].rec.Low
	in.freenum--
	in.entries[i] = entry{rec: rec}
	in.occupied[i] = true
	sh.index[h] = i
	return i, true, nil
}

// Mark marks the slot at idx as reachable, returning true if it was
// previously unmarked.
func (in *Interner) Mark(idx uint64) bool {
	return atomic.CompareAndSwapUint32(&in.entries[idx].mark, 0, 1)
}

// IsMarked reports whether the slot at idx is currently marked.
func (in *Interner) IsMarked(idx uint64) bool {
	return atomic.LoadUint32(&in.entries[idx].mark) != 0
}

// ClearMark clears the mark on idx.
func (in *Interner) ClearMark(idx uint64) {
	atomic.StoreUint32(&in.entries[idx].mark, 0)
}

// CountMarked returns the number of currently marked slots.
func (in *Interner) CountMarked() uint64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	var n uint64
	for i := uint64(2); i < in.capacity; i++ {
		if in.occupied[i] && in.IsMarked(i) {
			n++
		}
	}
	return n
}

// RehashAll discards every unmarked, non-reserved slot, clears the marks on
// the survivors, and rebuilds the shard hash indices. It must be called with
// the world stopped: no concurrent LookupOrInsert may race with it.
func (in *Interner) RehashAll() {
	in.mu.Lock()
	defer in.mu.Unlock()

	for i := range in.shards {
		in.shards[i].mu.Lock()
		in.shards[i].index = make(map[uint64]uint64)
	}
	defer func() {
		for i := range in.shards {
			in.shards[i].mu.Unlock()
		}
	}()

	in.freepos = 0
	in.freenum = 0
	for i := in.capacity - 1; i > 1; i-- {
		if in.occupied[i] && in.IsMarked(i) {
			in.ClearMark(i)
			h := in.entries[i].rec.hash()
			in.shards[h%shardCount].index[h] = i
		} else {
			in.occupied[i] = false
			in.entries[i] = entry{}
			in.entries[i].rec.Low = in.freepos
			in.freepos = i
			in.freenum++
		}
	}
}

// FreeCount returns the number of unoccupied slots.
func (in *Interner) FreeCount() uint64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.freenum
}

// Grow reallocates the table to newCapacity, preserving every occupied slot.
// It must be called with the world stopped.
func (in *Interner) Grow(newCapacity uint64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if newCapacity <= in.capacity {
		return
	}
	entries := make([]entry, newCapacity)
	occupied := make([]bool, newCapacity)
	copy(entries, in.entries)
	copy(occupied, in.occupied)
	for i := in.capacity; i < newCapacity; i++ {
		entries[i].rec.Low = i + 1
	}
	entries[newCapacity-1].rec.Low = in.freepos
	in.freepos = in.capacity
	in.freenum += newCapacity - in.capacity
	in.entries = entries
	in.occupied = occupied
	in.capacity = newCapacity
}
