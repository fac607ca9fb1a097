// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "github.com/dalzilio/tbdd/internal/interner"

// record fetches the interned node record an edge points to.
func (e *Engine) record(edge Edge) interner.Rec {
	return e.nodes.Get(edge.Index())
}

// IsLeaf reports whether edge points to a leaf node. False and True are
// always leaves.
func (e *Engine) IsLeaf(edge Edge) bool {
	if edge.IsConstant() {
		return true
	}
	return e.record(edge).IsLeaf
}

// Variable returns the decision variable of the node edge points to. It is
// a programming error to call it on an edge to a leaf.
func (e *Engine) Variable(edge Edge) uint32 {
	r := e.record(edge)
	invariant(!r.IsLeaf, "Variable called on a leaf edge")
	return r.Variable
}

// Low returns the false-branch child of the node edge points to, carrying
// the child's own tag. It is a programming error to call it on a leaf edge.
func (e *Engine) Low(edge Edge) Edge {
	r := e.record(edge)
	invariant(!r.IsLeaf, "Low called on a leaf edge")
	return Edge(r.Low)
}

// High returns the true-branch child of the node edge points to, carrying
// the child's own tag. It is a programming error to call it on a leaf edge.
func (e *Engine) High(edge Edge) Edge {
	r := e.record(edge)
	invariant(!r.IsLeaf, "High called on a leaf edge")
	return Edge(r.High)
}

// LeafType returns the opaque type code of the leaf edge points to. Boolean
// False/True both report LeafTypeBool.
func (e *Engine) LeafType(edge Edge) uint32 {
	if edge.IsConstant() {
		return LeafTypeBool
	}
	return e.record(edge).LeafType
}

// LeafValue returns the opaque value of the leaf edge points to. False
// reports 0, True reports 1.
func (e *Engine) LeafValue(edge Edge) uint64 {
	if edge.IsFalse() {
		return 0
	}
	if edge.IsTrue() {
		return 1
	}
	return e.record(edge).LeafValue
}

// From returns the constant Boolean edge for v.
func (e *Engine) From(v bool) Edge {
	if v {
		return True
	}
	return False
}

// MakeLeaf interns a leaf node with the given opaque type and value and
// returns an edge to it, tagged tagNone per canonical form invariant 4.
func (e *Engine) MakeLeaf(leafType uint32, value uint64) (Edge, error) {
	if leafType == LeafTypeBool && value == 0 {
		return False, nil
	}
	if leafType == LeafTypeBool && value == 1 {
		return True, nil
	}
	idx, _, err := e.nodes.LookupOrInsert(interner.Rec{IsLeaf: true, LeafType: leafType, LeafValue: value})
	if err != nil {
		idx, _, err = e.collectAndRetry(func() (uint64, bool, error) {
			return e.nodes.LookupOrInsert(interner.Rec{IsLeaf: true, LeafType: leafType, LeafValue: value})
		})
		if err != nil {
			return Invalid, err
		}
	}
	return makeEdge(idx, tagNone, false), nil
}
