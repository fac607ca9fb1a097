// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package mtbdd declares the read-only accessor the engine consumes to
// convert to and from classical multi-terminal decision diagrams. The
// multi-terminal library itself is out of scope for the engine (spec.md
// §1); this package only fixes the shape of the collaborator plus a small
// in-memory reference implementation used by the conversion tests.
package mtbdd

// Ref is an opaque reference into the caller's multi-terminal diagram,
// comparable with ==.
type Ref uint64

// Accessor is the read-only view the engine needs of a multi-terminal
// decision diagram: whether a reference is a leaf, and if not, its variable
// and children; if it is, its opaque type and value.
type Accessor interface {
	IsLeaf(r Ref) bool
	Variable(r Ref) uint32
	Low(r Ref) Ref
	High(r Ref) Ref
	LeafType(r Ref) uint32
	LeafValue(r Ref) uint64
}

// Builder is the write side: the engine calls these to construct a
// multi-terminal diagram when converting away from tagged form.
type Builder interface {
	MakeLeaf(leafType uint32, value uint64) Ref
	MakeNode(variable uint32, low, high Ref) Ref
}

// Store is a minimal in-memory Accessor+Builder, hash-consed the same way as
// the teacher's own unicity table, used by the engine's conversion tests so
// they do not depend on a real external MTBDD library.
type Store struct {
	nodes  []node
	unique map[node]Ref
}

type node struct {
	isLeaf             bool
	variable           uint32
	low, high          Ref
	leafType           uint32
	leafValue          uint64
}

// NewStore returns an empty Store with the conventional leaves: ref 0 is the
// Boolean False leaf, ref 1 is the Boolean True leaf.
func NewStore() *Store {
	s := &Store{unique: make(map[node]Ref)}
	s.nodes = append(s.nodes, node{isLeaf: true, leafType: 0, leafValue: 0})
	s.nodes = append(s.nodes, node{isLeaf: true, leafType: 0, leafValue: 1})
	s.unique[s.nodes[0]] = 0
	s.unique[s.nodes[1]] = 1
	return s
}

// MakeLeaf implements Builder.
func (s *Store) MakeLeaf(leafType uint32, value uint64) Ref {
	n := node{isLeaf: true, leafType: leafType, leafValue: value}
	if r, ok := s.unique[n]; ok {
		return r
	}
	r := Ref(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.unique[n] = r
	return r
}

// MakeNode implements Builder. It performs the classical MTBDD reduction:
// when low == high the node is elided.
func (s *Store) MakeNode(variable uint32, low, high Ref) Ref {
	if low == high {
		return low
	}
	n := node{variable: variable, low: low, high: high}
	if r, ok := s.unique[n]; ok {
		return r
	}
	r := Ref(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.unique[n] = r
	return r
}

// IsLeaf implements Accessor.
func (s *Store) IsLeaf(r Ref) bool { return s.nodes[r].isLeaf }

// Variable implements Accessor.
func (s *Store) Variable(r Ref) uint32 { return s.nodes[r].variable }

// Low implements Accessor.
func (s *Store) Low(r Ref) Ref { return s.nodes[r].low }

// High implements Accessor.
func (s *Store) High(r Ref) Ref { return s.nodes[r].high }

// LeafType implements Accessor.
func (s *Store) LeafType(r Ref) uint32 { return s.nodes[r].leafType }

// LeafValue implements Accessor.
func (s *Store) LeafValue(r Ref) uint64 { return s.nodes[r].leafValue }
