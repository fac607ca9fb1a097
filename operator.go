// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

// Operator enumerates the binary Boolean connectives Apply understands.
// Continues the teacher's Operator/opres idiom (operator.go), restricted to
// the two connectives spec.md §4.4 and the OPERATIONS list actually name
// (And, Or); Ite/Not/Exists/RelNext are their own dedicated kernels rather
// than Apply instances, since they take a third operand, complement a
// single one, or fold in quantification/relational structure that a plain
// binary truth table cannot express.
type Operator int

const (
	OPand Operator = iota
	OPor
)

var opnames = [...]string{
	OPand: "and",
	OPor:  "or",
}

func (op Operator) String() string { return opnames[op] }

// opTable gives the truth table [a][b] for each operator, used by Apply's
// trivial-case shortcuts (the idempotent a==b and constant-constant cases).
var opTable = [...][2][2]int{
	OPand: {0: [2]int{0: 0, 1: 0}, 1: [2]int{0: 0, 1: 1}},
	OPor:  {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 1, 1: 1}},
}

// cache operation identifiers, mixed into the memoization cache's op_key_64
// (spec.md §6).
const (
	cacheOpApply uint64 = 1000 + iota
	cacheOpIte
	cacheOpNot
	cacheOpExists
	cacheOpExistsDom
	cacheOpRelnext
	cacheOpSatcount
)

func applyCacheOp(op Operator) uint64 { return cacheOpApply<<8 | uint64(op) }
