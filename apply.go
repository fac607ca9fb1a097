// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import (
	"github.com/dalzilio/tbdd/internal/task"
)

// edgeVar returns the variable an operand edge is "active" at, for pivot
// selection (spec.md §4.4 step 2): the edge's tag if it carries a ZDD-skip
// region (since that is where it starts constraining a satisfying
// assignment), its node's own variable otherwise, or tagNone for a leaf
// (True is always tagNone, matching spec.md's "True treated as variable
// 0xFFFFF").
//
// Choosing the pivot as the minimum edgeVar across operands subsumes
// spec.md §4.4 step 7's "if the minimum operand tag is less than the
// pivot, wrap the result in an extra node": since the pivot here can never
// exceed any operand's own tag, that second wrapping pass is never needed —
// MakeNode's single call at the chosen pivot already produces the
// canonical result.
func edgeVar(e *Engine, edge Edge) uint32 {
	if edge.HasTag() {
		return edge.Tag()
	}
	if edge.IsConstant() || e.IsLeaf(edge) {
		return tagNone
	}
	return e.Variable(edge)
}

func minVar(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// And returns the conjunction of a and b over domain dom.
func (e *Engine) And(a, b Edge, dom Edge) (Edge, error) {
	return e.Apply(a, b, OPand, dom)
}

// Or returns the disjunction of a and b over domain dom.
func (e *Engine) Or(a, b Edge, dom Edge) (Edge, error) {
	return e.Apply(a, b, OPor, dom)
}

// Apply computes the binary connective op (OPand or OPor) between a and b
// over domain dom, per spec.md §4.4. And and Or are its only two callers;
// Ite and Not have their own entry points since they take a third operand
// or a single one respectively and don't fit a plain binary truth table.
func (e *Engine) Apply(a, b Edge, op Operator, dom Edge) (Edge, error) {
	r := e.newRefs(8)
	defer e.dropRefs(r)
	r.push(a)
	r.push(b)
	res, err := e.applyRec(a, b, op, dom, r)
	r.pop(2)
	return res, err
}

func (e *Engine) applyRec(a, b Edge, op Operator, dom Edge, r *refs) (Edge, error) {
	// Trivial cases (spec.md §4.4 step 1).
	switch op {
	case OPand:
		if a.IsFalse() || b.IsFalse() {
			return False, nil
		}
		if a.IsTrue() {
			return b, nil
		}
		if b.IsTrue() {
			return a, nil
		}
	case OPor:
		if a.IsTrue() || b.IsTrue() {
			return True, nil
		}
		if a.IsFalse() {
			return b, nil
		}
		if b.IsFalse() {
			return a, nil
		}
	}
	if a == b {
		tbl := opTable[op]
		if tbl[0][0] == tbl[1][1] {
			if tbl[0][0] == 1 {
				return True, nil
			}
			return False, nil
		}
		// idempotent (e.g. AND/OR of an edge with itself)
		if tbl[0][0] == 0 && tbl[1][1] == 1 {
			return a, nil
		}
	}
	if a.IsConstant() && b.IsConstant() {
		av, bv := 0, 0
		if a.IsTrue() {
			av = 1
		}
		if b.IsTrue() {
			bv = 1
		}
		if opTable[op][av][bv] == 1 {
			return True, nil
		}
		return False, nil
	}

	opKey := applyCacheOp(op)
	ka, kb := uint64(a), uint64(b)
	if ka > kb && opCommutative(op) {
		ka, kb = kb, ka
	}
	if v, ok := e.cache.Get(opKey, ka, kb, uint64(dom)); ok {
		logf("tbdd: apply cache hit op=%s a=%d b=%d", op, ka, kb)
		return Edge(v), nil
	}

	pivot := minVar(edgeVar(e, a), edgeVar(e, b))
	dom = domAdvance(e, dom, pivot)
	next := nextDomVar(e, dom, pivot)

	a0, a1 := cofactor(e, a, pivot, next)
	b0, b1 := cofactor(e, b, pivot, next)
	childDom := e.High(dom)

	h := task.Spawn(e.pool, func() taskResult {
		r1 := e.newRefs(4)
		defer e.dropRefs(r1)
		r1.push(a1)
		r1.push(b1)
		res, err := e.applyRec(a1, b1, op, childDom, r1)
		r1.pop(2)
		return taskResult{edge: res, err: err}
	})

	r.push(a0)
	r.push(b0)
	low, err := e.applyRec(a0, b0, op, childDom, r)
	r.pop(2)
	if err != nil {
		return Invalid, err
	}
	r.push(low)
	hres := h.Sync()
	r.pop(1)
	if hres.err != nil {
		return Invalid, hres.err
	}
	high := hres.edge

	result, err := e.MakeNode(pivot, low, high, next)
	if err != nil {
		return Invalid, err
	}
	e.cache.Put(opKey, ka, kb, uint64(dom), uint64(result))
	return result, nil
}

func opCommutative(op Operator) bool {
	switch op {
	case OPand, OPor:
		return true
	}
	return false
}

type taskResult struct {
	edge Edge
	err  error
}
