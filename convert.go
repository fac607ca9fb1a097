// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "github.com/dalzilio/tbdd/mtbdd"

// FromMultiTerminal walks src (through the read-only mtbdd.Accessor
// collaborator) and dom in lockstep, inserting ZDD skips wherever src jumps
// over a domain variable, per spec.md §4.10.
func (e *Engine) FromMultiTerminal(src mtbdd.Accessor, ref mtbdd.Ref, dom Edge) (Edge, error) {
	memo := make(map[[2]uint64]Edge)
	return e.fromMTRec(src, ref, dom, memo)
}

func (e *Engine) fromMTRec(src mtbdd.Accessor, ref mtbdd.Ref, dom Edge, memo map[[2]uint64]Edge) (Edge, error) {
	key := [2]uint64{uint64(ref), uint64(dom)}
	if v, ok := memo[key]; ok {
		return v, nil
	}
	if src.IsLeaf(ref) {
		leaf, err := e.MakeLeaf(src.LeafType(ref), src.LeafValue(ref))
		if err != nil {
			return Invalid, err
		}
		memo[key] = leaf
		return leaf, nil
	}
	v := src.Variable(ref)
	dom = domAdvance(e, dom, v)
	invariant(domVariable(e, dom) == v, "multi-terminal variable %d missing from domain", v)
	next := domVariable(e, e.High(dom))

	low, err := e.fromMTRec(src, src.Low(ref), e.High(dom), memo)
	if err != nil {
		return Invalid, err
	}
	high, err := e.fromMTRec(src, src.High(ref), e.High(dom), memo)
	if err != nil {
		return Invalid, err
	}
	res, err := e.MakeNode(v, low, high, next)
	if err != nil {
		return Invalid, err
	}
	memo[key] = res
	return res, nil
}

// ToMultiTerminal is the inverse of FromMultiTerminal: it materializes
// ZDD-skipped variables as explicit internal nodes with False high edges
// and leaves BDD-skipped variables absent, per the MTBDD convention and
// spec.md §4.10.
func (e *Engine) ToMultiTerminal(dst mtbdd.Builder, dd, dom Edge) (mtbdd.Ref, error) {
	memo := make(map[[2]uint64]mtbdd.Ref)
	return e.toMTRec(dst, dd, dom, memo)
}

func (e *Engine) toMTRec(dst mtbdd.Builder, dd, dom Edge, memo map[[2]uint64]mtbdd.Ref) (mtbdd.Ref, error) {
	if dom.IsFalse() {
		if e.IsLeaf(dd) {
			return dst.MakeLeaf(e.LeafType(dd), e.LeafValue(dd)), nil
		}
		return mtbdd.Ref(0), ErrInvalidEdge
	}
	key := [2]uint64{uint64(dd), uint64(dom)}
	if v, ok := memo[key]; ok {
		return v, nil
	}
	v := e.Variable(dom)
	next := domVariable(e, e.High(dom))
	dd0, dd1 := cofactor(e, dd, v, next)

	low, err := e.toMTRec(dst, dd0, e.High(dom), memo)
	if err != nil {
		return mtbdd.Ref(0), err
	}
	high, err := e.toMTRec(dst, dd1, e.High(dom), memo)
	if err != nil {
		return mtbdd.Ref(0), err
	}
	res := dst.MakeNode(v, low, high)
	memo[key] = res
	return res, nil
}
