// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "math/big"

// SatCount returns the number of satisfying assignments of dd over dom, as
// an arbitrary-precision integer (spec.md §4.8, taking up the §9 numerical
// precision note's "rational improvement over the source" of using a
// big.Int instead of a double).
//
// The per-variable cofactor recursion already gives the right multipliers
// for free: a BDD-skipped variable produces two identical recursive calls
// (dd0 == dd1), whose counts simply add, doubling the total; a ZDD-skipped
// variable produces dd1 == False, contributing nothing, so only the single
// surviving branch is counted. There is no separate "multiply by 2^k"
// closed form to get right. Results are memoized on (dd, dom) in a
// call-local map, since big.Int results do not fit the engine's uint64
// memoization cache.
func (e *Engine) SatCount(dd, dom Edge) *big.Int {
	memo := make(map[[2]Edge]*big.Int)
	return e.satcountRec(dd, dom, memo)
}

func (e *Engine) satcountRec(dd, dom Edge, memo map[[2]Edge]*big.Int) *big.Int {
	if dom.IsFalse() {
		if dd.IsTrue() {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	}
	key := [2]Edge{dd, dom}
	if v, ok := memo[key]; ok {
		return v
	}
	v := e.Variable(dom)
	next := domVariable(e, e.High(dom))
	dd0, dd1 := cofactor(e, dd, v, next)
	c0 := e.satcountRec(dd0, e.High(dom), memo)
	c1 := e.satcountRec(dd1, e.High(dom), memo)
	res := new(big.Int).Add(c0, c1)
	memo[key] = res
	return res
}
