// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "github.com/dalzilio/tbdd/internal/task"

func (e *Engine) domLen(dom Edge) int {
	n := 0
	for !dom.IsFalse() {
		n++
		dom = e.High(dom)
	}
	return n
}

func (e *Engine) satisfiable(dd, dom Edge) bool {
	if dom.IsFalse() {
		return dd.IsTrue()
	}
	return e.SatCount(dd, dom).Sign() > 0
}

// EnumFirst fills arr (length |dom|) with the lexicographically first
// satisfying assignment of dd over dom (low cofactor tried before high at
// every level), per spec.md §4.9. It reports false if dd is unsatisfiable.
func (e *Engine) EnumFirst(dd, dom Edge, arr []int) bool {
	return e.enumFirstRec(dd, dom, arr, 0)
}

func (e *Engine) enumFirstRec(dd, dom Edge, arr []int, i int) bool {
	if dom.IsFalse() {
		return dd.IsTrue()
	}
	v := e.Variable(dom)
	next := domVariable(e, e.High(dom))
	dd0, dd1 := cofactor(e, dd, v, next)
	childDom := e.High(dom)
	if e.satisfiable(dd0, childDom) {
		arr[i] = 0
		if e.enumFirstRec(dd0, childDom, arr, i+1) {
			return true
		}
	}
	if e.satisfiable(dd1, childDom) {
		arr[i] = 1
		if e.enumFirstRec(dd1, childDom, arr, i+1) {
			return true
		}
	}
	return false
}

// EnumNext advances arr (as produced by EnumFirst or a prior EnumNext) to
// the next satisfying assignment of dd over dom in lexicographic order,
// per spec.md §4.9. It reports false once every assignment has been
// produced.
func (e *Engine) EnumNext(dd, dom Edge, arr []int) bool {
	n := len(arr)
	edges := make([]Edge, n+1)
	doms := make([]Edge, n+1)
	edges[0], doms[0] = dd, dom
	for i := 0; i < n; i++ {
		v := e.Variable(doms[i])
		next := domVariable(e, e.High(doms[i]))
		d0, d1 := cofactor(e, edges[i], v, next)
		if arr[i] == 0 {
			edges[i+1] = d0
		} else {
			edges[i+1] = d1
		}
		doms[i+1] = e.High(doms[i])
	}
	for i := n - 1; i >= 0; i-- {
		if arr[i] == 1 {
			continue
		}
		v := e.Variable(doms[i])
		next := domVariable(e, e.High(doms[i]))
		_, d1 := cofactor(e, edges[i], v, next)
		if e.satisfiable(d1, doms[i+1]) {
			arr[i] = 1
			if e.enumFirstRec(d1, doms[i+1], arr, i+1) {
				return true
			}
		}
	}
	return false
}

// EnumSequential calls f once for every satisfying assignment of dd over
// dom, in lexicographic (low-before-high) order, stopping early if f
// returns an error. Corresponds to spec.md §4.9's enum_seq.
func (e *Engine) EnumSequential(dd, dom Edge, f func([]int) error) error {
	arr := make([]int, e.domLen(dom))
	if !e.EnumFirst(dd, dom, arr) {
		return nil
	}
	for {
		cp := append([]int(nil), arr...)
		if err := f(cp); err != nil {
			return err
		}
		if !e.EnumNext(dd, dom, arr) {
			return nil
		}
	}
}

// EnumParallel calls f once for every satisfying assignment of dd over
// dom, fanned out over the task pool with no ordering guarantee.
// Corresponds to spec.md §4.9's enum.
func (e *Engine) EnumParallel(dd, dom Edge, f func([]int) error) error {
	arr := make([]int, e.domLen(dom))
	return e.enumParRec(dd, dom, arr, 0, f)
}

func (e *Engine) enumParRec(dd, dom Edge, arr []int, i int, f func([]int) error) error {
	if dom.IsFalse() {
		if dd.IsTrue() {
			return f(append([]int(nil), arr...))
		}
		return nil
	}
	v := e.Variable(dom)
	next := domVariable(e, e.High(dom))
	dd0, dd1 := cofactor(e, dd, v, next)
	childDom := e.High(dom)

	arr1 := append([]int(nil), arr...)
	arr1[i] = 1
	h := task.Spawn(e.pool, func() taskResult {
		return taskResult{err: e.enumParRec(dd1, childDom, arr1, i+1, f)}
	})

	arr0 := arr
	arr0[i] = 0
	err := e.enumParRec(dd0, childDom, arr0, i+1, f)
	hres := h.Sync()
	if err != nil {
		return err
	}
	return hres.err
}

// Collect folds f over every satisfying assignment of dd over dom,
// combining the edges f returns with Or under resultDom. Corresponds to
// spec.md §4.9's collect.
func (e *Engine) Collect(dd, dom, resultDom Edge, f func([]int) (Edge, error)) (Edge, error) {
	acc := False
	err := e.EnumSequential(dd, dom, func(arr []int) error {
		r, err := f(arr)
		if err != nil {
			return err
		}
		next, err := e.Or(acc, r, resultDom)
		if err != nil {
			return err
		}
		acc = next
		return nil
	})
	if err != nil {
		return Invalid, err
	}
	return acc, nil
}
