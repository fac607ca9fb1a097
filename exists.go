// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "github.com/dalzilio/tbdd/internal/task"

// Exists removes the variables named by vars (a cube, built with Cube or
// CubeFromVariables) from dd, preserving the ambient domain dom, per
// spec.md §4.5.
func (e *Engine) Exists(dd, vars, dom Edge) (Edge, error) {
	r := e.newRefs(8)
	defer e.dropRefs(r)
	r.push(dd)
	r.push(vars)
	res, err := e.existsRecR(dd, vars, dom, r)
	r.pop(2)
	return res, err
}

func (e *Engine) existsRecR(dd, vars, dom Edge, r *refs) (Edge, error) {
	if dd.IsConstant() {
		return dd, nil
	}
	if vars.IsTrue() {
		return dd, nil
	}

	varPivot := e.Variable(vars)
	pivot := minVar(edgeVar(e, dd), varPivot)
	dom = domAdvance(e, dom, pivot)
	next := nextDomVar(e, dom, pivot)

	if v, ok := e.cache.Get(cacheOpExists, uint64(dd), uint64(vars), uint64(dom)); ok {
		return Edge(v), nil
	}

	dd0, dd1 := cofactor(e, dd, pivot, next)
	childDom := e.High(dom)

	quantify := varPivot == pivot
	childVars := vars
	if quantify {
		childVars = e.High(vars)
	}

	if quantify {
		th := task.Spawn(e.pool, func() taskResult {
			r1 := e.newRefs(4)
			defer e.dropRefs(r1)
			r1.push(dd1)
			res, err := e.existsRecR(dd1, childVars, childDom, r1)
			r1.pop(1)
			return taskResult{edge: res, err: err}
		})
		r.push(dd0)
		lo, err := e.existsRecR(dd0, childVars, childDom, r)
		r.pop(1)
		if err != nil {
			return Invalid, err
		}
		r.push(lo)
		hres := th.Sync()
		r.pop(1)
		if hres.err != nil {
			return Invalid, hres.err
		}
		result, err := e.Or(lo, hres.edge, childDom)
		if err != nil {
			return Invalid, err
		}
		e.cache.Put(cacheOpExists, uint64(dd), uint64(vars), uint64(dom), uint64(result))
		return result, nil
	}

	th := task.Spawn(e.pool, func() taskResult {
		r1 := e.newRefs(4)
		defer e.dropRefs(r1)
		r1.push(dd1)
		res, err := e.existsRecR(dd1, childVars, childDom, r1)
		r1.pop(1)
		return taskResult{edge: res, err: err}
	})
	r.push(dd0)
	lo, err := e.existsRecR(dd0, childVars, childDom, r)
	r.pop(1)
	if err != nil {
		return Invalid, err
	}
	r.push(lo)
	hres := th.Sync()
	r.pop(1)
	if hres.err != nil {
		return Invalid, hres.err
	}
	result, err := e.MakeNode(pivot, lo, hres.edge, next)
	if err != nil {
		return Invalid, err
	}
	e.cache.Put(cacheOpExists, uint64(dd), uint64(vars), uint64(dom), uint64(result))
	return result, nil
}

// ExistsDom existentially quantifies every variable present in dom but
// absent from newDom, by building the cube of those variables and calling
// Exists over dom. The result is expressed over dom, as Exists's is: the
// removed variables become don't-cares, and the edge is not re-encoded with
// newDom as its domain.
func (e *Engine) ExistsDom(dd, dom, newDom Edge) (Edge, error) {
	vars, err := e.cubeComplement(dom, newDom)
	if err != nil {
		return Invalid, err
	}
	return e.Exists(dd, vars, dom)
}

// cubeComplement builds the cube of every variable in dom that is absent
// from newDom, used by ExistsDom to turn a domain projection into an
// explicit quantified-variables cube for existsRecR.
func (e *Engine) cubeComplement(dom, newDom Edge) (Edge, error) {
	if dom.IsFalse() {
		return True, nil
	}
	v := e.Variable(dom)
	rest, err := e.cubeComplement(e.High(dom), domAdvance(e, newDom, v+1))
	if err != nil {
		return Invalid, err
	}
	if domVariable(e, newDom) == v {
		return rest, nil
	}
	return e.MakeNode(v, False, rest, nextVarAfter(v, e.domainSize))
}
