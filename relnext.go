// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "github.com/dalzilio/tbdd/internal/task"

// RelNext computes the relational image of set through rel: the set of
// states reachable in one step of the transition relation rel, restricted
// to the relational variables named by vars (interleaved source/target
// pairs), per spec.md §4.6. dom contains only the even-indexed source
// variables.
func (e *Engine) RelNext(set, rel, vars, dom Edge) (Edge, error) {
	r := e.newRefs(8)
	defer e.dropRefs(r)
	r.push(set)
	r.push(rel)
	res, err := e.relnextRec(set, rel, vars, dom, r)
	r.pop(2)
	return res, err
}

func (e *Engine) relnextRec(set, rel, vars, dom Edge, r *refs) (Edge, error) {
	if set.IsFalse() || rel.IsFalse() {
		return False, nil
	}
	if dom.IsFalse() {
		// Empty domain: set and rel have both been fully evaluated.
		if set.IsTrue() && rel.IsTrue() {
			return True, nil
		}
		return False, nil
	}

	if v, ok := e.cache.Get(cacheOpRelnext, uint64(set), uint64(rel), uint64(dom)); ok {
		return Edge(v), nil
	}

	source := e.Variable(dom)
	target := source + 1
	childDom := e.High(dom)
	nextSourceVar := domVariable(e, childDom)

	relational := e.isRelationalVar(vars, source)

	if !relational {
		// Non-relational domain variable: cofactor set only, rel is
		// unaffected since it assigns 0 here by precondition.
		s0, s1 := cofactor(e, set, source, nextSourceVar)

		th := task.Spawn(e.pool, func() taskResult {
			r1 := e.newRefs(4)
			defer e.dropRefs(r1)
			r1.push(s1)
			res, err := e.relnextRec(s1, rel, vars, childDom, r1)
			r1.pop(1)
			return taskResult{edge: res, err: err}
		})
		r.push(s0)
		low, err := e.relnextRec(s0, rel, vars, childDom, r)
		r.pop(1)
		if err != nil {
			return Invalid, err
		}
		r.push(low)
		hres := th.Sync()
		r.pop(1)
		if hres.err != nil {
			return Invalid, hres.err
		}
		result, err := e.MakeNode(source, low, hres.edge, nextSourceVar)
		if err != nil {
			return Invalid, err
		}
		e.cache.Put(cacheOpRelnext, uint64(set), uint64(rel), uint64(dom), uint64(result))
		return result, nil
	}

	// Relational source variable: cofactor both set and rel at source,
	// then each rel subresult at the paired target. set lives on dom, so its
	// next variable is the next source variable; rel lives on the full
	// alphabet, so its next variable after source is target.
	set0, set1 := cofactor(e, set, source, nextSourceVar)
	rel0, rel1 := cofactor(e, rel, source, target)
	rel00, rel01 := cofactor(e, rel0, target, nextSourceVar)
	rel10, rel11 := cofactor(e, rel1, target, nextSourceVar)

	type branch struct {
		set, rel Edge
	}
	branches := [4]branch{
		{set0, rel00}, // i=0, j=0
		{set0, rel01}, // i=0, j=1
		{set1, rel10}, // i=1, j=0
		{set1, rel11}, // i=1, j=1
	}
	handles := [4]*task.Handle[taskResult]{}
	for i := 1; i < 4; i++ {
		i := i
		handles[i] = task.Spawn(e.pool, func() taskResult {
			r1 := e.newRefs(4)
			defer e.dropRefs(r1)
			r1.push(branches[i].set)
			res, err := e.relnextRec(branches[i].set, branches[i].rel, vars, childDom, r1)
			r1.pop(1)
			return taskResult{edge: res, err: err}
		})
	}
	r.push(branches[0].set)
	res00, err := e.relnextRec(branches[0].set, branches[0].rel, vars, childDom, r)
	r.pop(1)
	if err != nil {
		return Invalid, err
	}
	results := [4]Edge{res00}
	for i := 1; i < 4; i++ {
		hres := handles[i].Sync()
		if hres.err != nil {
			return Invalid, hres.err
		}
		results[i] = hres.edge
		r.push(results[i])
	}
	r.pop(3)

	// results index: 0=(0,0) 1=(0,1) 2=(1,0) 3=(1,1); combine along the
	// target axis: res_0 = OR(res(0,0), res(1,0)), res_1 = OR(res(0,1), res(1,1)).
	res0, err := e.Or(results[0], results[2], childDom)
	if err != nil {
		return Invalid, err
	}
	res1, err := e.Or(results[1], results[3], childDom)
	if err != nil {
		return Invalid, err
	}

	result, err := e.MakeNode(source, res0, res1, nextSourceVar)
	if err != nil {
		return Invalid, err
	}
	e.cache.Put(cacheOpRelnext, uint64(set), uint64(rel), uint64(dom), uint64(result))
	return result, nil
}

// isRelationalVar reports whether v is named by the vars cube (a
// conjunction, in ascending variable order, of both source and target
// variables for every pair in the relation — see CubeFromVariables).
func (e *Engine) isRelationalVar(vars Edge, v uint32) bool {
	for !vars.IsConstant() {
		w := e.Variable(vars)
		if w == v {
			return true
		}
		if w > v {
			return false
		}
		vars = e.High(vars)
	}
	return false
}
