// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

// Literal values accepted by Cube's arr parameter: Zero and One fix the
// variable, Either leaves it unconstrained (a don't-care).
const (
	Zero   = 0
	One    = 1
	Either = 2
)

// PositiveLiteral returns the canonical edge for variable v in its positive
// form: make_node(v, False, True, nextvar), per spec.md §8 scenario S2.
func (e *Engine) PositiveLiteral(v uint32) Edge {
	return e.ithvar[v]
}

// NegativeLiteral returns the canonical edge for the negation of variable
// v: make_node(v, True, False, nextvar).
func (e *Engine) NegativeLiteral(v uint32) Edge {
	return e.nithvar[v]
}

// Cube builds the canonical edge for a single assignment over dom, per
// spec.md §4.7. arr must have one entry per variable in dom, in dom's
// order, each one of Zero, One or Either.
func (e *Engine) Cube(dom Edge, arr []int) (Edge, error) {
	return e.cubeRec(dom, arr, 0)
}

func (e *Engine) cubeRec(dom Edge, arr []int, i int) (Edge, error) {
	if dom.IsFalse() {
		return True, nil
	}
	if i >= len(arr) {
		return Invalid, ErrInvalidEdge
	}
	v := e.Variable(dom)
	high := e.High(dom)
	next := domVariable(e, high)
	rest, err := e.cubeRec(high, arr, i+1)
	if err != nil {
		return Invalid, err
	}
	switch arr[i] {
	case Zero:
		return e.MakeNode(v, rest, False, next)
	case One:
		return e.MakeNode(v, False, rest, next)
	case Either:
		return e.MakeNode(v, rest, rest, next)
	default:
		return Invalid, ErrInvalidEdge
	}
}

// UnionCube unions the cube described by (dom, arr) into set. The source
// specification (§4.7, §9) describes a single recursive pass that reuses
// shared structure with set; we build the cube and fold it in through Or
// instead, trading a constant-factor slowdown (the cube is built in full by
// Cube, then walked again together with set by Or) for reusing the same
// correctness-critical recursion the rest of the engine already relies on.
func (e *Engine) UnionCube(set, dom Edge, arr []int) (Edge, error) {
	c, err := e.Cube(dom, arr)
	if err != nil {
		return Invalid, err
	}
	return e.Or(set, c, dom)
}

// CubeFromVariables builds the conjunction (in positive form) of every
// variable named in vars, which must be sorted ascending; used to build the
// quantified-variables or relational-variables cube consumed by Exists and
// RelNext.
func (e *Engine) CubeFromVariables(dom Edge, vars []uint32) (Edge, error) {
	return e.cubeFromVarsRec(dom, vars)
}

func (e *Engine) cubeFromVarsRec(dom Edge, vars []uint32) (Edge, error) {
	if dom.IsFalse() || len(vars) == 0 {
		return True, nil
	}
	v := e.Variable(dom)
	high := e.High(dom)
	next := domVariable(e, high)
	if vars[0] != v {
		return e.cubeFromVarsRec(high, vars)
	}
	rest, err := e.cubeFromVarsRec(high, vars[1:])
	if err != nil {
		return Invalid, err
	}
	return e.MakeNode(v, False, rest, next)
}
