// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

// nextVarAfter returns the variable that follows v in a dense domain of
// size domainSize numbered [0, domainSize), or tagNone if v is the last
// variable. The engine's own Domain() is always dense this way; callers
// working over a projected sub-domain use nextDomVar instead.
func nextVarAfter(v uint32, domainSize int) uint32 {
	if int(v)+1 >= domainSize {
		return tagNone
	}
	return v + 1
}

// domVariable returns the variable at the head of a domain chain, or
// tagNone if dom is the end-of-chain sentinel (False).
func domVariable(e *Engine, dom Edge) uint32 {
	if dom.IsFalse() {
		return tagNone
	}
	return e.Variable(dom)
}

// domAdvance walks dom forward (following high edges, which is how the
// domain chain links successive variables - see buildDomain) until its head
// variable is >= target, or returns the end-of-chain edge if target is past
// every variable left in dom. It implements spec.md §4.4 step 3's "domain
// advance".
func domAdvance(e *Engine, dom Edge, target uint32) Edge {
	for {
		v := domVariable(e, dom)
		if v == tagNone || v >= target {
			return dom
		}
		dom = e.High(dom)
	}
}

// nextDomVar returns the variable immediately following target in dom, or
// tagNone if target is dom's last variable. dom must contain target (an
// engine invariant at every kernel's recursive step, per spec.md §4.4).
func nextDomVar(e *Engine, dom Edge, target uint32) uint32 {
	d := domAdvance(e, dom, target)
	invariant(domVariable(e, d) == target, "pivot variable %d missing from domain", target)
	nxt := e.High(d)
	return domVariable(e, nxt)
}

// ProjectDomain builds a domain chain over exactly the given variables
// (which must be sorted ascending), for kernels that need a sub-domain of
// the engine's dense default (RelNext's source-only dom, or the newDom
// argument to ExistsDom). It is built the same way as the engine's own
// Domain(), via internNode directly so that the chain's low==high links do
// not collapse under MakeNode's rule 1.
func (e *Engine) ProjectDomain(vars []uint32) (Edge, error) {
	dom := False
	for i := len(vars) - 1; i >= 0; i-- {
		d, err := e.internNode(vars[i], dom, dom)
		if err != nil {
			return Invalid, err
		}
		dom = d
	}
	return dom, nil
}
