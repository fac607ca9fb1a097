// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

// cofactor implements spec.md §4.4 step 4 and §9's suggested shared helper:
// given an operand edge and the pivot variable currently being recursed on
// (which must lie in the operand's domain), return the pair of cofactors
// (value 0, value 1) at pivot. next is the domain's variable immediately
// following pivot, used to re-tag the surviving branch when pivot falls in
// the operand's ZDD-skip region.
func cofactor(e *Engine, edge Edge, pivot uint32, next uint32) (Edge, Edge) {
	if !edge.IsConstant() && !e.IsLeaf(edge) && e.Variable(edge) == pivot {
		return e.Low(edge), e.High(edge)
	}
	if pivot >= edge.Tag() {
		// ZDD-skip region: pivot must be 0 in every satisfying assignment.
		return e.Retag(edge, next), False
	}
	// BDD-skip region: pivot is a don't-care.
	return edge, edge
}

// Eval computes the cofactor of dd at (variable, value), per spec.md §4.3.
// next is the variable immediately following variable in the ambient
// domain, or tagNone if variable is the domain's last.
func (e *Engine) Eval(dd Edge, variable uint32, value int, next uint32) Edge {
	if variable < dd.Tag() {
		return dd
	}
	if dd.IsConstant() || e.IsLeaf(dd) || e.Variable(dd) != variable {
		if value == 1 {
			return False
		}
		return e.Retag(dd, next)
	}
	if value == 1 {
		return e.High(dd)
	}
	return e.Low(dd)
}
