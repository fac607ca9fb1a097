// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "github.com/dalzilio/tbdd/internal/interner"

// MakeNode implements the canonicalization contract of spec.md §4.1: given
// (variable, low, high, nextvar), return the canonical edge for
// "if variable then high else low", inserting ZDD-skip merges and stride
// nodes as needed so that every invariant in spec.md's "Canonical form"
// section holds on the result. Every kernel in this package builds nodes
// through MakeNode rather than interning records directly, so canonical
// form is a property enforced in one place.
func (e *Engine) MakeNode(variable uint32, low, high Edge, nextvar uint32) (Edge, error) {
	// Rule 1: no redundant internal nodes.
	if low == high {
		return low, nil
	}

	// Capture the complement bit off the original low edge once, the way
	// tbdd_makenode reads TBDD_HASMARK(low) on the untouched parameter and
	// reapplies it to whichever result rule 2/3 ends up building. Every
	// branch below works with an unmarked low and the mark is restored on
	// the final result, so low's own tag is never disturbed in the
	// process (it still names the variable at which low's own ZDD-skip
	// region begins, which rule 2 below depends on).
	complement := low.Complemented()
	low = low.withComplement(false)

	if high.IsFalse() {
		// Rule 2: ZDD-skip merging.
		if nextvar == tagNone {
			return low.withTag(variable).withComplement(complement), nil
		}
		if low.Tag() == nextvar {
			return low.withTag(variable).withComplement(complement), nil
		}
		// Rule 3: stride materialization. Bridge the single-variable gap
		// with an intermediate node whose children are both low, passed
		// through unchanged, bypassing the usual low==high reduction on
		// purpose (mirrors tbdd_makenode's one-level bridge in the
		// original C source, tbddnode_makenode(&n, nextvar, low, low)).
		bridged, err := e.internNode(nextvar, low, low)
		if err != nil {
			return Invalid, err
		}
		low = bridged
	}

	invariant(!high.Complemented(), "complement bit set on a high child")

	result, err := e.internNode(variable, low, high)
	if err != nil {
		return Invalid, err
	}
	result = result.withTag(variable).withComplement(complement)
	return result, nil
}

// internNode hash-conses a plain (variable, low, high) branch record,
// retrying once after a forced collection if the interner is full.
func (e *Engine) internNode(variable uint32, low, high Edge) (Edge, error) {
	rec := interner.Rec{Variable: variable, Low: uint64(low), High: uint64(high)}
	idx, _, err := e.nodes.LookupOrInsert(rec)
	if err != nil {
		idx, _, err = e.collectAndRetry(func() (uint64, bool, error) {
			return e.nodes.LookupOrInsert(rec)
		})
		if err != nil {
			return Invalid, err
		}
	}
	return makeEdge(idx, tagNone, false), nil
}

// Retag returns a canonical edge with the given tag, per spec.md §4.2. The
// caller must ensure newTag <= variable of the node edge points to.
func (e *Engine) Retag(edge Edge, newTag uint32) Edge {
	if edge.IsConstant() {
		return edge.withTag(tagNone)
	}
	if !e.IsLeaf(edge) {
		invariant(newTag == tagNone || newTag <= e.Variable(edge), "retag: new tag %d exceeds node variable %d", newTag, e.Variable(edge))
		if newTag == e.Variable(edge) {
			low, high := e.Low(edge), e.High(edge)
			if low == high {
				return low
			}
		}
	}
	return edge.withTag(newTag)
}
