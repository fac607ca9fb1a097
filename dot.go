// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import (
	"fmt"
	"io"
)

// NodeCount returns the number of distinct internal nodes reachable from
// dd, per spec.md §4.11's node-counting traversal (marks are local to this
// call, never touching the interner's own GC marks).
func (e *Engine) NodeCount(dd Edge) int {
	seen := make(map[uint64]bool)
	e.countRec(dd, seen)
	return len(seen)
}

func (e *Engine) countRec(dd Edge, seen map[uint64]bool) {
	if dd.IsConstant() || e.IsLeaf(dd) {
		return
	}
	if seen[dd.Index()] {
		return
	}
	seen[dd.Index()] = true
	e.countRec(e.Low(dd), seen)
	e.countRec(e.High(dd), seen)
}

// PrintDot writes a Graphviz dot description of dd to w: one node per
// distinct internal node or leaf (a call-local seen set avoids duplicate
// emission, so no unmarking pass is needed), edges labelled with their tag
// (or "-1" for tagNone), dashed for low and solid for high.
func (e *Engine) PrintDot(w io.Writer, dd Edge) error {
	fmt.Fprintln(w, "digraph tbdd {")
	fmt.Fprintln(w, `  "F" [shape=box,label="0"];`)
	fmt.Fprintln(w, `  "T" [shape=box,label="1"];`)
	seen := make(map[uint64]bool)
	if err := e.dotRec(w, dd, seen); err != nil {
		return err
	}
	label := edgeLabel(dd)
	style := "solid"
	fmt.Fprintf(w, "  \"root\" [shape=none,label=\"\"];\n  \"root\" -> %s [style=%s,label=\"%s\"];\n", dotTarget(e, dd), style, label)
	fmt.Fprintln(w, "}")
	return nil
}

func dotTarget(e *Engine, edge Edge) string {
	if edge.IsFalse() {
		return `"F"`
	}
	if edge.IsTrue() {
		return `"T"`
	}
	if e.IsLeaf(edge) {
		return fmt.Sprintf(`"L%d"`, edge.Index())
	}
	return fmt.Sprintf(`"N%d"`, edge.Index())
}

func edgeLabel(edge Edge) string {
	if !edge.HasTag() {
		return "-1"
	}
	return fmt.Sprintf("%d", edge.Tag())
}

func (e *Engine) dotRec(w io.Writer, dd Edge, seen map[uint64]bool) error {
	if dd.IsConstant() {
		return nil
	}
	if seen[dd.Index()] {
		return nil
	}
	seen[dd.Index()] = true
	if e.IsLeaf(dd) {
		fmt.Fprintf(w, "  %s [shape=box,label=\"%d:%d\"];\n", dotTarget(e, dd), e.LeafType(dd), e.LeafValue(dd))
		return nil
	}
	fmt.Fprintf(w, "  %s [shape=circle,label=\"%d\"];\n", dotTarget(e, dd), e.Variable(dd))
	low, high := e.Low(dd), e.High(dd)
	fmt.Fprintf(w, "  %s -> %s [style=dashed,label=\"%s\"];\n", dotTarget(e, dd), dotTarget(e, low), edgeLabel(low))
	fmt.Fprintf(w, "  %s -> %s [style=solid,label=\"%s\"];\n", dotTarget(e, dd), dotTarget(e, high), edgeLabel(high))
	if err := e.dotRec(w, low, seen); err != nil {
		return err
	}
	return e.dotRec(w, high, seen)
}
