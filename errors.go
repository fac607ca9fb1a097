// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import "fmt"

// ErrTableExhausted is returned (and is fatal, per spec.md §7) when the node
// interner is still full after a forced collection.
type ErrTableExhausted struct {
	Used, Capacity uint64
}

func (e *ErrTableExhausted) Error() string {
	return fmt.Sprintf("tbdd: unique table exhausted (%d of %d slots filled)", e.Used, e.Capacity)
}

// ErrInvalidEdge is returned by partial operations given ill-formed input (an
// out-of-range or missing cube value, a non-leaf edge left at the end of the
// domain in ToMultiTerminal). The
// caller is responsible for checking for it; the engine never recovers from
// it internally.
var ErrInvalidEdge = fmt.Errorf("tbdd: invalid edge")

// invariant panics on a programming error: a tag exceeding its node's
// variable, a pivot variable missing from the domain, and so on (spec.md
// §7's third error class). These are never recovered locally.
func invariant(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("tbdd: invariant violated: "+format, args...))
	}
}
