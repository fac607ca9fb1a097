// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import (
	"testing"

	"github.com/dalzilio/tbdd/mtbdd"
	"github.com/stretchr/testify/require"
)

// TestMultiTerminalRoundTrip checks the tagged-side round trip of spec.md §8
// testable property #3: from_multi_terminal(to_multi_terminal(a, D), D) == a.
func TestMultiTerminalRoundTrip(t *testing.T) {
	e := newTestEngine(t, 6)
	dom := e.Domain()

	a, err := e.Cube(dom, []int{0, 1, 2, 2, 0, 1})
	require.NoError(t, err)
	a, err = e.UnionCube(a, dom, []int{1, 0, 0, 1, 2, 0})
	require.NoError(t, err)

	store := mtbdd.NewStore()
	ref, err := e.ToMultiTerminal(store, a, dom)
	require.NoError(t, err)

	back, err := e.FromMultiTerminal(store, ref, dom)
	require.NoError(t, err)

	require.Equal(t, a, back)
}

// TestMultiTerminalAndAgreement checks spec.md §8 scenario S3: converting
// two sets and their conjunction to multi-terminal form and back preserves
// And.
func TestMultiTerminalAndAgreement(t *testing.T) {
	e := newTestEngine(t, 6)
	dom := e.Domain()

	a, err := e.Cube(dom, []int{0, 1, 2, 2, 0, 1})
	require.NoError(t, err)
	a, err = e.UnionCube(a, dom, []int{1, 0, 0, 1, 2, 0})
	require.NoError(t, err)

	b, err := e.Cube(dom, []int{1, 1, 0, 2, 2, 1})
	require.NoError(t, err)
	b, err = e.UnionCube(b, dom, []int{0, 1, 1, 0, 2, 1})
	require.NoError(t, err)

	ab, err := e.And(a, b, dom)
	require.NoError(t, err)

	store := mtbdd.NewStore()
	mtA, err := e.ToMultiTerminal(store, a, dom)
	require.NoError(t, err)
	mtB, err := e.ToMultiTerminal(store, b, dom)
	require.NoError(t, err)
	mtAB, err := e.ToMultiTerminal(store, ab, dom)
	require.NoError(t, err)

	a2, err := e.FromMultiTerminal(store, mtA, dom)
	require.NoError(t, err)
	b2, err := e.FromMultiTerminal(store, mtB, dom)
	require.NoError(t, err)
	ab2, err := e.FromMultiTerminal(store, mtAB, dom)
	require.NoError(t, err)

	want, err := e.And(a2, b2, dom)
	require.NoError(t, err)
	require.Equal(t, ab2, want)
}

// TestMultiTerminalGCInterleaved checks spec.md §8 scenario S6: forcing a
// collection between every pair of kernel invocations from S3 must not
// change the final result.
func TestMultiTerminalGCInterleaved(t *testing.T) {
	e := newTestEngine(t, 6)
	dom := e.Domain()

	a, err := e.Cube(dom, []int{0, 1, 2, 2, 0, 1})
	require.NoError(t, err)
	e.GC()
	a, err = e.UnionCube(a, dom, []int{1, 0, 0, 1, 2, 0})
	require.NoError(t, err)
	e.Protect(&a)
	defer e.Unprotect(&a)
	e.GC()

	b, err := e.Cube(dom, []int{1, 1, 0, 2, 2, 1})
	require.NoError(t, err)
	e.GC()
	b, err = e.UnionCube(b, dom, []int{0, 1, 1, 0, 2, 1})
	require.NoError(t, err)
	e.Protect(&b)
	defer e.Unprotect(&b)
	e.GC()

	ab, err := e.And(a, b, dom)
	require.NoError(t, err)
	e.Protect(&ab)
	defer e.Unprotect(&ab)
	e.GC()

	store := mtbdd.NewStore()
	mtA, err := e.ToMultiTerminal(store, a, dom)
	require.NoError(t, err)
	e.GC()
	mtB, err := e.ToMultiTerminal(store, b, dom)
	require.NoError(t, err)
	e.GC()
	mtAB, err := e.ToMultiTerminal(store, ab, dom)
	require.NoError(t, err)
	e.GC()

	a2, err := e.FromMultiTerminal(store, mtA, dom)
	require.NoError(t, err)
	e.GC()
	b2, err := e.FromMultiTerminal(store, mtB, dom)
	require.NoError(t, err)
	e.GC()
	ab2, err := e.FromMultiTerminal(store, mtAB, dom)
	require.NoError(t, err)
	e.GC()

	want, err := e.And(a2, b2, dom)
	require.NoError(t, err)
	require.Equal(t, ab2, want)
}
