// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, domainSize int) *Engine {
	t.Helper()
	e, err := New(domainSize)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

// TestIthvarIdentity checks spec.md §8 scenario S2: ithvar(v) ==
// make_node(v, False, True, nextvar) for every variable in the domain.
func TestIthvarIdentity(t *testing.T) {
	e := newTestEngine(t, 8)
	for v := 0; v < 8; v++ {
		nv := nextVarAfter(uint32(v), 8)
		want, err := e.MakeNode(uint32(v), False, True, nv)
		require.NoError(t, err)
		assert.Equal(t, want, e.PositiveLiteral(uint32(v)), "variable %d", v)
	}
}

// TestCubeEval checks spec.md §8 scenario S1.
func TestCubeEval(t *testing.T) {
	e := newTestEngine(t, 7)
	dom := e.Domain()
	dd, err := e.Cube(dom, []int{0, 0, 2, 2, 0, 2, 0})
	require.NoError(t, err)

	r := e.Eval(dd, 0, 1, 1)
	assert.True(t, r.IsFalse())

	r2 := e.Eval(dd, 0, 0, 1)
	assert.False(t, r2.IsFalse())

	// Variables 2, 3 and 5 are don't-cares (Either), so exactly 2^3 = 8
	// assignments satisfy dd. Building this cube drives MakeNode's rule 3
	// (stride materialization) at the node for variable 4, whose low child
	// is True tagged 6 (variable 6 fixed to zero), and again at variable 1,
	// whose low child is tagged 4; a stride bridge that clobbers that tag
	// instead of passing the child through unchanged silently changes this
	// count.
	assert.EqualValues(t, 8, e.SatCount(dd, dom).Int64())
}

// TestAndOrTrivial exercises the short-circuit cases of spec.md §4.4 step 1.
func TestAndOrTrivial(t *testing.T) {
	e := newTestEngine(t, 4)
	dom := e.Domain()

	r, err := e.And(False, True, dom)
	require.NoError(t, err)
	assert.Equal(t, False, r)

	r, err = e.Or(False, True, dom)
	require.NoError(t, err)
	assert.Equal(t, True, r)

	a := e.PositiveLiteral(0)
	r, err = e.And(a, a, dom)
	require.NoError(t, err)
	assert.Equal(t, a, r)
}

// TestSatcountComplement checks spec.md §8 scenario S5: satcount(not(dd))
// + satcount(dd) == 2^|D|.
func TestSatcountComplement(t *testing.T) {
	e := newTestEngine(t, 5)
	dom := e.Domain()

	dd, err := e.Cube(dom, []int{0, 1, 2, 2, 0})
	require.NoError(t, err)

	notdd, err := e.Not(dd, dom)
	require.NoError(t, err)

	total := e.SatCount(dd, dom)
	totalNot := e.SatCount(notdd, dom)
	sum := total.Int64() + totalNot.Int64()
	assert.EqualValues(t, 1<<5, sum)
}

// TestEnumerationTotality checks spec.md §8 scenario S8 (enumeration
// totality): iterating EnumFirst/EnumNext yields exactly satcount(dd, D)
// distinct assignments.
func TestEnumerationTotality(t *testing.T) {
	e := newTestEngine(t, 4)
	dom := e.Domain()

	dd, err := e.Cube(dom, []int{2, 0, 2, 1})
	require.NoError(t, err)

	want := e.SatCount(dd, dom).Int64()

	arr := make([]int, 4)
	count := int64(0)
	if e.EnumFirst(dd, dom, arr) {
		count++
		for e.EnumNext(dd, dom, arr) {
			count++
		}
	}
	assert.Equal(t, want, count)
}

// TestExistsSoundness is a small instance of spec.md §8 scenario #6.
func TestExistsSoundness(t *testing.T) {
	e := newTestEngine(t, 3)
	dom := e.Domain()

	dd, err := e.Cube(dom, []int{1, 0, 1})
	require.NoError(t, err)

	vars, err := e.CubeFromVariables(dom, []uint32{1})
	require.NoError(t, err)

	res, err := e.Exists(dd, vars, dom)
	require.NoError(t, err)

	// Variable 1 is now a don't-care: both (1,0,1) and (1,1,1) must be in
	// the resulting set.
	assert.False(t, e.Eval(e.Eval(res, 0, 1, 1), 1, 0, 2).IsFalse())
	assert.False(t, e.Eval(e.Eval(res, 0, 1, 1), 1, 1, 2).IsFalse())
}

// TestGCReachability checks that a forced collection leaves an edge
// registered with Protect valid (TestGCRefStack covers the refs stack path).
func TestGCReachability(t *testing.T) {
	e := newTestEngine(t, 6)
	dom := e.Domain()

	dd, err := e.Cube(dom, []int{0, 1, 0, 1, 0, 1})
	require.NoError(t, err)

	e.Protect(&dd)
	defer e.Unprotect(&dd)

	e.GC()

	assert.False(t, dd.IsFalse())
	count := e.SatCount(dd, dom)
	assert.EqualValues(t, 1, count.Int64())
}

// TestGCRefStack checks spec.md §8 invariant #9 and §5's reference-stack
// mark-phase step directly: an edge held only by a live *refs (not by
// Protect, not by a root), between newRefs and dropRefs, must survive a
// collection that runs concurrently with it.
func TestGCRefStack(t *testing.T) {
	e := newTestEngine(t, 6)
	dom := e.Domain()

	dd, err := e.Cube(dom, []int{0, 1, 0, 1, 0, 1})
	require.NoError(t, err)

	r := e.newRefs(4)
	r.push(dd)

	e.GC()

	assert.False(t, dd.IsFalse())
	count := e.SatCount(dd, dom)
	assert.EqualValues(t, 1, count.Int64())

	r.pop(1)
	e.dropRefs(r)
}

// Example_and demonstrates building a small conjunction over a four
// variable domain and counting its satisfying assignments.
func Example_and() {
	e, err := New(4)
	if err != nil {
		panic(err)
	}
	defer e.Close()

	dom := e.Domain()
	a := e.PositiveLiteral(0)
	b := e.PositiveLiteral(1)
	r, err := e.And(a, b, dom)
	if err != nil {
		panic(err)
	}
	fmt.Println(e.SatCount(r, dom).Int64())
	// Output: 4
}
