// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package tbdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRelNextTransitions checks spec.md §8 scenario S4: three interleaved
// source/target pairs (0,1), (2,3), (4,5); starting from {(0,0,1)}, one
// application of relnext yields {(0,0,0)}, two applications yield
// {(1,1,1)}.
func TestRelNextTransitions(t *testing.T) {
	e := newTestEngine(t, 6) // full alphabet: s0=0,t0=1,s1=2,t1=3,s2=4,t2=5
	full := e.Domain()
	srcDom, err := e.ProjectDomain([]uint32{0, 2, 4})
	require.NoError(t, err)
	vars, err := e.CubeFromVariables(full, []uint32{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)

	transition := func(s0, s1, s2, t0, t1, t2 int) []int {
		return []int{s0, t0, s1, t1, s2, t2}
	}

	rel := False
	for _, tr := range [][6]int{
		{0, 0, 0, 1, 1, 1},
		{0, 0, 1, 0, 0, 0},
		{0, 1, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0},
	} {
		arr := transition(tr[0], tr[1], tr[2], tr[3], tr[4], tr[5])
		rel, err = e.UnionCube(rel, full, arr)
		require.NoError(t, err)
	}

	set, err := e.Cube(srcDom, []int{0, 0, 1})
	require.NoError(t, err)

	next1, err := e.RelNext(set, rel, vars, srcDom)
	require.NoError(t, err)
	want1, err := e.Cube(srcDom, []int{0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, want1, next1)

	next2, err := e.RelNext(next1, rel, vars, srcDom)
	require.NoError(t, err)
	want2, err := e.Cube(srcDom, []int{1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, want2, next2)
}
