package goramancore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDataset builds a dataset over the axis 1..F with no metadata.
func newTestDataset(t *testing.T, name string, rows [][]float64) *Dataset {
	t.Helper()
	require.NotEmpty(t, rows)
	axis := make([]float64, len(rows[0]))
	for j := range axis {
		axis[j] = float64(j + 1)
	}
	ds, err := NewDataset(name, axis, rows, nil, nil)
	require.NoError(t, err)
	return ds
}

func simulated(t *testing.T) (*Dataset, []bool) {
	t.Helper()
	ds, truth, err := Simulate(DefaultSimOptions())
	require.NoError(t, err)
	return ds, truth
}

// assertCovers checks that p is an exhaustive, disjoint split of 0..n-1.
func assertCovers(t *testing.T, p Partition, n int) {
	t.Helper()
	seen := make(map[int]bool, n)
	for _, i := range append(append([]int{}, p.Strong...), p.Weak...) {
		assert.False(t, seen[i], "index %d appears twice", i)
		assert.True(t, i >= 0 && i < n, "index %d out of range", i)
		seen[i] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, p.Len())
}

func isSubset(sub, super []int) bool {
	set := make(map[int]bool, len(super))
	for _, i := range super {
		set[i] = true
	}
	for _, i := range sub {
		if !set[i] {
			return false
		}
	}
	return true
}

func trueIndices(flags []bool) []int {
	idx := []int{}
	for i, f := range flags {
		if f {
			idx = append(idx, i)
		}
	}
	return idx
}
