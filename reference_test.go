package goramancore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceClassifier_ExactMembership(t *testing.T) {
	ref := newTestDataset(t, "media", [][]float64{{2, 3, 4}})
	tests := []struct {
		name   string
		row    []float64
		strong bool
	}{
		{"identical row", []float64{2, 3, 4}, false},
		{"value absent from reference", []float64{2, 3, 5}, true},
		{"values at other positions", []float64{4, 2, 3}, false},
		{"repeated reference value", []float64{3, 3, 3}, false},
		{"near miss", []float64{2, 3, 4.0000001}, true},
		{"NaN never matches", []float64{2, math.NaN(), 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := newTestDataset(t, "measurement", [][]float64{tt.row})
			p, err := NewReferenceClassifier(ref).Split(ds)
			require.NoError(t, err)
			assertCovers(t, p, 1)
			if tt.strong {
				assert.Equal(t, []int{0}, p.Strong)
			} else {
				assert.Equal(t, []int{0}, p.Weak)
			}
		})
	}
}

func TestReferenceClassifier_SignedZero(t *testing.T) {
	ref := newTestDataset(t, "media", [][]float64{{0, 1}})
	ds := newTestDataset(t, "measurement", [][]float64{{math.Copysign(0, -1), 1}})

	p, err := NewReferenceClassifier(ref).Split(ds)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, p.Weak)
}

func TestReferenceClassifier_SelfReferenceIsAllWeak(t *testing.T) {
	ds, _ := simulated(t)

	c, err := NewReferenceClassifier(ds).Classify(ds)
	require.NoError(t, err)
	assert.Equal(t, ReferenceMethod, c.Method)
	assert.Empty(t, c.Partition.Strong)
	assert.Len(t, c.Partition.Weak, ds.Len())
	assert.Nil(t, c.Threshold)
}

func TestReferenceClassifier_RecoversSimulatedPeaks(t *testing.T) {
	ds, truth := simulated(t)

	opts := DefaultSimOptions()
	opts.Name = "media"
	opts.StrongShare = 0
	opts.Observations = 30
	opts.Seed = 7
	media, _, err := Simulate(opts)
	require.NoError(t, err)

	p, err := NewReferenceClassifier(media).Split(ds)
	require.NoError(t, err)
	assertCovers(t, p, ds.Len())
	assert.Equal(t, trueIndices(truth), p.Strong)
}

func TestReferenceClassifier_AxisMismatch(t *testing.T) {
	ds := newTestDataset(t, "measurement", [][]float64{{1, 2, 3}})

	short := newTestDataset(t, "short", [][]float64{{1, 2}})
	_, err := NewReferenceClassifier(short).Split(ds)
	var mismatch *AxisMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, -1, mismatch.Index)
	assert.Equal(t, 3, mismatch.MeasuredLen)
	assert.Equal(t, 2, mismatch.RefLen)

	shifted, err := NewDataset("shifted", []float64{1, 2, 3.5}, [][]float64{{1, 2, 3}}, nil, nil)
	require.NoError(t, err)
	_, err = NewReferenceClassifier(shifted).Split(ds)
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Index)
	assert.Contains(t, mismatch.Error(), "shifted")
}

func TestReferenceClassifier_NoReference(t *testing.T) {
	ds := newTestDataset(t, "measurement", [][]float64{{1}})
	_, err := (&ReferenceClassifier{}).Classify(ds)
	assert.Error(t, err)
}
