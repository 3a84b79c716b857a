package goramancore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdClassifier_IsolatesBrightSpectrum(t *testing.T) {
	ds := newTestDataset(t, "scenario", [][]float64{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
		{10, 10, 10},
	})

	res, err := NewThresholdClassifier().Split(ds)
	require.NoError(t, err)

	assert.Equal(t, []int{3}, res.Partition.Strong)
	assert.Equal(t, []int{0, 1, 2}, res.Partition.Weak)
	assert.Equal(t, []float64{1, 1, 1, 10}, res.Peaks)

	// every split between the two populated bins ties; the mean index is 127
	width := 9.0 / DefaultHistogramBins
	assert.InDelta(t, 1+127.5*width, res.Threshold, 1e-12)
	assert.InDelta(t, res.Threshold*DefaultRelaxFactor, res.Relaxed, 1e-12)
}

func TestThresholdClassifier_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{"identical peaks", [][]float64{{3, 1}, {1, 3}, {2, 3}}},
		{"single observation", [][]float64{{5, 7, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewThresholdClassifier().Classify(newTestDataset(t, tt.name, tt.rows))
			var degenerate *DegenerateInputError
			require.ErrorAs(t, err, &degenerate)
			assert.Equal(t, ThresholdMethod, degenerate.Method)
			assert.Equal(t, tt.name, degenerate.Dataset)
		})
	}
}

func TestThresholdClassifier_EmptyDataset(t *testing.T) {
	ds, err := NewDataset("empty", []float64{1, 2}, nil, nil, nil)
	require.NoError(t, err)

	_, err = NewThresholdClassifier().Split(ds)
	var degenerate *DegenerateInputError
	require.ErrorAs(t, err, &degenerate)
}

func TestThresholdClassifier_InvalidSettings(t *testing.T) {
	ds := newTestDataset(t, "x", [][]float64{{1}, {2}})

	_, err := (&ThresholdClassifier{Relax: 0, Bins: 256}).Split(ds)
	assert.Error(t, err)
	_, err = (&ThresholdClassifier{Relax: 0.7, Bins: 1}).Split(ds)
	assert.Error(t, err)
}

func TestThresholdClassifier_RelaxMonotonic(t *testing.T) {
	ds, _ := simulated(t)

	lastWeak := -1
	for _, r := range []float64{0.1, 0.3, 0.5, DefaultRelaxFactor, 0.85, 1} {
		res, err := (&ThresholdClassifier{Relax: r, Bins: DefaultHistogramBins}).Split(ds)
		require.NoError(t, err)
		assertCovers(t, res.Partition, ds.Len())

		assert.GreaterOrEqual(t, len(res.Partition.Weak), lastWeak, "relax %v", r)
		lastWeak = len(res.Partition.Weak)
	}
}

func TestThresholdClassifier_RecoversSimulatedPeaks(t *testing.T) {
	ds, truth := simulated(t)

	c := NewThresholdClassifier()
	first, err := c.Classify(ds)
	require.NoError(t, err)
	assert.Equal(t, trueIndices(truth), first.Partition.Strong)
	require.NotNil(t, first.Threshold)

	second, err := c.Classify(ds)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPeakIntensities(t *testing.T) {
	ds := newTestDataset(t, "p", [][]float64{{-1, -5, -3}, {0, 8, 2}})
	assert.Equal(t, []float64{-1, 8}, PeakIntensities(ds))
}
