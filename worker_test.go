package goramancore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunClassifiers(t *testing.T) {
	ds, _ := simulated(t)
	flat := newTestDataset(t, "flat", [][]float64{{1, 1}, {1, 1}})

	classifiers := []Classifier{
		NewThresholdClassifier(),
		NewOutlierClassifier(),
		NewReferenceClassifier(flat), // different axis length
		NewReferenceClassifier(ds),
	}

	var mu sync.Mutex
	wrapped := map[Method]int{}
	wrap := func(m Method, fn func()) {
		fn()
		mu.Lock()
		wrapped[m]++
		mu.Unlock()
	}

	for _, workers := range []int{0, 1, 3, 8} {
		outcomes := RunClassifiers(ds, classifiers, workers, wrap)
		require.Len(t, outcomes, len(classifiers))

		assert.Equal(t, ThresholdMethod, outcomes[0].Method)
		assert.NoError(t, outcomes[0].Err)
		assert.NotNil(t, outcomes[0].Classification.Threshold)

		assert.Equal(t, OutlierMethod, outcomes[1].Method)
		assert.NoError(t, outcomes[1].Err)

		var mismatch *AxisMismatchError
		assert.ErrorAs(t, outcomes[2].Err, &mismatch)

		assert.NoError(t, outcomes[3].Err)
		assert.Len(t, outcomes[3].Classification.Partition.Weak, ds.Len())

		for _, o := range outcomes {
			if o.Err == nil {
				assertCovers(t, o.Classification.Partition, ds.Len())
			}
		}
	}

	assert.Equal(t, map[Method]int{ThresholdMethod: 4, OutlierMethod: 4, ReferenceMethod: 8}, wrapped)
}

func TestRunClassifiers_MatchesSequentialRuns(t *testing.T) {
	ds, _ := simulated(t)
	classifiers := []Classifier{NewThresholdClassifier(), NewOutlierClassifier()}

	outcomes := RunClassifiers(ds, classifiers, 2, nil)
	for i, c := range classifiers {
		want, err := c.Classify(ds)
		require.NoError(t, err)
		assert.Equal(t, want, outcomes[i].Classification)
	}
}
