package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kacperjurak/goramancore/pkg/models"
)

func jobs(n int) []Job {
	js := make([]Job, n)
	for i := range js {
		js[i] = Job{ID: fmt.Sprintf("job-%d", i), Path: fmt.Sprintf("m%d.csv", i)}
	}
	return js
}

func TestRun(t *testing.T) {
	var calls atomic.Int32
	processor := func(_ context.Context, job Job) (models.Report, error) {
		calls.Add(1)
		if job.Path == "m3.csv" {
			return models.Report{}, errors.New("broken file")
		}
		return models.Report{Measurement: job.Path}, nil
	}

	for _, workers := range []int{0, 1, 4} {
		results := Run(context.Background(), Options{Workers: workers, Processor: processor}, jobs(10))
		require.Len(t, results, 10)

		for i, r := range results {
			assert.Equal(t, fmt.Sprintf("job-%d", i), r.Job.ID)
			if i == 3 {
				assert.EqualError(t, r.Err, "broken file")
				continue
			}
			assert.NoError(t, r.Err)
			assert.Equal(t, r.Job.Path, r.Report.Measurement)
		}
	}
	assert.Equal(t, int32(30), calls.Load())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := func(context.Context, Job) (models.Report, error) {
		return models.Report{}, nil
	}
	results := Run(ctx, Options{Workers: 2, Processor: processor}, jobs(20))
	require.Len(t, results, 20)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestPool_SubmitAndClose(t *testing.T) {
	pool := New(context.Background(), Options{Workers: 2, Processor: func(_ context.Context, job Job) (models.Report, error) {
		return models.Report{ID: job.ID}, nil
	}})

	go func() {
		for _, j := range jobs(5) {
			assert.NoError(t, pool.Submit(context.Background(), j))
		}
		pool.Close()
		pool.Close()
	}()

	seen := map[string]bool{}
	for r := range pool.Results() {
		seen[r.Report.ID] = true
	}
	assert.Len(t, seen, 5)
}
