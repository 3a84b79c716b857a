package profiling

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kacperjurak/goramancore/internal/log"
)

func TestProfileFunc(t *testing.T) {
	log.SetLogger(zap.NewNop())

	called := false
	metrics := ProfileFunc("sleep", func() {
		called = true
		time.Sleep(2 * time.Millisecond)
	})

	assert.True(t, called)
	assert.Equal(t, "sleep", metrics.Name)
	assert.GreaterOrEqual(t, metrics.Duration, 2*time.Millisecond)
	assert.GreaterOrEqual(t, metrics.Milliseconds(), 2.0)
	assert.Positive(t, metrics.Goroutines)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.SetObservations(60)
	m.ObservePartition("threshold", 12, 48)
	m.ObservePartition("threshold", 10, 50)
	m.ObserveDuration("threshold", 3*time.Millisecond)
	m.Failure("reference")
	m.Failure("reference")

	assert.Equal(t, 60.0, testutil.ToFloat64(m.observations))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.strong.WithLabelValues("threshold")))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.weak.WithLabelValues("threshold")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.failures.WithLabelValues("reference")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_WriteFile(t *testing.T) {
	m := NewMetrics()
	m.ObservePartition("outlier", 3, 57)

	path := filepath.Join(t.TempDir(), "run.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `goramanclass_strong_observations{method="outlier"} 3`), text)
	assert.True(t, strings.Contains(text, `goramanclass_weak_observations{method="outlier"} 57`), text)
}
