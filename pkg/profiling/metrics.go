package profiling

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "goramanclass"

// Metrics collects per-classifier run metrics in a private registry so a
// run can dump them to a textfile for node_exporter.
type Metrics struct {
	registry *prometheus.Registry

	duration     *prometheus.HistogramVec
	strong       *prometheus.GaugeVec
	weak         *prometheus.GaugeVec
	failures     *prometheus.CounterVec
	observations prometheus.Gauge
}

// NewMetrics registers the classifier metrics in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classifier_duration_seconds",
			Help:      "Time spent partitioning one dataset.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}, []string{"method"}),
		strong: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "strong_observations",
			Help:      "Size of the strong set of the last run.",
		}, []string{"method"}),
		weak: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weak_observations",
			Help:      "Size of the weak set of the last run.",
		}, []string{"method"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifier_failures_total",
			Help:      "Classifier runs that returned an error.",
		}, []string{"method"}),
		observations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "observations",
			Help:      "Observations in the last measurement dataset.",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveDuration(method string, d time.Duration) {
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) ObservePartition(method string, strong, weak int) {
	m.strong.WithLabelValues(method).Set(float64(strong))
	m.weak.WithLabelValues(method).Set(float64(weak))
}

func (m *Metrics) Failure(method string) {
	m.failures.WithLabelValues(method).Inc()
}

func (m *Metrics) SetObservations(n int) {
	m.observations.Set(float64(n))
}

// WriteFile dumps every metric in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
