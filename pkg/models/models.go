package models

import (
	"strconv"
	"time"

	"github.com/kacperjurak/goramancore"
)

// Report is the result of one analysis run over a measurement dataset and
// an optional reference (media) dataset.
type Report struct {
	ID           string             `json:"id" yaml:"id" msgpack:"id"`
	Time         time.Time          `json:"time" yaml:"time" msgpack:"time"`
	Measurement  string             `json:"measurement" yaml:"measurement" msgpack:"measurement"`
	Reference    string             `json:"reference,omitempty" yaml:"reference,omitempty" msgpack:"reference,omitempty"`
	Observations int                `json:"observations" yaml:"observations" msgpack:"observations"`
	Wavenumbers  int                `json:"wavenumbers" yaml:"wavenumbers" msgpack:"wavenumbers"`
	Classifiers  []ClassifierReport `json:"classifiers" yaml:"classifiers" msgpack:"classifiers"`
}

// ClassifierReport holds one classifier's partition and the temporal
// summary of its weak set. Error is set when the classifier could not run;
// Warnings lists non-fatal findings such as an empty side.
type ClassifierReport struct {
	Method       goramancore.Method `json:"method" yaml:"method" msgpack:"method"`
	Strong       []int              `json:"strong" yaml:"strong" msgpack:"strong"`
	Weak         []int              `json:"weak" yaml:"weak" msgpack:"weak"`
	StrongCount  int                `json:"strong_count" yaml:"strong_count" msgpack:"strong_count"`
	WeakCount    int                `json:"weak_count" yaml:"weak_count" msgpack:"weak_count"`
	Threshold    *float64           `json:"threshold,omitempty" yaml:"threshold,omitempty" msgpack:"threshold,omitempty"`
	Contributing []float64          `json:"contributing_wavenumbers,omitempty" yaml:"contributing_wavenumbers,omitempty" msgpack:"contributing_wavenumbers,omitempty"`
	Buckets      []BucketCount      `json:"weak_buckets" yaml:"weak_buckets" msgpack:"weak_buckets"`
	Trend        []TrendPoint       `json:"weak_trend" yaml:"weak_trend" msgpack:"weak_trend"`
	Warnings     []string           `json:"warnings,omitempty" yaml:"warnings,omitempty" msgpack:"warnings,omitempty"`
	StrongPlot   *Spectra           `json:"strong_spectra,omitempty" yaml:"strong_spectra,omitempty" msgpack:"strong_spectra,omitempty"`
	WeakPlot     *Spectra           `json:"weak_spectra,omitempty" yaml:"weak_spectra,omitempty" msgpack:"weak_spectra,omitempty"`
	Error        string             `json:"error,omitempty" yaml:"error,omitempty" msgpack:"error,omitempty"`
	DurationMs   float64            `json:"duration_ms" yaml:"duration_ms" msgpack:"duration_ms"`
}

// BucketCount is the (bucket_start, bucket_end, count) triple consumed by
// bar-chart sinks.
type BucketCount struct {
	Start time.Time `json:"start" yaml:"start" msgpack:"start"`
	End   time.Time `json:"end" yaml:"end" msgpack:"end"`
	Count int       `json:"count" yaml:"count" msgpack:"count"`
}

// TrendPoint is the (timestamp, value) pair consumed by trend sinks.
type TrendPoint struct {
	Time  time.Time `json:"time" yaml:"time" msgpack:"time"`
	Value float64   `json:"value" yaml:"value" msgpack:"value"`
}

// FromTimeline converts a core timeline into the two sink shapes.
func FromTimeline(tl goramancore.Timeline) ([]BucketCount, []TrendPoint) {
	buckets := make([]BucketCount, len(tl.Buckets))
	for i, b := range tl.Buckets {
		buckets[i] = BucketCount{Start: b.Start, End: b.End, Count: b.Count}
	}
	trend := make([]TrendPoint, len(tl.Trend))
	for i, p := range tl.Trend {
		trend[i] = TrendPoint{Time: p.Time, Value: p.Mean}
	}
	return buckets, trend
}

// Spectra is the (axis, matrix, labels) shape consumed by spectrum plots.
type Spectra struct {
	Wavenumbers []float64   `json:"wavenumbers" yaml:"wavenumbers" msgpack:"wavenumbers"`
	Intensities [][]float64 `json:"intensities" yaml:"intensities" msgpack:"intensities"`
	Labels      []string    `json:"labels,omitempty" yaml:"labels,omitempty" msgpack:"labels,omitempty"`
}

// SpectraOf selects the given observations of ds, labelling each with
// prefix and its 1-based observation number.
func SpectraOf(ds *goramancore.Dataset, indices []int, prefix string) Spectra {
	s := Spectra{
		Wavenumbers: ds.Axis(),
		Intensities: make([][]float64, len(indices)),
		Labels:      make([]string, len(indices)),
	}
	for k, i := range indices {
		s.Intensities[k] = ds.Row(i)
		s.Labels[k] = prefix + " " + strconv.Itoa(i+1)
	}
	return s
}
