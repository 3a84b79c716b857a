package goramancore

import (
	"fmt"
	"strings"
)

// Method names a classification heuristic.
type Method string

const (
	ThresholdMethod Method = "threshold"
	OutlierMethod   Method = "outlier"
	ReferenceMethod Method = "reference"
)

// ParseMethod accepts a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case ThresholdMethod, OutlierMethod, ReferenceMethod:
		return m, nil
	}
	return "", fmt.Errorf("unknown classification method %q", s)
}

// Partition splits the observation indices 0..N-1 of one dataset into a
// strong (signal-bearing) and a weak (background) set. Both slices are
// ascending, disjoint and together cover every index exactly once.
type Partition struct {
	Strong []int `json:"strong" yaml:"strong" msgpack:"strong"`
	Weak   []int `json:"weak" yaml:"weak" msgpack:"weak"`
}

func newPartition(n int, strong func(i int) bool) Partition {
	p := Partition{Strong: []int{}, Weak: []int{}}
	for i := 0; i < n; i++ {
		if strong(i) {
			p.Strong = append(p.Strong, i)
		} else {
			p.Weak = append(p.Weak, i)
		}
	}
	return p
}

// Len returns the number of partitioned observations.
func (p Partition) Len() int {
	return len(p.Strong) + len(p.Weak)
}

// Check returns an *EmptyPartitionError when either side is empty. The
// result is a warning for reporting, not a failure.
func (p Partition) Check(dataset string, method Method) error {
	switch {
	case len(p.Strong) == 0:
		return &EmptyPartitionError{Dataset: dataset, Method: method, Side: "strong"}
	case len(p.Weak) == 0:
		return &EmptyPartitionError{Dataset: dataset, Method: method, Side: "weak"}
	}
	return nil
}

// Classification is the outcome of one classifier run. Threshold is set by
// the threshold classifier only, Contributing by the outlier classifier only.
type Classification struct {
	Method       Method
	Partition    Partition
	Threshold    *float64
	Contributing []float64
}

// Classifier partitions the observations of a dataset. Implementations must
// not modify the dataset.
type Classifier interface {
	Method() Method
	Classify(ds *Dataset) (Classification, error)
}
