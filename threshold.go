package goramancore

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultRelaxFactor scales the two-class threshold down so that
	// moderately intense spectra still count as strong.
	DefaultRelaxFactor = 0.715
	// DefaultHistogramBins is the peak-intensity histogram resolution used by
	// the two-class threshold. The threshold is always a bin center, so the
	// bin count directly bounds its precision.
	DefaultHistogramBins = 256
)

// ThresholdClassifier labels an observation strong when its peak intensity
// reaches a relaxed two-class (Otsu) threshold computed over all peaks.
type ThresholdClassifier struct {
	Relax float64
	Bins  int
}

func NewThresholdClassifier() *ThresholdClassifier {
	return &ThresholdClassifier{Relax: DefaultRelaxFactor, Bins: DefaultHistogramBins}
}

// ThresholdResult carries the partition together with the threshold before
// and after relaxation.
type ThresholdResult struct {
	Partition Partition
	Threshold float64
	Relaxed   float64
	Peaks     []float64
}

func (c *ThresholdClassifier) Method() Method {
	return ThresholdMethod
}

func (c *ThresholdClassifier) Classify(ds *Dataset) (Classification, error) {
	res, err := c.Split(ds)
	if err != nil {
		return Classification{}, err
	}
	relaxed := res.Relaxed
	return Classification{Method: ThresholdMethod, Partition: res.Partition, Threshold: &relaxed}, nil
}

// Split computes the peak intensities, their separating threshold t and the
// partition strong = {i : peak_i >= t*Relax}.
func (c *ThresholdClassifier) Split(ds *Dataset) (ThresholdResult, error) {
	if c.Relax <= 0 {
		return ThresholdResult{}, fmt.Errorf("threshold classifier: relax factor must be positive, got %v", c.Relax)
	}
	if c.Bins < 2 {
		return ThresholdResult{}, fmt.Errorf("threshold classifier: need at least 2 histogram bins, got %d", c.Bins)
	}

	peaks := PeakIntensities(ds)
	t, reason := otsuThreshold(peaks, c.Bins)
	if reason != "" {
		return ThresholdResult{}, &DegenerateInputError{Dataset: ds.Name(), Method: ThresholdMethod, Reason: reason}
	}

	relaxed := t * c.Relax
	return ThresholdResult{
		Partition: newPartition(len(peaks), func(i int) bool { return peaks[i] >= relaxed }),
		Threshold: t,
		Relaxed:   relaxed,
		Peaks:     peaks,
	}, nil
}

// PeakIntensities returns the maximum intensity of every spectrum.
func PeakIntensities(ds *Dataset) []float64 {
	peaks := make([]float64, ds.Len())
	for i := range peaks {
		peaks[i] = floats.Max(ds.Row(i))
	}
	return peaks
}

// otsuThreshold picks the histogram bin center that maximizes the
// between-class variance of a binary split of values. When several splits
// tie, the mean of their bin indices is used. A non-empty reason means the
// threshold is undefined.
func otsuThreshold(values []float64, bins int) (float64, string) {
	if len(values) == 0 {
		return 0, "no observations"
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, "non-finite peak intensity"
		}
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		return 0, fmt.Sprintf("all %d peak intensities equal %v", len(values), lo)
	}

	width := (hi - lo) / float64(bins)
	hist := make([]float64, bins)
	for _, v := range values {
		k := int((v - lo) / width)
		if k >= bins {
			k = bins - 1
		}
		hist[k]++
	}

	centers := make([]float64, bins)
	for k := range centers {
		centers[k] = lo + (float64(k)+0.5)*width
	}

	// cumulative weights and first moments from the left and from the right
	w1 := make([]float64, bins)
	m1 := make([]float64, bins)
	w2 := make([]float64, bins)
	m2 := make([]float64, bins)
	var cw, cm float64
	for k := 0; k < bins; k++ {
		cw += hist[k]
		cm += hist[k] * centers[k]
		w1[k], m1[k] = cw, cm
	}
	cw, cm = 0, 0
	for k := bins - 1; k >= 0; k-- {
		cw += hist[k]
		cm += hist[k] * centers[k]
		w2[k], m2[k] = cw, cm
	}

	best := math.Inf(-1)
	var idxSum, idxCount float64
	for k := 0; k < bins-1; k++ {
		if w1[k] == 0 || w2[k+1] == 0 {
			continue
		}
		d := m1[k]/w1[k] - m2[k+1]/w2[k+1]
		v := w1[k] * w2[k+1] * d * d
		switch {
		case v > best:
			best = v
			idxSum, idxCount = float64(k), 1
		case v == best:
			idxSum += float64(k)
			idxCount++
		}
	}
	if idxCount == 0 {
		return 0, "histogram has a single populated bin"
	}

	return lo + (idxSum/idxCount+0.5)*width, ""
}
