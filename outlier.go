package goramancore

import (
	"fmt"
	"math"
	"sort"
)

const (
	DefaultLowerFence = 5.0
	DefaultUpperFence = 4.0
)

// OutlierClassifier flags an observation strong when, at any wavenumber, its
// intensity lies outside [Q1 - Lower*IQR, Q3 + Upper*IQR] of that wavenumber's
// column. The fences are recomputed per column, so a single extreme value at
// one wavenumber is enough to make a spectrum strong. The default fences
// are asymmetric and flag high tails more readily than low ones.
type OutlierClassifier struct {
	Lower float64
	Upper float64
}

func NewOutlierClassifier() *OutlierClassifier {
	return &OutlierClassifier{Lower: DefaultLowerFence, Upper: DefaultUpperFence}
}

// Fences holds the quartiles and outlier bounds of one wavenumber column.
type Fences struct {
	Q1, Q3 float64
	Lo, Hi float64
}

// Outside reports whether v lies strictly beyond either fence.
func (f Fences) Outside(v float64) bool {
	return v < f.Lo || v > f.Hi
}

// OutlierResult carries the partition and the wavenumbers whose columns
// contained at least one outlier, in axis order.
type OutlierResult struct {
	Partition    Partition
	Contributing []float64
	Columns      []int
}

func (c *OutlierClassifier) Method() Method {
	return OutlierMethod
}

func (c *OutlierClassifier) Classify(ds *Dataset) (Classification, error) {
	res, err := c.Split(ds)
	if err != nil {
		return Classification{}, err
	}
	return Classification{Method: OutlierMethod, Partition: res.Partition, Contributing: res.Contributing}, nil
}

func (c *OutlierClassifier) Split(ds *Dataset) (OutlierResult, error) {
	if c.Lower < 0 || c.Upper < 0 {
		return OutlierResult{}, fmt.Errorf("outlier classifier: fence multipliers must not be negative, got %v/%v", c.Lower, c.Upper)
	}
	n := ds.Len()
	if n == 0 {
		return OutlierResult{}, &DegenerateInputError{Dataset: ds.Name(), Method: OutlierMethod, Reason: "no observations"}
	}

	axis := ds.Axis()
	strong := make([]bool, n)
	res := OutlierResult{Contributing: []float64{}, Columns: []int{}}

	for j := range axis {
		col := ds.Col(j)
		f, err := c.fences(col)
		if err != nil {
			return OutlierResult{}, &DegenerateInputError{
				Dataset: ds.Name(),
				Method:  OutlierMethod,
				Reason:  fmt.Sprintf("wavenumber %v (column %d): %v", axis[j], j, err),
			}
		}

		contributing := false
		for i, v := range col {
			if f.Outside(v) {
				strong[i] = true
				contributing = true
			}
		}
		if contributing {
			res.Contributing = append(res.Contributing, axis[j])
			res.Columns = append(res.Columns, j)
		}
	}

	res.Partition = newPartition(n, func(i int) bool { return strong[i] })
	return res, nil
}

func (c *OutlierClassifier) fences(col []float64) (Fences, error) {
	sorted := append([]float64(nil), col...)
	for _, v := range sorted {
		if math.IsNaN(v) {
			return Fences{}, fmt.Errorf("NaN intensity")
		}
	}
	sort.Float64s(sorted)

	q1, q3 := Quantile(sorted, 0.25), Quantile(sorted, 0.75)
	iqr := q3 - q1
	return Fences{Q1: q1, Q3: q3, Lo: q1 - c.Lower*iqr, Hi: q3 + c.Upper*iqr}, nil
}

// Quantile returns the p-quantile of ascending data by linear interpolation
// between the closest ranks, h = (n-1)p. It returns NaN for empty data.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
