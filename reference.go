package goramancore

import "errors"

// ReferenceClassifier compares each spectrum against a control (media or
// blank) dataset. A spectrum is weak when every one of its intensities
// occurs somewhere in the reference matrix, strong otherwise.
//
// Values are compared with exact float64 equality. Callers that need a
// tolerance must quantize both datasets before classifying. NaN never
// matches anything; +0 and -0 match each other.
type ReferenceClassifier struct {
	Reference *Dataset
}

func NewReferenceClassifier(reference *Dataset) *ReferenceClassifier {
	return &ReferenceClassifier{Reference: reference}
}

func (c *ReferenceClassifier) Method() Method {
	return ReferenceMethod
}

func (c *ReferenceClassifier) Classify(ds *Dataset) (Classification, error) {
	p, err := c.Split(ds)
	if err != nil {
		return Classification{}, err
	}
	return Classification{Method: ReferenceMethod, Partition: p}, nil
}

// Split partitions ds against the reference value set. The two datasets must
// share their wavenumber axis.
func (c *ReferenceClassifier) Split(ds *Dataset) (Partition, error) {
	if c.Reference == nil {
		return Partition{}, errors.New("reference classifier: no reference dataset")
	}
	if err := ds.SameAxis(c.Reference); err != nil {
		return Partition{}, err
	}

	values := c.referenceValues()
	return newPartition(ds.Len(), func(i int) bool {
		for _, v := range ds.Row(i) {
			if _, ok := values[v]; !ok {
				return true
			}
		}
		return false
	}), nil
}

func (c *ReferenceClassifier) referenceValues() map[float64]struct{} {
	ref := c.Reference
	values := make(map[float64]struct{}, ref.Len()*ref.Features())
	for i := 0; i < ref.Len(); i++ {
		for _, v := range ref.Row(i) {
			values[v] = struct{}{}
		}
	}
	return values
}
