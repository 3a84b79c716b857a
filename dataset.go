package goramancore

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dataset is one loaded measurement file: a wavenumber axis shared by every
// spectrum, the N×F intensity matrix and the per-observation metadata.
// A Dataset is never modified after NewDataset returns; all accessors hand
// out copies.
type Dataset struct {
	name   string
	axis   []float64
	data   *mat.Dense // nil when the dataset has no observations
	labels []string
	meta   [][]string
}

// NewDataset validates and copies its inputs. Every row must have len(axis)
// values and meta, when given, must have one row of len(labels) cells per
// observation.
func NewDataset(name string, axis []float64, rows [][]float64, labels []string, meta [][]string) (*Dataset, error) {
	if len(axis) == 0 {
		return nil, fmt.Errorf("%s: no wavenumbers", name)
	}
	if meta != nil && len(meta) != len(rows) {
		return nil, fmt.Errorf("%s: %d metadata rows for %d observations", name, len(meta), len(rows))
	}

	ds := &Dataset{
		name:   name,
		axis:   append([]float64(nil), axis...),
		labels: append([]string(nil), labels...),
		meta:   make([][]string, len(rows)),
	}

	if len(rows) > 0 {
		ds.data = mat.NewDense(len(rows), len(axis), nil)
	}
	for i, row := range rows {
		if len(row) != len(axis) {
			return nil, fmt.Errorf("%s: observation %d has %d intensities, axis has %d", name, i, len(row), len(axis))
		}
		ds.data.SetRow(i, row)

		if meta == nil {
			ds.meta[i] = make([]string, len(labels))
			continue
		}
		if len(meta[i]) != len(labels) {
			return nil, fmt.Errorf("%s: observation %d has %d metadata cells, %d labels", name, i, len(meta[i]), len(labels))
		}
		ds.meta[i] = append([]string(nil), meta[i]...)
	}

	return ds, nil
}

func (d *Dataset) Name() string {
	return d.name
}

// Len returns the number of observations N.
func (d *Dataset) Len() int {
	if d.data == nil {
		return 0
	}
	r, _ := d.data.Dims()
	return r
}

// Features returns the number of wavenumbers F.
func (d *Dataset) Features() int {
	return len(d.axis)
}

func (d *Dataset) Axis() []float64 {
	return append([]float64(nil), d.axis...)
}

// Row returns a copy of spectrum i.
func (d *Dataset) Row(i int) []float64 {
	return mat.Row(nil, i, d.data)
}

// Col returns a copy of the intensities of every observation at wavenumber
// column j.
func (d *Dataset) Col(j int) []float64 {
	if d.data == nil {
		return []float64{}
	}
	return mat.Col(nil, j, d.data)
}

func (d *Dataset) At(i, j int) float64 {
	return d.data.At(i, j)
}

// Rows returns a copy of the full intensity matrix, one slice per spectrum.
func (d *Dataset) Rows() [][]float64 {
	rows := make([][]float64, d.Len())
	for i := range rows {
		rows[i] = d.Row(i)
	}
	return rows
}

// Labels returns the metadata header labels.
func (d *Dataset) Labels() []string {
	return append([]string(nil), d.labels...)
}

// HasLabel reports whether a metadata column with the given label exists.
func (d *Dataset) HasLabel(label string) bool {
	return d.labelIndex(label) >= 0
}

// MetaColumn returns the values of one metadata column in row order.
func (d *Dataset) MetaColumn(label string) ([]string, error) {
	j := d.labelIndex(label)
	if j < 0 {
		return nil, fmt.Errorf("%s: no metadata column %q", d.name, label)
	}
	col := make([]string, len(d.meta))
	for i, row := range d.meta {
		col[i] = row[j]
	}
	return col, nil
}

// Meta returns observation i's metadata keyed by header label.
func (d *Dataset) Meta(i int) map[string]string {
	m := make(map[string]string, len(d.labels))
	for j, label := range d.labels {
		m[label] = d.meta[i][j]
	}
	return m
}

// SameAxis checks that other shares this dataset's wavenumber axis exactly.
func (d *Dataset) SameAxis(other *Dataset) error {
	if len(d.axis) != len(other.axis) {
		return &AxisMismatchError{
			Measurement: d.name,
			Reference:   other.name,
			MeasuredLen: len(d.axis),
			RefLen:      len(other.axis),
			Index:       -1,
		}
	}
	if floats.Equal(d.axis, other.axis) {
		return nil
	}
	for j := range d.axis {
		if d.axis[j] != other.axis[j] {
			return &AxisMismatchError{
				Measurement: d.name,
				Reference:   other.name,
				MeasuredLen: len(d.axis),
				RefLen:      len(other.axis),
				Index:       j,
			}
		}
	}
	return nil
}

func (d *Dataset) labelIndex(label string) int {
	for j, l := range d.labels {
		if l == label {
			return j
		}
	}
	return -1
}
