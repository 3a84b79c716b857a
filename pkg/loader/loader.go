// Package loader reads and writes spectrum CSV files: a header row of
// metadata labels followed by wavenumbers, then one row per observation.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kacperjurak/goramancore"
)

// metaPrefix marks a metadata label in exported headers.
const metaPrefix = "META:"

// ValidSeparator reports whether sep is one of the accepted column separators.
func ValidSeparator(sep rune) bool {
	switch sep {
	case ';', ',', ':', '.':
		return true
	}
	return false
}

// LoadFile opens path and loads it as a dataset named after the file.
func LoadFile(path string, sep rune) (*goramancore.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f, filepath.Base(path), sep)
}

// Load parses a spectrum table. The first header cell that parses as a
// number starts the wavenumber axis; the cells before it are metadata labels.
func Load(r io.Reader, name string, sep rune) (*goramancore.Dataset, error) {
	if !ValidSeparator(sep) {
		return nil, &goramancore.UnrecognizedSeparatorError{Separator: string(sep)}
	}

	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &goramancore.ParseError{Dataset: name, Row: 1, Column: -1, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &goramancore.ParseError{Dataset: name, Row: 1, Column: -1, Err: err}
	}

	start := -1
	for i, cell := range header {
		cell = cleanCell(cell, sep)
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\ufeff")
		}
		header[i] = cell
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, &goramancore.ParseError{Dataset: name, Row: 1, Column: -1, Err: errors.New("header has no wavenumbers")}
	}

	labels := make([]string, start)
	for i := range labels {
		labels[i] = strings.TrimPrefix(header[i], metaPrefix)
	}

	axis := make([]float64, 0, len(header)-start)
	for j := start; j < len(header); j++ {
		v, err := strconv.ParseFloat(cleanCell(header[j], sep), 64)
		if err != nil {
			return nil, &goramancore.ParseError{Dataset: name, Row: 1, Column: j, Err: err}
		}
		axis = append(axis, v)
	}

	var (
		rows [][]float64
		meta [][]string
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			row := -1
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				row = csvErr.Line
			}
			return nil, &goramancore.ParseError{Dataset: name, Row: row, Column: -1, Err: err}
		}
		line, _ := cr.FieldPos(0)
		if len(record) != len(header) {
			return nil, &goramancore.ParseError{
				Dataset: name,
				Row:     line,
				Column:  -1,
				Err:     fmt.Errorf("%d columns, header has %d", len(record), len(header)),
			}
		}

		m := make([]string, start)
		for i := range m {
			m[i] = cleanCell(record[i], sep)
		}

		row := make([]float64, len(axis))
		for j := range row {
			v, err := strconv.ParseFloat(cleanCell(record[start+j], sep), 64)
			if err != nil {
				return nil, &goramancore.ParseError{Dataset: name, Row: line, Column: start + j, Err: err}
			}
			row[j] = v
		}

		rows = append(rows, row)
		meta = append(meta, m)
	}

	return goramancore.NewDataset(name, axis, rows, labels, meta)
}

// cleanCell drops quote characters and surrounding blanks, and turns a
// decimal comma into a point unless the comma is the separator.
func cleanCell(cell string, sep rune) string {
	cell = strings.TrimSpace(strings.ReplaceAll(cell, "'", ""))
	if sep != ',' {
		cell = strings.ReplaceAll(cell, ",", ".")
	}
	return cell
}

// WriteFile writes ds to path in the format Load reads.
func WriteFile(path string, ds *goramancore.Dataset, sep rune) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, ds, sep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes ds as a spectrum table. Metadata labels carry the META:
// prefix; with '.' as separator numbers use a decimal comma.
func Write(w io.Writer, ds *goramancore.Dataset, sep rune) error {
	if !ValidSeparator(sep) {
		return &goramancore.UnrecognizedSeparatorError{Separator: string(sep)}
	}

	cw := csv.NewWriter(w)
	cw.Comma = sep

	format := func(v float64) string {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if sep == '.' {
			s = strings.ReplaceAll(s, ".", ",")
		}
		return s
	}

	labels := ds.Labels()
	header := make([]string, 0, len(labels)+ds.Features())
	for _, l := range labels {
		header = append(header, metaPrefix+l)
	}
	for _, v := range ds.Axis() {
		header = append(header, format(v))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < ds.Len(); i++ {
		record := make([]string, 0, len(header))
		meta := ds.Meta(i)
		for _, l := range labels {
			record = append(record, meta[l])
		}
		for _, v := range ds.Row(i) {
			record = append(record, format(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
