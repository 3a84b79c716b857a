package goramancore

import (
	"fmt"
)

// ParseError reports a malformed or unreadable input value. Row is 1-based
// and counts the header line, so it matches what an editor shows; Column is
// 0-based, -1 when the whole row is at fault.
type ParseError struct {
	Dataset string
	Row     int
	Column  int
	Err     error
}

func (e *ParseError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%s: row %d: %v", e.Dataset, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: row %d, column %d: %v", e.Dataset, e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnrecognizedSeparatorError is returned for a column separator outside ; , : .
type UnrecognizedSeparatorError struct {
	Separator string
}

func (e *UnrecognizedSeparatorError) Error() string {
	return fmt.Sprintf("unrecognized separator %q (want one of ; , : .)", e.Separator)
}

// AxisMismatchError reports that two datasets do not share a wavenumber axis.
// Index is the first differing position, or -1 when only the lengths differ.
type AxisMismatchError struct {
	Measurement string
	Reference   string
	MeasuredLen int
	RefLen      int
	Index       int
}

func (e *AxisMismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("wavenumber axis mismatch: %s has %d wavenumbers, %s has %d",
			e.Measurement, e.MeasuredLen, e.Reference, e.RefLen)
	}
	return fmt.Sprintf("wavenumber axis mismatch: %s and %s differ at column %d",
		e.Measurement, e.Reference, e.Index)
}

// DegenerateInputError is returned when a statistic is undefined for the
// given data, e.g. a threshold over identical peak intensities.
type DegenerateInputError struct {
	Dataset string
	Method  Method
	Reason  string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s: %s classifier: degenerate input: %s", e.Dataset, e.Method, e.Reason)
}

// EmptyPartitionError is a warning: a classifier put every observation on
// one side. It is never returned as a classification failure.
type EmptyPartitionError struct {
	Dataset string
	Method  Method
	Side    string
}

func (e *EmptyPartitionError) Error() string {
	return fmt.Sprintf("%s: %s classifier produced an empty %s set", e.Dataset, e.Method, e.Side)
}
