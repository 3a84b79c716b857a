package goramancore

import (
	"fmt"
	"sort"
	"time"

	"github.com/jinzhu/now"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultBucketWidth = 10 * time.Minute
	DefaultTimeColumn  = "DateTime"
)

var timeParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: append([]string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"02.01.2006 15:04:05",
		"02.01.2006 15:04",
	}, now.TimeFormats...),
}

// ParseTimestamp parses a metadata timestamp. Values without a zone are
// taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	return timeParser.Parse(s)
}

// BucketStart floors t onto a grid of width-wide intervals aligned to the
// Unix epoch. It is not calendar aware.
func BucketStart(t time.Time, width time.Duration) time.Time {
	ns := t.UnixNano()
	w := int64(width)
	rem := ns % w
	if rem < 0 {
		rem += w
	}
	return time.Unix(0, ns-rem).UTC()
}

// Bucket is the half-open interval [Start, End) and the number of
// observations whose timestamps fall into it.
type Bucket struct {
	Start time.Time `json:"start" yaml:"start" msgpack:"start"`
	End   time.Time `json:"end" yaml:"end" msgpack:"end"`
	Count int       `json:"count" yaml:"count" msgpack:"count"`
}

// TrendPoint is one observation's mean intensity across the wavenumber axis,
// keyed by its original (not bucketed) timestamp.
type TrendPoint struct {
	Index int       `json:"index" yaml:"index" msgpack:"index"`
	Time  time.Time `json:"time" yaml:"time" msgpack:"time"`
	Mean  float64   `json:"mean" yaml:"mean" msgpack:"mean"`
}

// Timeline is the temporal summary of a subset of observations: buckets in
// ascending time order and the mean-intensity trend in row order.
type Timeline struct {
	Buckets []Bucket
	Trend   []TrendPoint
}

// BucketTrend returns the trend points whose timestamps fall into bucket k.
func (t Timeline) BucketTrend(k int) []TrendPoint {
	b := t.Buckets[k]
	points := []TrendPoint{}
	for _, p := range t.Trend {
		if !p.Time.Before(b.Start) && p.Time.Before(b.End) {
			points = append(points, p)
		}
	}
	return points
}

// Aggregator buckets a subset of observations by the timestamp in Column.
type Aggregator struct {
	Column string
	Width  time.Duration
}

func NewAggregator() *Aggregator {
	return &Aggregator{Column: DefaultTimeColumn, Width: DefaultBucketWidth}
}

// Aggregate summarizes the observations listed in indices. An empty subset
// yields an empty timeline.
func (a *Aggregator) Aggregate(ds *Dataset, indices []int) (Timeline, error) {
	tl := Timeline{Buckets: []Bucket{}, Trend: []TrendPoint{}}
	if a.Width <= 0 {
		return tl, fmt.Errorf("bucket width must be positive, got %v", a.Width)
	}
	if len(indices) == 0 {
		return tl, nil
	}

	column, err := ds.MetaColumn(a.Column)
	if err != nil {
		return tl, err
	}

	counts := make(map[int64]int)
	for _, i := range indices {
		if i < 0 || i >= ds.Len() {
			return Timeline{}, fmt.Errorf("%s: observation index %d out of range [0,%d)", ds.Name(), i, ds.Len())
		}
		ts, err := ParseTimestamp(column[i])
		if err != nil {
			return Timeline{}, &ParseError{Dataset: ds.Name(), Row: i + 2, Column: ds.labelIndex(a.Column), Err: err}
		}

		counts[BucketStart(ts, a.Width).UnixNano()]++
		tl.Trend = append(tl.Trend, TrendPoint{Index: i, Time: ts, Mean: stat.Mean(ds.Row(i), nil)})
	}

	starts := make([]int64, 0, len(counts))
	for s := range counts {
		starts = append(starts, s)
	}
	sort.Slice(starts, func(x, y int) bool { return starts[x] < starts[y] })

	for _, s := range starts {
		start := time.Unix(0, s).UTC()
		tl.Buckets = append(tl.Buckets, Bucket{Start: start, End: start.Add(a.Width), Count: counts[s]})
	}
	return tl, nil
}
