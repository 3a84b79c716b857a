package goramancore

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Peak is a Lorentzian band: Height at Center, full width at half maximum
// Width, all in wavenumber units.
type Peak struct {
	Center float64
	Height float64
	Width  float64
}

// SpectrumAt evaluates baseline plus the sum of peaks at every wavenumber.
func SpectrumAt(axis []float64, baseline float64, peaks []Peak) []float64 {
	res := make([]float64, len(axis))
	for i, w := range axis {
		v := baseline
		for _, p := range peaks {
			hw := p.Width / 2
			d := w - p.Center
			v += p.Height * hw * hw / (d*d + hw*hw)
		}
		res[i] = v
	}
	return res
}

// SpectrumNoisy is SpectrumAt with uniform noise of +-noiseLevel added to each
// point, rounded to the given number of decimals.
func SpectrumNoisy(rng *rand.Rand, axis []float64, baseline float64, peaks []Peak, noiseLevel float64, decimals int) []float64 {
	s := SpectrumAt(axis, baseline, peaks)
	for i, v := range s {
		s[i] = round(v+(rng.Float64()*2-1)*noiseLevel, decimals)
	}
	return s
}

// LinearAxis returns n wavenumbers evenly spaced over [from, to].
func LinearAxis(from, to float64, n int) []float64 {
	axis := make([]float64, n)
	if n == 1 {
		axis[0] = from
		return axis
	}
	step := (to - from) / float64(n-1)
	for i := range axis {
		axis[i] = round(from+float64(i)*step, 3)
	}
	return axis
}

// SimOptions describes a synthetic dataset: weak spectra are baseline plus
// noise, strong spectra additionally carry Peaks.
type SimOptions struct {
	Name         string
	Axis         []float64
	Observations int
	StrongShare  float64
	Baseline     float64
	Peaks        []Peak
	NoiseLevel   float64
	Decimals     int
	Start        time.Time
	Interval     time.Duration
	Seed         int64
}

// DefaultSimOptions mimics a one-hour acquisition with one spectrum per
// minute over 400..1800 cm-1.
func DefaultSimOptions() SimOptions {
	return SimOptions{
		Name:         "synthetic",
		Axis:         LinearAxis(400, 1800, 200),
		Observations: 60,
		StrongShare:  0.2,
		Baseline:     100,
		Peaks: []Peak{
			{Center: 1001, Height: 400, Width: 12},
			{Center: 1450, Height: 250, Width: 30},
		},
		NoiseLevel: 2,
		Decimals:   0,
		Start:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:   time.Minute,
		Seed:       1,
	}
}

// Simulate generates a dataset with "Sample" and "DateTime" metadata and
// reports which observations were generated with peaks.
func Simulate(opts SimOptions) (*Dataset, []bool, error) {
	if opts.Observations < 0 {
		return nil, nil, fmt.Errorf("simulate: negative observation count %d", opts.Observations)
	}
	if opts.StrongShare < 0 || opts.StrongShare > 1 {
		return nil, nil, fmt.Errorf("simulate: strong share %v outside [0,1]", opts.StrongShare)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	rows := make([][]float64, opts.Observations)
	meta := make([][]string, opts.Observations)
	truth := make([]bool, opts.Observations)

	for i := range rows {
		truth[i] = rng.Float64() < opts.StrongShare
		var peaks []Peak
		if truth[i] {
			peaks = opts.Peaks
		}
		rows[i] = SpectrumNoisy(rng, opts.Axis, opts.Baseline, peaks, opts.NoiseLevel, opts.Decimals)
		ts := opts.Start.Add(time.Duration(i) * opts.Interval)
		meta[i] = []string{fmt.Sprintf("S%03d", i+1), ts.Format("2006-01-02 15:04:05")}
	}

	ds, err := NewDataset(opts.Name, opts.Axis, rows, []string{"Sample", DefaultTimeColumn}, meta)
	if err != nil {
		return nil, nil, err
	}
	return ds, truth, nil
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
