package processing

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kacperjurak/goramancore"
	"github.com/kacperjurak/goramancore/internal/log"
	"github.com/kacperjurak/goramancore/internal/utils"
	"github.com/kacperjurak/goramancore/pkg/config"
	"github.com/kacperjurak/goramancore/pkg/models"
	"github.com/kacperjurak/goramancore/pkg/profiling"
)

// RamanProcessor runs every classifier over a measurement dataset and
// assembles the report
type RamanProcessor struct {
	metrics *profiling.Metrics
}

// NewRamanProcessor creates a processor. Metrics may be nil.
func NewRamanProcessor(metrics *profiling.Metrics) *RamanProcessor {
	return &RamanProcessor{metrics: metrics}
}

// Classifiers builds the classifier set for cfg. The reference-match
// classifier is included only when a reference dataset is given.
func Classifiers(reference *goramancore.Dataset, cfg *config.Config) []goramancore.Classifier {
	classifiers := []goramancore.Classifier{
		&goramancore.ThresholdClassifier{Relax: cfg.RelaxFactor, Bins: cfg.HistogramBins},
		&goramancore.OutlierClassifier{Lower: cfg.LowerFence, Upper: cfg.UpperFence},
	}
	if reference != nil {
		classifiers = append(classifiers, goramancore.NewReferenceClassifier(reference))
	}
	return classifiers
}

// Process classifies measurement and summarizes each weak set over time.
// Only an invalid configuration or a missing measurement fails the run; a
// classifier error is recorded in that classifier's section.
func (p *RamanProcessor) Process(measurement, reference *goramancore.Dataset, cfg *config.Config) (models.Report, error) {
	if measurement == nil {
		return models.Report{}, errors.New("no measurement dataset")
	}
	if err := cfg.Validate(); err != nil {
		return models.Report{}, err
	}

	report := models.Report{
		ID:           utils.GenerateID(),
		Time:         time.Now().UTC(),
		Measurement:  measurement.Name(),
		Observations: measurement.Len(),
		Wavenumbers:  measurement.Features(),
	}
	if reference != nil {
		report.Reference = reference.Name()
	}

	log.Infow("Processing measurement",
		"id", report.ID,
		"measurement", report.Measurement,
		"reference", report.Reference,
		"observations", report.Observations,
		"wavenumbers", report.Wavenumbers,
		"workers", cfg.Workers)

	if p.metrics != nil {
		p.metrics.SetObservations(measurement.Len())
	}

	var mu sync.Mutex
	timings := make(map[goramancore.Method]profiling.ProfileMetrics)
	wrap := func(m goramancore.Method, fn func()) {
		pm := profiling.ProfileFunc(string(m), fn)
		mu.Lock()
		timings[m] = pm
		mu.Unlock()
	}

	outcomes := goramancore.RunClassifiers(measurement, Classifiers(reference, cfg), cfg.Workers, wrap)

	aggregator := &goramancore.Aggregator{Column: cfg.TimeColumn, Width: cfg.BucketWidth}
	timed := measurement.HasLabel(cfg.TimeColumn)
	if !timed {
		log.Warnw("No time column, skipping temporal analysis",
			"measurement", measurement.Name(),
			"column", cfg.TimeColumn)
	}

	for _, o := range outcomes {
		cr := p.classifierReport(measurement, o, aggregator, timed, cfg.WithSpectra)
		cr.DurationMs = timings[o.Method].Milliseconds()
		if p.metrics != nil {
			p.metrics.ObserveDuration(string(o.Method), timings[o.Method].Duration)
		}
		report.Classifiers = append(report.Classifiers, cr)
	}

	return report, nil
}

func (p *RamanProcessor) classifierReport(ds *goramancore.Dataset, o goramancore.Outcome, agg *goramancore.Aggregator, timed, withSpectra bool) models.ClassifierReport {
	cr := models.ClassifierReport{
		Method:  o.Method,
		Strong:  []int{},
		Weak:    []int{},
		Buckets: []models.BucketCount{},
		Trend:   []models.TrendPoint{},
	}

	if o.Err != nil {
		log.Errorw("Classifier failed",
			"measurement", ds.Name(),
			"method", o.Method,
			"error", o.Err)
		cr.Error = o.Err.Error()
		if p.metrics != nil {
			p.metrics.Failure(string(o.Method))
		}
		return cr
	}

	part := o.Classification.Partition
	cr.Strong = part.Strong
	cr.Weak = part.Weak
	cr.StrongCount = len(part.Strong)
	cr.WeakCount = len(part.Weak)
	cr.Threshold = o.Classification.Threshold
	cr.Contributing = o.Classification.Contributing

	log.Infow("Classified",
		"measurement", ds.Name(),
		"method", o.Method,
		"strong", cr.StrongCount,
		"weak", cr.WeakCount)
	if p.metrics != nil {
		p.metrics.ObservePartition(string(o.Method), cr.StrongCount, cr.WeakCount)
	}

	if err := part.Check(ds.Name(), o.Method); err != nil {
		log.Warnw("Empty partition side",
			"measurement", ds.Name(),
			"method", o.Method,
			"strong", cr.StrongCount,
			"weak", cr.WeakCount)
		cr.Warnings = append(cr.Warnings, err.Error())
	}

	if withSpectra {
		strong := models.SpectraOf(ds, part.Strong, "Strong")
		weak := models.SpectraOf(ds, part.Weak, "Weak")
		cr.StrongPlot, cr.WeakPlot = &strong, &weak
	}

	if !timed {
		return cr
	}
	tl, err := agg.Aggregate(ds, part.Weak)
	if err != nil {
		log.Errorw("Temporal analysis failed",
			"measurement", ds.Name(),
			"method", o.Method,
			"error", err)
		cr.Error = fmt.Sprintf("temporal analysis: %v", err)
		return cr
	}
	cr.Buckets, cr.Trend = models.FromTimeline(tl)
	return cr
}
