package goramancore

import (
	"sync"
)

// Outcome is the result of running one classifier in the pool.
type Outcome struct {
	Classification Classification
	Method         Method
	Err            error
}

type job struct {
	index      int
	classifier Classifier
}

type result struct {
	index   int
	outcome Outcome
}

// RunClassifiers runs every classifier against ds on a pool of workers and
// returns the outcomes in classifier order. A failing classifier does not
// stop the others. Wrap, when non-nil, is called around each run, e.g. for
// profiling.
func RunClassifiers(ds *Dataset, classifiers []Classifier, workers int, wrap func(Method, func())) []Outcome {
	if workers <= 0 {
		workers = 1
	}
	if wrap == nil {
		wrap = func(_ Method, fn func()) { fn() }
	}

	jobs := make(chan job, len(classifiers))
	results := make(chan result, len(classifiers))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out := Outcome{Method: j.classifier.Method()}
				wrap(out.Method, func() {
					out.Classification, out.Err = j.classifier.Classify(ds)
				})
				results <- result{index: j.index, outcome: out}
			}
		}()
	}

	for i, c := range classifiers {
		jobs <- job{index: i, classifier: c}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]Outcome, len(classifiers))
	for r := range results {
		outcomes[r.index] = r.outcome
	}
	return outcomes
}
