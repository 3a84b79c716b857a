package worker

import (
	"context"
	"sync"
	"time"

	"github.com/kacperjurak/goramancore/internal/log"
	"github.com/kacperjurak/goramancore/pkg/models"
)

// Job is one measurement file to classify
type Job struct {
	ID   string
	Path string
}

// Result is the outcome of one job
type Result struct {
	Job            Job
	Report         models.Report
	Err            error
	ProcessingTime time.Duration
}

// ProcessorFunc turns a job into a report
type ProcessorFunc func(ctx context.Context, job Job) (models.Report, error)

// Options holds configuration for creating a new worker pool
type Options struct {
	Workers   int
	Processor ProcessorFunc
}

// Pool classifies measurement files concurrently
type Pool struct {
	jobs      chan Job
	results   chan Result
	workers   int
	processor ProcessorFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a worker pool and starts its workers. Results must be drained
// while jobs are submitted.
func New(ctx context.Context, opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	// queue up to two jobs per worker before Submit blocks
	pool := &Pool{
		jobs:      make(chan Job, opts.Workers*2),
		results:   make(chan Result, opts.Workers*2),
		workers:   opts.Workers,
		processor: opts.Processor,
	}

	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker(ctx, i)
	}
	log.Debugw("Worker pool started", "workers", pool.workers)
	return pool
}

// worker processes jobs until the jobs channel is closed
func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		if err := ctx.Err(); err != nil {
			p.results <- Result{Job: job, Err: err}
			continue
		}

		startTime := time.Now()
		report, err := p.processor(ctx, job)
		processingTime := time.Since(startTime)

		log.Debugw("Job finished",
			"worker", id,
			"job", job.ID,
			"path", job.Path,
			"duration_ms", float64(processingTime.Nanoseconds())/1e6,
			"error", err)

		p.results <- Result{Job: job, Report: report, Err: err, ProcessingTime: processingTime}
	}
}

// Submit queues a job, blocking while the queue is full.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	select {
	case p.jobs <- job:
		return nil
	default:
		log.Debugw("Worker pool queue full, job delayed", "job", job.ID)
	}

	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results returns the channel results are delivered on. It is closed once
// Close has been called and every worker has finished.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close stops accepting jobs and closes Results when the workers are done.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
		go func() {
			p.wg.Wait()
			close(p.results)
			log.Debugw("Worker pool shutdown complete")
		}()
	})
}

// Run submits every job, waits for all of them and returns the results in
// job order. Job IDs must be unique.
func Run(ctx context.Context, opts Options, jobs []Job) []Result {
	pool := New(ctx, opts)

	index := make(map[string]int, len(jobs))
	for i, j := range jobs {
		index[j.ID] = i
	}

	go func() {
		defer pool.Close()
		for i, j := range jobs {
			if err := pool.Submit(ctx, j); err != nil {
				for _, rest := range jobs[i:] {
					pool.results <- Result{Job: rest, Err: err}
				}
				return
			}
		}
	}()

	results := make([]Result, len(jobs))
	for r := range pool.Results() {
		results[index[r.Job.ID]] = r
	}
	return results
}
