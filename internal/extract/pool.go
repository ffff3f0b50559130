package extract

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"thumbtrack/internal/services"
)

// DefaultWorkers bounds concurrent decoder invocations when the caller does
// not supply a limit.
const DefaultWorkers = 8

// Job couples a plan index with its sample timestamp and destination path.
type Job struct {
	Index     int
	Timestamp float64
	Dest      string
}

// Coordinator executes one extraction per job under a bounded worker pool.
//
// Correctness does not depend on completion order: each job's outcome lands in
// a slot keyed by plan index, written exactly once, and the slots are only
// read after every worker has exited. The optional Progress callback is purely
// observational and never gates assembly.
type Coordinator struct {
	Workers  int
	Progress func(completed, total int)
}

// Run dispatches every job to the pool and blocks until all workers finish.
// On the first failure no further jobs are dispatched, in-flight decodes are
// cancelled, and the triggering error is surfaced wrapped in the pipeline
// failure marker, naming the offending timestamp.
func (c *Coordinator) Run(ctx context.Context, jobs []Job, extract func(context.Context, Job) error) error {
	if len(jobs) == 0 {
		return nil
	}
	workers := c.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// One slot per plan index, written at most once by the worker that owns
	// the job. Never keyed by completion order.
	results := make([]error, len(jobs))

	var (
		failOnce  sync.Once
		failErr   error
		failJob   Job
		completed atomic.Int64
	)

	queue := make(chan Job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				err := extract(runCtx, job)
				results[job.Index] = err
				if err != nil && runCtx.Err() == nil {
					failOnce.Do(func() {
						failErr = err
						failJob = job
					})
					cancel()
				}
				done := completed.Add(1)
				if c.Progress != nil {
					c.Progress(int(done), len(jobs))
				}
			}
		}()
	}

dispatch:
	for _, job := range jobs {
		if runCtx.Err() != nil {
			break
		}
		select {
		case <-runCtx.Done():
			break dispatch
		case queue <- job:
		}
	}
	close(queue)
	wg.Wait()

	if failErr != nil {
		return services.Wrap(services.ErrPipelineFailed, "extract",
			fmt.Sprintf("frame %d at %ss", failJob.Index, formatSeconds(failJob.Timestamp)),
			"aborting run", failErr)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, err := range results {
		// A failure that raced the cancellation check must still abort.
		if err != nil {
			return services.Wrap(services.ErrPipelineFailed, "extract",
				fmt.Sprintf("frame %d at %ss", i, formatSeconds(jobs[i].Timestamp)),
				"aborting run", err)
		}
	}
	if int(completed.Load()) != len(jobs) {
		return services.Wrap(services.ErrPipelineFailed, "extract", "", "extraction aborted before completion", context.Canceled)
	}
	return nil
}
