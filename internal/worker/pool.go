package worker

import (
	"context"
	"sync"
)

// Job is one unit of batch work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one executed job
type Result interface {
	GetError() error
}

// Pool runs submitted jobs on a fixed number of goroutines. Close marks the
// queue complete once submission is done; Wait collects results; Shutdown
// cancels in-flight jobs. The queue and result channels are bounded, so a
// caller must consume results concurrently with submission when the job
// count can exceed the buffers.
type Pool struct {
	workers int
	jobs    chan Job
	results chan Result

	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeJobs sync.Once
	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers. Jobs run under a
// context derived from ctx, so cancelling it stops the pool.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.drain()
		}()
	}
}

// drain pulls jobs until the queue closes or the pool is cancelled
func (p *Pool) drain() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, open := <-p.jobs:
			if !open {
				return
			}
			res := job.Execute(p.ctx)
			select {
			case p.results <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Submissions after Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Close marks the queue complete. Workers exit once the remaining jobs are
// drained. Submit must not be called after Close.
func (p *Pool) Close() {
	p.closeJobs.Do(func() {
		close(p.jobs)
	})
}

// Wait blocks until every worker has finished and returns the collected
// results. The caller must Close the pool when submission is done; results
// may be partial when the pool's context is cancelled first.
func (p *Pool) Wait() []Result {
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var collected []Result
	for res := range p.results {
		collected = append(collected, res)
	}
	return collected
}

// Shutdown cancels the pool and waits for the workers to exit
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
