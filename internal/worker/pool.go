package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/ppiankov/orgresolve/internal/model"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool manages a fixed set of workers that execute jobs from a bounded
// queue. A pool is used either for one batch (Submit then Wait) or as a
// long-lived service (TrySubmit, drain Results, Shutdown).
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return NewPoolSize(workers, workers*2)
}

// NewPoolSize creates a pool with an explicit queue capacity
func NewPoolSize(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers * 2
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, queueSize),
		results:    make(chan Result, queueSize),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// worker is the worker goroutine that processes jobs
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit submits a job to the pool, blocking while the queue is full
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// TrySubmit queues job without blocking. It fails with a queue_full error
// when the queue is at capacity or the pool is shut down.
func (p *Pool) TrySubmit(job Job) error {
	if p.ctx.Err() != nil {
		return model.NewError(model.KindQueueFull, "worker.submit", fmt.Errorf("pool is shut down"))
	}
	select {
	case p.jobQueue <- job:
		return nil
	default:
		return model.NewError(model.KindQueueFull, "worker.submit", fmt.Errorf("queue capacity %d reached", cap(p.jobQueue)))
	}
}

// Results exposes completed results. Long-lived pools must drain it.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Wait waits for all jobs to complete and returns the results
func (p *Pool) Wait() []Result {
	// Close job queue to signal workers to exit when done
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown cancels running jobs, stops the workers and closes Results
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
