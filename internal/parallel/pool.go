// Package parallel runs independent checking jobs concurrently. The CLI
// uses it to check several source files at once; each job owns its own
// session, so jobs share nothing but the pool.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool manages a fixed set of goroutines that execute submitted
// tasks. Submit blocks once the task buffer is full, which keeps a large
// batch from queueing every job up front.
type WorkerPool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If maxWorkers is 0 or negative, it defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	return pool
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int { return wp.maxWorkers }

func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for {
		select {
		case task, ok := <-wp.taskChan:
			if !ok {
				return
			}
			if task != nil {
				task()
			}
		case <-wp.shutdownChan:
			return
		}
	}
}

// Submit submits a task to the worker pool for execution.
// If the pool is full, this call will block until a worker becomes available.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops the workers after the tasks they are running finish.
// Queued tasks that no worker has picked up are dropped.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		wp.workerWg.Wait()
	})
}

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")

// Map applies fn to every job on the pool and returns the results in job
// order, whatever order the jobs finish in. Jobs that could not be submitted
// because ctx ended leave the zero value in their slot; the context error is
// returned alongside.
func Map[J, R any](ctx context.Context, wp *WorkerPool, jobs []J, fn func(context.Context, J) R) ([]R, error) {
	results := make([]R, len(jobs))
	var wg sync.WaitGroup
	var submitErr error
	for i, job := range jobs {
		i, job := i, job
		wg.Add(1)
		err := wp.Submit(ctx, func() {
			defer wg.Done()
			results[i] = fn(ctx, job)
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()
	return results, submitErr
}
