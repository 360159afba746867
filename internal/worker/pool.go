// Package worker provides a bounded pool for running independent tasks with
// a fixed concurrency cap.
package worker

import "sync"

// Pool runs submitted jobs on at most maxWorkers concurrent goroutines.
type Pool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// NewPool creates a Pool with the given concurrency cap. A cap below one is
// raised to one.
func NewPool(maxWorkers int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Pool{
		semaphore: make(chan struct{}, maxWorkers),
	}
}

// Submit enqueues a job. It blocks while all workers are busy, so the
// concurrency cap also bounds the submission loop.
func (p *Pool) Submit(job func()) {
	p.wg.Add(1)
	p.semaphore <- struct{}{}

	go func() {
		defer p.wg.Done()
		defer func() { <-p.semaphore }()
		job()
	}()
}

// Wait blocks until every submitted job has completed.
func (p *Pool) Wait() {
	p.wg.Wait()
}
