// Package worker provides the background pool used for writes that must
// not hold up a response, such as device status audit logs.
package worker

import "sync"

// Task is a unit of background work.
type Task func()

// Pool accepts tasks and runs them on a fixed set of goroutines.
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool starts a pool with n workers sharing a small buffered queue.
// n<=0 falls back to a single worker.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{queue: make(chan Task, n*4)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.run()
	}
	return p
}

type pool struct {
	queue chan Task
	wg    sync.WaitGroup
}

func (p *pool) run() {
	defer p.wg.Done()
	for task := range p.queue {
		if task != nil {
			task()
		}
	}
}

// Submit enqueues a task. It blocks when the queue is full so callers
// apply backpressure instead of dropping work.
func (p *pool) Submit(t Task) {
	p.queue <- t
}

// Stop drains the queue and waits for in-flight tasks to finish.
func (p *pool) Stop() {
	close(p.queue)
	p.wg.Wait()
}
