// Package worker runs background jobs that must not block request handlers,
// such as report-cache invalidation after a check-in.
package worker

import "sync"

// Task is a unit of background work.
type Task func()

// Pool executes submitted tasks on a fixed set of goroutines.
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool starts a pool with n workers; n <= 0 falls back to a single worker.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{tasks: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

type pool struct {
	tasks chan Task
	wg    sync.WaitGroup
}

func (p *pool) work() {
	defer p.wg.Done()
	for task := range p.tasks {
		if task != nil {
			task()
		}
	}
}

func (p *pool) Submit(t Task) {
	p.tasks <- t
}

// Stop drains pending tasks and waits for all workers to finish.
func (p *pool) Stop() {
	close(p.tasks)
	p.wg.Wait()
}
