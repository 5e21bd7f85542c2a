// Package serial provides a single-consumer task queue. The habit registry
// assumes one logical caller at a time; anything that can call it from
// multiple goroutines (HTTP handlers) submits closures here instead, and one
// goroutine runs them in arrival order.
package serial

import "sync"

// Queue runs submitted closures one at a time on a dedicated goroutine.
type Queue struct {
	tasks chan task
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

type task struct {
	fn   func()
	done chan struct{}
}

// NewQueue starts the consumer goroutine.
func NewQueue() *Queue {
	q := &Queue{tasks: make(chan task)}
	q.wg.Add(1)
	go q.run()
	return q
}

func (q *Queue) run() {
	defer q.wg.Done()
	for t := range q.tasks {
		t.fn()
		close(t.done)
	}
}

// Do submits fn and blocks until it has run. Returns false without running
// fn if the queue is already closed.
func (q *Queue) Do(fn func()) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	t := task{fn: fn, done: make(chan struct{})}
	q.tasks <- t
	q.mu.Unlock()
	<-t.done
	return true
}

// Close stops accepting work and waits for the in-flight task to finish.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()
	q.wg.Wait()
}
