package translation

import (
	"context"
	"fmt"
	"sync"
)

// Future is the pending outcome of a queued operation.
type Future struct {
	done   chan struct{}
	result *Result
	err    error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) resolve(result *Result, err error) {
	f.result, f.err = result, err
	close(f.done)
}

// Done is closed once the operation has finished.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the operation finishes or ctx is done. Giving up on the
// wait does not stop the operation.
func (f *Future) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type queuedOp struct {
	run    func() (*Result, error)
	future *Future
}

// Queue runs operations one at a time in submission order on a single
// worker goroutine. A failed operation only fails its own Future.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []*queuedOp
	closed  bool
	wg      sync.WaitGroup
}

// NewQueue creates a queue and starts its worker.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)

	q.wg.Add(1)
	go q.worker()

	return q
}

// Enqueue schedules op after every previously enqueued operation.
func (q *Queue) Enqueue(op func() (*Result, error)) *Future {
	future := newFuture()

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		future.resolve(nil, ErrClosed)
		return future
	}

	q.pending = append(q.pending, &queuedOp{run: op, future: future})
	q.cond.Signal()
	return future
}

// Len returns the number of operations waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops accepting work, runs what is already queued and waits for the
// worker to exit.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		op := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		op.future.resolve(runOp(op.run))
	}
}

func runOp(run func() (*Result, error)) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("queued translation panicked: %v", r)
		}
	}()
	return run()
}
