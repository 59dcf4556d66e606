package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned by Run after Close.
var ErrPoolClosed = errors.New("parallel: worker pool closed")

// Runner fans a callback out over n work units and blocks until every unit
// has returned. fn receives the unit index and n.
type Runner interface {
	NumWorkers() int
	Run(n int, fn func(id, n int)) error
}

// WorkerPool is a persistent pool of goroutines.
//
// Each worker owns a queue and steals from the others when its own queue is
// empty, so a slow band does not hold idle workers back.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			work()

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				work()
			}
		}
	}
}

func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

// steal takes one item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// Run executes fn(id, n) for every id in [0, n) and waits for all of them.
// Units are queued round-robin. A panic inside a unit is recovered and the
// first one is returned as an error once every unit has finished.
func (p *WorkerPool) Run(n int, fn func(id, n int)) error {
	if n <= 0 {
		return nil
	}
	if !p.running.Load() {
		return ErrPoolClosed
	}

	var (
		wg       sync.WaitGroup
		firstErr error
		errOnce  sync.Once
	)
	wg.Add(n)

	for i := range n {
		id := i
		unit := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errOnce.Do(func() { firstErr = panicError(r) })
				}
			}()
			fn(id, n)
		}

		select {
		case p.workQueues[id%p.workers] <- unit:
		case <-p.done:
			// Closing: the unit never reaches a worker.
			wg.Done()
			errOnce.Do(func() { firstErr = ErrPoolClosed })
		}
	}

	wg.Wait()
	return firstErr
}

// Close stops accepting work, finishes queued units and stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// NumWorkers returns the number of workers in the pool.
func (p *WorkerPool) NumWorkers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// Serial is a Runner that executes every unit on the calling goroutine.
type Serial struct{}

// NumWorkers returns 1.
func (Serial) NumWorkers() int { return 1 }

// Run executes fn(id, n) for each id in order.
func (Serial) Run(n int, fn func(id, n int)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	for id := range n {
		fn(id, n)
	}
	return nil
}

// PanicError carries a value recovered from a panicking work unit.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: work unit panicked: %v", e.Value)
}

// Unwrap exposes the recovered value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func panicError(r any) error {
	return &PanicError{Value: r}
}
