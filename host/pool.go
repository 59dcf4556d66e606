package host

import (
	"github.com/gogpu/gain"
	"github.com/gogpu/gain/internal/parallel"
)

// ThreadPool is a persistent goroutine pool implementing gain.ThreadPool.
// Call Close when the host shuts down.
type ThreadPool struct {
	pool *parallel.WorkerPool
}

var _ gain.ThreadPool = (*ThreadPool)(nil)

// NewThreadPool starts a pool with the given number of workers.
// workers <= 0 uses GOMAXPROCS.
func NewThreadPool(workers int) *ThreadPool {
	return &ThreadPool{pool: parallel.NewWorkerPool(workers)}
}

// NumWorkers implements gain.ThreadPool.
func (p *ThreadPool) NumWorkers() int {
	return p.pool.NumWorkers()
}

// Run implements gain.ThreadPool.
func (p *ThreadPool) Run(n int, fn func(id, n int)) error {
	return p.pool.Run(n, fn)
}

// Close stops the workers after queued work finishes.
func (p *ThreadPool) Close() {
	p.pool.Close()
}

// FixedPool reports a worker count but runs every unit on the calling
// goroutine, in id order. Tests use it to get deterministic band order.
type FixedPool int

var _ gain.ThreadPool = FixedPool(1)

// NumWorkers implements gain.ThreadPool.
func (p FixedPool) NumWorkers() int {
	return int(p)
}

// Run implements gain.ThreadPool.
func (p FixedPool) Run(n int, fn func(id, n int)) error {
	return parallel.Serial{}.Run(n, fn)
}
