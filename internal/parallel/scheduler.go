package parallel

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gain/internal/image"
)

// BandFunc processes the rows of one band. It must call abort before each
// scanline and stop when abort returns true.
type BandFunc func(band image.Rect, abort func() bool)

// Result describes a finished Process call.
type Result struct {
	// Bands is the number of bands dispatched (the worker count).
	Bands int

	// Aborted is true when any band observed cancellation.
	Aborted bool
}

// Scheduler dispatches one unit of work per band to a Runner.
//
// The worker count is queried from the Runner on every Process call, so a
// host may resize its pool between renders.
type Scheduler struct {
	runner Runner
	abort  func() bool
}

// NewScheduler creates a scheduler over runner. A nil runner runs bands
// serially. abort is an optional host cancellation poll; the context passed
// to Process is always polled as well.
func NewScheduler(runner Runner, abort func() bool) *Scheduler {
	if runner == nil {
		runner = Serial{}
	}
	return &Scheduler{runner: runner, abort: abort}
}

// Process splits window into one band per worker, runs fn for each band and
// blocks until all bands return. Cancellation stops bands at the next
// scanline and is reported in Result, not as an error. A panic in fn is
// recovered and returned.
func (s *Scheduler) Process(ctx context.Context, window image.Rect, fn BandFunc) (Result, error) {
	n := max(s.runner.NumWorkers(), 1)
	res := Result{Bands: n}

	var stopped atomic.Bool
	abort := func() bool {
		if stopped.Load() {
			return true
		}
		if ctx.Err() != nil || (s.abort != nil && s.abort()) {
			stopped.Store(true)
			return true
		}
		return false
	}

	var (
		firstErr error
		errOnce  sync.Once
	)
	runErr := s.runner.Run(n, func(id, count int) {
		defer func() {
			if r := recover(); r != nil {
				errOnce.Do(func() { firstErr = panicError(r) })
				stopped.Store(true)
			}
		}()
		band := BandRect(window, id, count)
		if band.Empty() {
			return
		}
		fn(band, abort)
	})

	res.Aborted = stopped.Load() && firstErr == nil
	if firstErr != nil {
		return res, firstErr
	}
	return res, runErr
}
