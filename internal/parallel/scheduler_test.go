package parallel

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogpu/gain/internal/image"
)

// fixedRunner reports a worker count and runs units serially in id order.
type fixedRunner struct{ n int }

func (r fixedRunner) NumWorkers() int { return r.n }

func (r fixedRunner) Run(n int, fn func(id, n int)) error {
	for id := range n {
		fn(id, n)
	}
	return nil
}

func TestScheduler_DispatchesOneBandPerWorker(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var mu sync.Mutex
	var got []image.Rect

	s := NewScheduler(pool, nil)
	res, err := s.Process(context.Background(), image.R(0, 0, 4, 10), func(band image.Rect, abort func() bool) {
		mu.Lock()
		got = append(got, band)
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bands != 3 || res.Aborted {
		t.Errorf("Result = %+v, want 3 bands not aborted", res)
	}

	rows := 0
	for _, b := range got {
		rows += b.Dy()
	}
	if len(got) != 3 || rows != 10 {
		t.Errorf("got %d bands covering %d rows, want 3 covering 10", len(got), rows)
	}
}

func TestScheduler_SkipsEmptyBands(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler(fixedRunner{n: 8}, nil)

	_, err := s.Process(context.Background(), image.R(0, 0, 4, 3), func(band image.Rect, abort func() bool) {
		if band.Empty() {
			t.Error("BandFunc called with an empty band")
		}
		calls.Add(1)
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 3 {
		t.Errorf("BandFunc calls = %d, want 3", calls.Load())
	}
}

func TestScheduler_NilRunnerIsSerial(t *testing.T) {
	s := NewScheduler(nil, nil)
	res, err := s.Process(context.Background(), image.R(0, 0, 1, 5), func(image.Rect, func() bool) {})
	if err != nil || res.Bands != 1 {
		t.Errorf("Process = %+v, %v; want 1 band", res, err)
	}
}

func TestScheduler_AbortStopsLaterBands(t *testing.T) {
	var aborted atomic.Bool
	written := make(map[int]bool)

	s := NewScheduler(fixedRunner{n: 3}, aborted.Load)
	res, err := s.Process(context.Background(), image.R(0, 0, 1, 9), func(band image.Rect, abort func() bool) {
		for y := band.Y1; y < band.Y2; y++ {
			if abort() {
				return
			}
			written[y] = true
			if y == 1 {
				// Host signals abort while band 0 is in flight.
				aborted.Store(true)
			}
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Aborted {
		t.Error("Result.Aborted = false, want true")
	}

	for y := 0; y < 9; y++ {
		want := y <= 1
		if written[y] != want {
			t.Errorf("row %d written = %v, want %v", y, written[y], want)
		}
	}
}

func TestScheduler_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var rows atomic.Int32
	s := NewScheduler(fixedRunner{n: 2}, nil)
	res, err := s.Process(ctx, image.R(0, 0, 1, 4), func(band image.Rect, abort func() bool) {
		for range band.Dy() {
			if abort() {
				return
			}
			rows.Add(1)
		}
	})
	if err != nil {
		t.Fatalf("cancellation must not be an error, got %v", err)
	}
	if !res.Aborted || rows.Load() != 0 {
		t.Errorf("Aborted=%v rows=%d, want true and 0", res.Aborted, rows.Load())
	}
}

func TestScheduler_RecoversBandPanic(t *testing.T) {
	sentinel := errors.New("band failed")
	s := NewScheduler(fixedRunner{n: 2}, nil)

	_, err := s.Process(context.Background(), image.R(0, 0, 1, 4), func(band image.Rect, abort func() bool) {
		if band.Y1 == 0 {
			panic(sentinel)
		}
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("Process error = %v, want wrapping sentinel", err)
	}
}

func TestScheduler_RunnerError(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	s := NewScheduler(pool, nil)
	_, err := s.Process(context.Background(), image.R(0, 0, 1, 4), func(image.Rect, func() bool) {})
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Process error = %v, want ErrPoolClosed", err)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkScheduler_Process(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()
	s := NewScheduler(pool, nil)
	window := image.R(0, 0, 1920, 1080)
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		_, _ = s.Process(ctx, window, func(band image.Rect, abort func() bool) {
			for range band.Dy() {
				if abort() {
					return
				}
			}
		})
	}
}
