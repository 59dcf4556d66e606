// Package parallel splits a render window into horizontal bands and drives
// their processing over a pool of workers.
//
// Key properties:
//
//   - One band per worker, each spanning the full window width
//   - Bands are disjoint row ranges, so workers never share output memory
//   - Cancellation is cooperative and polled once per scanline
//
// Thread safety: WorkerPool and Scheduler are safe for concurrent use.
package parallel

import "github.com/gogpu/gain/internal/image"

// Band is the slice of the render window assigned to one worker.
type Band struct {
	// Index is the band number in [0, Count).
	Index int

	// Count is the total number of bands in the split.
	Count int

	// Rect is the band's rows; X extent equals the window's.
	Rect image.Rect
}

// Empty reports whether the band covers no pixels.
func (b Band) Empty() bool {
	return b.Rect.Empty()
}

// BandRect returns band i of n for window:
//
//	y in [y1 + i*dy/n, y1 + min((i+1)*dy/n, dy))
//
// where dy is the window height. Integer division leaves the remainder to
// the later bands. When n exceeds dy some bands are empty.
func BandRect(window image.Rect, i, n int) image.Rect {
	if n < 1 {
		n = 1
	}
	dy := window.Dy()
	r := window
	r.Y1 = window.Y1 + i*dy/n
	r.Y2 = window.Y1 + min((i+1)*dy/n, dy)
	return r
}

// SplitBands partitions window into n bands. n < 1 is treated as 1.
func SplitBands(window image.Rect, n int) []Band {
	if n < 1 {
		n = 1
	}
	bands := make([]Band, n)
	for i := range bands {
		bands[i] = Band{Index: i, Count: n, Rect: BandRect(window, i, n)}
	}
	return bands
}
