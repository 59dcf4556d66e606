package image

import (
	"errors"
)

// Common errors for buffer construction.
var (
	// ErrInvalidBounds is returned when a rectangle has X1 > X2 or Y1 > Y2.
	ErrInvalidBounds = errors.New("image: invalid bounds")

	// ErrInvalidFormat is returned when the depth is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrInvalidStride is returned when stride is less than minimum required.
	ErrInvalidStride = errors.New("image: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")
)

// Buffer is a strided view of host pixel memory.
//
// The first byte of data is pixel (Bounds.X1, Bounds.Y1); rows follow every
// rowBytes bytes. Buffer never owns the memory it points at when created with
// FromRaw.
//
// Thread safety: concurrent readers are safe. Concurrent writers must touch
// disjoint rows.
type Buffer struct {
	data     []byte
	bounds   Rect
	rowBytes int
	format   Format
}

// NewBuffer allocates a zeroed buffer covering bounds with a packed stride.
// Hosts use it to stage frames; the render path never calls it.
func NewBuffer(bounds Rect, format Format) (*Buffer, error) {
	if !bounds.Valid() {
		return nil, ErrInvalidBounds
	}
	if !format.Depth.IsValid() {
		return nil, ErrInvalidFormat
	}
	rowBytes := format.RowBytes(bounds.Dx())
	return &Buffer{
		data:     make([]byte, rowBytes*bounds.Dy()),
		bounds:   bounds,
		rowBytes: rowBytes,
		format:   format,
	}, nil
}

// FromRaw wraps existing memory without copying.
// rowBytes must be at least format.RowBytes(bounds.Dx()).
func FromRaw(data []byte, bounds Rect, rowBytes int, format Format) (*Buffer, error) {
	if !bounds.Valid() {
		return nil, ErrInvalidBounds
	}
	if !format.Depth.IsValid() {
		return nil, ErrInvalidFormat
	}
	if rowBytes < format.RowBytes(bounds.Dx()) {
		return nil, ErrInvalidStride
	}

	required := 0
	if !bounds.Empty() {
		// The last row only needs its pixels, not the trailing padding.
		required = (bounds.Dy()-1)*rowBytes + format.RowBytes(bounds.Dx())
	}
	if len(data) < required {
		return nil, ErrDataTooSmall
	}

	return &Buffer{
		data:     data[:required],
		bounds:   bounds,
		rowBytes: rowBytes,
		format:   format,
	}, nil
}

// Clone creates a deep copy of the buffer with the same stride.
func (b *Buffer) Clone() *Buffer {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{
		data:     data,
		bounds:   b.bounds,
		rowBytes: b.rowBytes,
		format:   b.format,
	}
}

// Data returns the raw pixel memory.
func (b *Buffer) Data() []byte { return b.data }

// Bounds returns the valid addressable region.
func (b *Buffer) Bounds() Rect { return b.bounds }

// RowBytes returns the stride in bytes, including padding.
func (b *Buffer) RowBytes() int { return b.rowBytes }

// Format returns the pixel representation.
func (b *Buffer) Format() Format { return b.format }

// Depth returns the channel depth.
func (b *Buffer) Depth() Depth { return b.format.Depth }

// Components returns the channel layout.
func (b *Buffer) Components() Components { return b.format.Components }

// PixelBytes returns the size of one pixel in bytes.
func (b *Buffer) PixelBytes() int { return b.format.PixelBytes() }

// PixelAddress returns the byte offset of pixel (x, y) in Data:
// (y-Y1)*RowBytes + (x-X1)*PixelBytes. It returns -1 when (x, y) is outside
// Bounds or the buffer has no memory.
func (b *Buffer) PixelAddress(x, y int) int {
	if b == nil || b.data == nil || !b.bounds.Contains(x, y) {
		return -1
	}
	return (y-b.bounds.Y1)*b.rowBytes + (x-b.bounds.X1)*b.format.PixelBytes()
}

// Pixel returns the bytes of pixel (x, y), or nil when it is out of bounds.
func (b *Buffer) Pixel(x, y int) []byte {
	off := b.PixelAddress(x, y)
	if off < 0 {
		return nil
	}
	return b.data[off : off+b.format.PixelBytes()]
}

// Span clips the pixel run [x1, x2) on row y to Bounds. It returns the byte
// offset of the first surviving pixel and the clipped range. off is -1 when
// nothing of the run is addressable.
func (b *Buffer) Span(x1, x2, y int) (off, from, to int) {
	from = max(x1, b.bounds.X1)
	to = min(x2, b.bounds.X2)
	if from >= to {
		return -1, from, from
	}
	off = b.PixelAddress(from, y)
	if off < 0 {
		return -1, from, from
	}
	return off, from, to
}
