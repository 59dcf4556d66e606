package filter

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gain/internal/image"
)

// Test helper functions shared across filter tests.

// newBuffer allocates a buffer and sets every channel of every pixel to v,
// expressed in the buffer's own numeric type.
func newBuffer(t testing.TB, bounds image.Rect, f image.Format, v float64) *image.Buffer {
	t.Helper()
	buf, err := image.NewBuffer(bounds, f)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	for y := bounds.Y1; y < bounds.Y2; y++ {
		for x := bounds.X1; x < bounds.X2; x++ {
			for c := range f.Components.Channels() {
				setChannel(buf, x, y, c, v)
			}
		}
	}
	return buf
}

func setChannel(buf *image.Buffer, x, y, c int, v float64) {
	px := buf.Pixel(x, y)
	switch buf.Depth() {
	case image.Depth8:
		px[c] = uint8(v)
	case image.Depth16:
		binary.NativeEndian.PutUint16(px[c*2:], uint16(v))
	case image.Depth32F:
		binary.NativeEndian.PutUint32(px[c*4:], math.Float32bits(float32(v)))
	}
}

func channel(buf *image.Buffer, x, y, c int) float64 {
	px := buf.Pixel(x, y)
	switch buf.Depth() {
	case image.Depth8:
		return float64(px[c])
	case image.Depth16:
		return float64(binary.NativeEndian.Uint16(px[c*2:]))
	case image.Depth32F:
		return float64(math.Float32frombits(binary.NativeEndian.Uint32(px[c*4:])))
	}
	return math.NaN()
}

func f32bytes(vs ...float32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.NativeEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

func u16bytes(vs ...uint16) []byte {
	b := make([]byte, 2*len(vs))
	for i, v := range vs {
		binary.NativeEndian.PutUint16(b[i*2:], v)
	}
	return b
}

func never() bool { return false }
