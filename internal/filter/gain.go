package filter

import (
	"encoding/binary"
	"math"
)

// Gains holds one multiplier per channel in R, G, B, A order.
type Gains [4]float32

// Uniform returns gains with every channel set to s.
func Uniform(s float32) Gains {
	return Gains{s, s, s, s}
}

// IsIdentity reports whether every channel multiplier is exactly 1.
func (g Gains) IsIdentity() bool {
	return g[0] == 1 && g[1] == 1 && g[2] == 1 && g[3] == 1
}

// Mul returns the elementwise product of g and o.
func (g Gains) Mul(o Gains) Gains {
	return Gains{g[0] * o[0], g[1] * o[1], g[2] * o[2], g[3] * o[3]}
}

// clampTrunc limits v to [0, hi]. NaN maps to 0.
func clampTrunc(v, hi float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

// Scale8 multiplies v by g, truncates toward zero and clamps to [0, 255].
func Scale8(v uint8, g float32) uint8 {
	return uint8(clampTrunc(float32(v)*g, 255))
}

// Scale16 multiplies v by g, truncates toward zero and clamps to [0, 65535].
func Scale16(v uint16, g float32) uint16 {
	return uint16(clampTrunc(float32(v)*g, 65535))
}

// ScaleF32 multiplies v by g. The result is not clamped.
func ScaleF32(v, g float32) float32 {
	return v * g
}

// ScalePixel8 scales one RGBA 8-bit pixel from src into dst.
func ScalePixel8(dst, src []byte, g Gains) {
	scaleRow8(dst, src, 1, g[:])
}

// ScalePixel16 scales one RGBA 16-bit pixel from src into dst.
func ScalePixel16(dst, src []byte, g Gains) {
	scaleRow16(dst, src, 1, g[:])
}

// ScalePixelF32 scales one RGBA float pixel from src into dst.
func ScalePixelF32(dst, src []byte, g Gains) {
	scaleRowF32(dst, src, 1, g[:])
}

// rowKernel scales n consecutive pixels. len(gains) is the channel count.
type rowKernel func(dst, src []byte, n int, gains []float32)

func scaleRow8(dst, src []byte, n int, gains []float32) {
	ch := len(gains)
	src = src[:n*ch]
	dst = dst[:n*ch]
	for p := 0; p < len(src); p += ch {
		for c, g := range gains {
			dst[p+c] = Scale8(src[p+c], g)
		}
	}
}

func scaleRow16(dst, src []byte, n int, gains []float32) {
	ch := len(gains)
	src = src[:n*ch*2]
	dst = dst[:n*ch*2]
	for p := 0; p < len(src); p += ch * 2 {
		for c, g := range gains {
			i := p + c*2
			v := binary.NativeEndian.Uint16(src[i:])
			binary.NativeEndian.PutUint16(dst[i:], Scale16(v, g))
		}
	}
}

func scaleRowF32(dst, src []byte, n int, gains []float32) {
	ch := len(gains)
	src = src[:n*ch*4]
	dst = dst[:n*ch*4]
	for p := 0; p < len(src); p += ch * 4 {
		for c, g := range gains {
			i := p + c*4
			v := math.Float32frombits(binary.NativeEndian.Uint32(src[i:]))
			binary.NativeEndian.PutUint32(dst[i:], math.Float32bits(ScaleF32(v, g)))
		}
	}
}
