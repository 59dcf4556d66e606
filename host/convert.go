package host

import (
	"encoding/binary"
	"errors"
	"fmt"
	stdimage "image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/gain"
)

// ErrUnsupportedDepth is returned when converting to or from a depth the
// host cannot stage.
var ErrUnsupportedDepth = errors.New("host: unsupported depth")

// FromImage stages a decoded image as an RGBA gain image of the given depth.
// Channels are non-premultiplied; float channels are normalized to [0, 1].
func FromImage(src stdimage.Image, depth gain.Depth) (*gain.Image, error) {
	b := src.Bounds()
	bounds := gain.Rect{X1: b.Min.X, Y1: b.Min.Y, X2: b.Max.X, Y2: b.Max.Y}
	f := gain.Format{Depth: depth, Components: gain.ComponentsRGBA}

	out, err := gain.NewImage(bounds, f)
	if err != nil {
		return nil, fmt.Errorf("host: stage image: %w", err)
	}

	switch depth {
	case gain.Depth8:
		nrgba := stdimage.NewNRGBA(b)
		draw.Draw(nrgba, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := nrgba.Pix[(y-b.Min.Y)*nrgba.Stride:]
			off := out.PixelAddress(b.Min.X, y)
			if off < 0 {
				continue
			}
			copy(out.Data()[off:off+out.RowBytes()], row[:out.RowBytes()])
		}

	case gain.Depth16, gain.Depth32F:
		wide := stdimage.NewNRGBA64(b)
		draw.Draw(wide, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i := wide.PixOffset(x, y)
				px := out.Pixel(x, y)
				for c := range 4 {
					// NRGBA64 stores big-endian samples.
					v := binary.BigEndian.Uint16(wide.Pix[i+c*2:])
					if depth == gain.Depth16 {
						binary.NativeEndian.PutUint16(px[c*2:], v)
					} else {
						binary.NativeEndian.PutUint32(px[c*4:], math.Float32bits(float32(v)/65535))
					}
				}
			}
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDepth, depth)
	}

	return out, nil
}

// ToImage converts an RGBA gain image back to a standard image. 8-bit images
// become *image.NRGBA; 16-bit and float images become *image.NRGBA64, with
// float channels clamped to [0, 1].
func ToImage(img *gain.Image) (stdimage.Image, error) {
	if img.Components() != gain.ComponentsRGBA {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDepth, img.Format())
	}
	r := img.Bounds()
	b := stdimage.Rect(r.X1, r.Y1, r.X2, r.Y2)

	switch img.Depth() {
	case gain.Depth8:
		out := stdimage.NewNRGBA(b)
		for y := r.Y1; y < r.Y2; y++ {
			off := img.PixelAddress(r.X1, y)
			if off < 0 {
				continue
			}
			copy(out.Pix[out.PixOffset(r.X1, y):], img.Data()[off:off+r.Dx()*4])
		}
		return out, nil

	case gain.Depth16, gain.Depth32F:
		out := stdimage.NewNRGBA64(b)
		for y := r.Y1; y < r.Y2; y++ {
			for x := r.X1; x < r.X2; x++ {
				px := img.Pixel(x, y)
				i := out.PixOffset(x, y)
				for c := range 4 {
					var v uint16
					if img.Depth() == gain.Depth16 {
						v = binary.NativeEndian.Uint16(px[c*2:])
					} else {
						f := math.Float32frombits(binary.NativeEndian.Uint32(px[c*4:]))
						if !(f > 0) {
							f = 0
						}
						v = uint16(min(f, 1)*65535 + 0.5)
					}
					binary.BigEndian.PutUint16(out.Pix[i+c*2:], v)
				}
			}
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDepth, img.Depth())
	}
}
