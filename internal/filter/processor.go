package filter

import (
	"errors"

	"github.com/gogpu/gain/internal/image"
)

var (
	// ErrFormatMismatch is returned when source and destination formats differ.
	ErrFormatMismatch = errors.New("filter: source and destination formats differ")

	// ErrUnsupportedDepth is returned for a depth without a processor.
	ErrUnsupportedDepth = errors.New("filter: unsupported pixel depth")

	// ErrNilBuffer is returned when a source or destination buffer is missing.
	ErrNilBuffer = errors.New("filter: nil buffer")
)

// OutsidePolicy decides what happens to a destination pixel whose source
// pixel lies outside the source bounds.
type OutsidePolicy uint8

const (
	// OutsidePreserve leaves the destination pixel unmodified.
	OutsidePreserve OutsidePolicy = iota

	// OutsideClear writes zero to every channel of the destination pixel.
	OutsideClear
)

// String returns the policy name.
func (p OutsidePolicy) String() string {
	switch p {
	case OutsidePreserve:
		return "preserve"
	case OutsideClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Processor applies bound gains to one band of the render window.
//
// ProcessBand polls abort before every scanline and returns as soon as it
// reports true; rows already written stay written. Calls for disjoint bands
// are safe to run concurrently.
type Processor interface {
	ProcessBand(band image.Rect, abort func() bool)
}

// NewProcessor binds gains to a source and destination buffer and returns the
// processor variant for their depth.
func NewProcessor(g Gains, src, dst *image.Buffer, policy OutsidePolicy) (Processor, error) {
	if src == nil || dst == nil {
		return nil, ErrNilBuffer
	}
	if src.Format() != dst.Format() {
		return nil, ErrFormatMismatch
	}

	b := binding{
		src:    src,
		dst:    dst,
		gains:  g,
		policy: policy,
	}

	switch dst.Depth() {
	case image.Depth8:
		return &rgba8Processor{b}, nil
	case image.Depth16:
		return &rgba16Processor{b}, nil
	case image.Depth32F:
		return &floatProcessor{b}, nil
	default:
		return nil, ErrUnsupportedDepth
	}
}

// binding is the render-scoped state shared by all processor variants.
type binding struct {
	src, dst *image.Buffer
	gains    Gains
	policy   OutsidePolicy
}

// channelGains returns the multipliers matching the buffer layout. Alpha-only
// buffers use the alpha gain.
func (b *binding) channelGains() []float32 {
	if b.dst.Components() == image.ComponentsAlpha {
		return b.gains[3:4]
	}
	return b.gains[:]
}

func (b *binding) run(band image.Rect, abort func() bool, kernel rowKernel) {
	band = band.Intersect(b.dst.Bounds())
	if band.Empty() {
		return
	}

	gains := b.channelGains()
	pb := b.dst.PixelBytes()
	dd := b.dst.Data()
	sd := b.src.Data()

	for y := band.Y1; y < band.Y2; y++ {
		if abort != nil && abort() {
			return
		}

		dOff, dx1, dx2 := b.dst.Span(band.X1, band.X2, y)
		if dOff < 0 {
			continue
		}
		dEnd := dOff + (dx2-dx1)*pb

		sOff, sx1, sx2 := b.src.Span(dx1, dx2, y)
		if sOff < 0 {
			if b.policy == OutsideClear {
				clear(dd[dOff:dEnd])
			}
			continue
		}

		start := dOff + (sx1-dx1)*pb
		end := dOff + (sx2-dx1)*pb
		if b.policy == OutsideClear {
			clear(dd[dOff:start])
			clear(dd[end:dEnd])
		}

		n := sx2 - sx1
		kernel(dd[start:end], sd[sOff:sOff+n*pb], n, gains)
	}
}

// rgba8Processor handles 8-bit integer channels.
type rgba8Processor struct{ binding }

// ProcessBand implements Processor.
func (p *rgba8Processor) ProcessBand(band image.Rect, abort func() bool) {
	p.run(band, abort, scaleRow8)
}

// rgba16Processor handles 16-bit integer channels.
type rgba16Processor struct{ binding }

// ProcessBand implements Processor.
func (p *rgba16Processor) ProcessBand(band image.Rect, abort func() bool) {
	p.run(band, abort, scaleRow16)
}

// floatProcessor handles 32-bit float channels.
type floatProcessor struct{ binding }

// ProcessBand implements Processor.
func (p *floatProcessor) ProcessBand(band image.Rect, abort func() bool) {
	p.run(band, abort, scaleRowF32)
}
