package filter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gain/internal/image"
)

var (
	fmtRGBA8  = image.Format{Depth: image.Depth8, Components: image.ComponentsRGBA}
	fmtRGBA16 = image.Format{Depth: image.Depth16, Components: image.ComponentsRGBA}
	fmtRGBAF  = image.Format{Depth: image.Depth32F, Components: image.ComponentsRGBA}
	fmtAlpha8 = image.Format{Depth: image.Depth8, Components: image.ComponentsAlpha}
)

func TestNewProcessor_Errors(t *testing.T) {
	b8 := newBuffer(t, image.R(0, 0, 2, 2), fmtRGBA8, 0)
	b16 := newBuffer(t, image.R(0, 0, 2, 2), fmtRGBA16, 0)
	a8 := newBuffer(t, image.R(0, 0, 2, 2), fmtAlpha8, 0)
	half, err := image.NewBuffer(image.R(0, 0, 2, 2), image.Format{Depth: image.Depth16F})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		src, dst *image.Buffer
		wantErr  error
	}{
		{"nil src", nil, b8, ErrNilBuffer},
		{"nil dst", b8, nil, ErrNilBuffer},
		{"depth mismatch", b8, b16, ErrFormatMismatch},
		{"components mismatch", b8, a8, ErrFormatMismatch},
		{"half float", half, half.Clone(), ErrUnsupportedDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProcessor(Uniform(1), tt.src, tt.dst, OutsidePreserve)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewProcessor() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProcessor_Variants(t *testing.T) {
	tests := []struct {
		format image.Format
		want   string
	}{
		{fmtRGBA8, "*filter.rgba8Processor"},
		{fmtRGBA16, "*filter.rgba16Processor"},
		{fmtRGBAF, "*filter.floatProcessor"},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			buf := newBuffer(t, image.R(0, 0, 1, 1), tt.format, 0)
			p, err := NewProcessor(Uniform(1), buf, buf.Clone(), OutsidePreserve)
			if err != nil {
				t.Fatal(err)
			}
			if got := typeName(p); got != tt.want {
				t.Errorf("processor type = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(p Processor) string {
	switch p.(type) {
	case *rgba8Processor:
		return "*filter.rgba8Processor"
	case *rgba16Processor:
		return "*filter.rgba16Processor"
	case *floatProcessor:
		return "*filter.floatProcessor"
	default:
		return "unknown"
	}
}

func TestProcessBand_EndToEnd8(t *testing.T) {
	bounds := image.R(0, 0, 4, 4)
	src := newBuffer(t, bounds, fmtRGBA8, 100)
	dst := newBuffer(t, bounds, fmtRGBA8, 0)

	p, err := NewProcessor(Gains{2, 1, 0.5, 1}, src, dst, OutsidePreserve)
	if err != nil {
		t.Fatal(err)
	}
	p.ProcessBand(bounds, never)

	want := []float64{200, 100, 50, 100}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			for c, w := range want {
				if got := channel(dst, x, y, c); got != w {
					t.Fatalf("(%d,%d)[%d] = %v, want %v", x, y, c, got, w)
				}
			}
		}
	}
}

func TestProcessBand_IdentityIsExact(t *testing.T) {
	formats := []image.Format{fmtRGBA8, fmtRGBA16, fmtRGBAF, fmtAlpha8}
	bounds := image.R(-2, -1, 5, 6)

	for _, f := range formats {
		t.Run(f.String(), func(t *testing.T) {
			src := newBuffer(t, bounds, f, 0)
			// Varied values so a constant fill would be detectable.
			i := 0
			for y := bounds.Y1; y < bounds.Y2; y++ {
				for x := bounds.X1; x < bounds.X2; x++ {
					for c := range f.Components.Channels() {
						i++
						v := float64(i * 37 % 256)
						if f.Depth == image.Depth16 {
							v = float64(i * 2741 % 65536)
						} else if f.Depth == image.Depth32F {
							v = float64(i) / 7
						}
						setChannel(src, x, y, c, v)
					}
				}
			}
			dst := newBuffer(t, bounds, f, 0)

			p, err := NewProcessor(Uniform(1), src, dst, OutsidePreserve)
			if err != nil {
				t.Fatal(err)
			}
			p.ProcessBand(bounds, never)

			if !bytes.Equal(src.Data(), dst.Data()) {
				t.Error("identity gains did not reproduce the source byte-for-byte")
			}
		})
	}
}

func TestProcessBand_AlphaOnlyUsesAlphaGain(t *testing.T) {
	bounds := image.R(0, 0, 3, 1)
	src := newBuffer(t, bounds, fmtAlpha8, 100)
	dst := newBuffer(t, bounds, fmtAlpha8, 0)

	p, err := NewProcessor(Gains{0, 0, 0, 1.5}, src, dst, OutsidePreserve)
	if err != nil {
		t.Fatal(err)
	}
	p.ProcessBand(bounds, never)

	for x := 0; x < 3; x++ {
		if got := channel(dst, x, 0, 0); got != 150 {
			t.Errorf("alpha at %d = %v, want 150", x, got)
		}
	}
}

func TestProcessBand_OutsideSource(t *testing.T) {
	// Source covers only the middle two columns and the top row is missing.
	dstBounds := image.R(0, 0, 4, 3)
	srcBounds := image.R(1, 1, 3, 3)

	tests := []struct {
		policy OutsidePolicy
		fill   float64
	}{
		{OutsidePreserve, 9},
		{OutsideClear, 0},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			src := newBuffer(t, srcBounds, fmtRGBA16, 1000)
			dst := newBuffer(t, dstBounds, fmtRGBA16, 9)

			p, err := NewProcessor(Uniform(2), src, dst, tt.policy)
			if err != nil {
				t.Fatal(err)
			}
			p.ProcessBand(dstBounds, never)

			for y := dstBounds.Y1; y < dstBounds.Y2; y++ {
				for x := dstBounds.X1; x < dstBounds.X2; x++ {
					want := tt.fill
					if srcBounds.Contains(x, y) {
						want = 2000
					}
					for c := range 4 {
						if got := channel(dst, x, y, c); got != want {
							t.Fatalf("(%d,%d)[%d] = %v, want %v", x, y, c, got, want)
						}
					}
				}
			}
		})
	}
}

func TestProcessBand_ClipsToDestination(t *testing.T) {
	bounds := image.R(0, 0, 2, 2)
	src := newBuffer(t, image.R(-5, -5, 5, 5), fmtRGBA8, 10)
	dst := newBuffer(t, bounds, fmtRGBA8, 0)

	p, err := NewProcessor(Uniform(3), src, dst, OutsidePreserve)
	if err != nil {
		t.Fatal(err)
	}
	// Band far larger than the destination must not write out of range.
	p.ProcessBand(image.R(-10, -10, 10, 10), never)

	for i, v := range dst.Data() {
		if v != 30 {
			t.Fatalf("byte %d = %d, want 30", i, v)
		}
	}
}

func TestProcessBand_AbortPerScanline(t *testing.T) {
	bounds := image.R(0, 0, 2, 5)
	src := newBuffer(t, bounds, fmtRGBA8, 10)
	dst := newBuffer(t, bounds, fmtRGBA8, 0)

	p, err := NewProcessor(Uniform(2), src, dst, OutsidePreserve)
	if err != nil {
		t.Fatal(err)
	}

	polls := 0
	p.ProcessBand(bounds, func() bool {
		polls++
		return polls > 2 // allow rows 0 and 1
	})

	for y := 0; y < 5; y++ {
		want := 0.0
		if y < 2 {
			want = 20
		}
		if got := channel(dst, 0, y, 0); got != want {
			t.Errorf("row %d = %v, want %v", y, got, want)
		}
	}
	if polls != 3 {
		t.Errorf("abort polled %d times, want 3", polls)
	}
}

func TestProcessBand_EmptyBand(t *testing.T) {
	bounds := image.R(0, 0, 2, 2)
	src := newBuffer(t, bounds, fmtRGBA8, 10)
	dst := newBuffer(t, bounds, fmtRGBA8, 1)

	p, err := NewProcessor(Uniform(2), src, dst, OutsidePreserve)
	if err != nil {
		t.Fatal(err)
	}
	p.ProcessBand(image.R(0, 1, 2, 1), func() bool {
		t.Fatal("abort polled for an empty band")
		return false
	})

	for _, v := range dst.Data() {
		if v != 1 {
			t.Fatal("empty band wrote pixels")
		}
	}
}

func TestProcessBand_Float(t *testing.T) {
	bounds := image.R(0, 0, 2, 2)
	src := newBuffer(t, bounds, fmtRGBAF, 0.9)
	dst := newBuffer(t, bounds, fmtRGBAF, 0)

	p, err := NewProcessor(Uniform(2), src, dst, OutsidePreserve)
	if err != nil {
		t.Fatal(err)
	}
	p.ProcessBand(bounds, never)

	want := float64(float32(0.9) * 2)
	if got := channel(dst, 1, 1, 2); got != want {
		t.Errorf("float channel = %v, want %v (unclamped)", got, want)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkProcessBand1080p(b *testing.B) {
	bounds := image.R(0, 0, 1920, 1080)
	src := newBuffer(b, bounds, fmtRGBA8, 120)
	dst := newBuffer(b, bounds, fmtRGBA8, 0)
	p, err := NewProcessor(Gains{1.1, 0.9, 1.2, 1}, src, dst, OutsidePreserve)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(src.Data())))
	b.ResetTimer()
	for range b.N {
		p.ProcessBand(bounds, never)
	}
}
