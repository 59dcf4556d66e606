// Package image describes the strided pixel buffers a host hands to the gain core.
//
// Buffers are owned by the host for the duration of one render call. This
// package never allocates pixel memory on the render path; it only resolves
// addresses inside memory it was given.
package image

// Depth is the numeric representation of a single channel.
type Depth uint8

const (
	// DepthNone marks a buffer whose depth the host did not declare.
	DepthNone Depth = iota

	// Depth8 is an unsigned 8-bit integer channel (max 255).
	Depth8

	// Depth16 is an unsigned 16-bit integer channel (max 65535).
	Depth16

	// Depth32F is a 32-bit IEEE float channel. Nominal max is 1.0 but values
	// are never clamped.
	Depth32F

	// Depth16F is a 16-bit IEEE half float channel. Buffers may carry it but
	// no gain processor handles it.
	Depth16F

	// depthCount is the number of depths (for internal use).
	depthCount
)

// depthInfo contains metadata about a channel depth.
type depthInfo struct {
	bits            int
	bytesPerChannel int
	max             float32
	isFloat         bool
	name            string
}

var depthInfoTable = [depthCount]depthInfo{
	DepthNone: {name: "None"},
	Depth8: {
		bits:            8,
		bytesPerChannel: 1,
		max:             255,
		name:            "8-bit",
	},
	Depth16: {
		bits:            16,
		bytesPerChannel: 2,
		max:             65535,
		name:            "16-bit",
	},
	Depth32F: {
		bits:            32,
		bytesPerChannel: 4,
		max:             1,
		isFloat:         true,
		name:            "32-bit float",
	},
	Depth16F: {
		bits:            16,
		bytesPerChannel: 2,
		max:             1,
		isFloat:         true,
		name:            "16-bit half",
	},
}

func (d Depth) info() depthInfo {
	if d >= depthCount {
		return depthInfo{name: "Unknown"}
	}
	return depthInfoTable[d]
}

// DepthFromBits maps a host bit depth (8, 16 or 32) to a Depth.
// Any other value yields DepthNone. 16 maps to the integer depth; half
// float has to be named explicitly.
func DepthFromBits(bits int) Depth {
	switch bits {
	case 8:
		return Depth8
	case 16:
		return Depth16
	case 32:
		return Depth32F
	default:
		return DepthNone
	}
}

// Bits returns the number of bits per channel, or 0 for unknown depths.
func (d Depth) Bits() int { return d.info().bits }

// BytesPerChannel returns the storage size of one channel.
func (d Depth) BytesPerChannel() int { return d.info().bytesPerChannel }

// Max returns the clamp ceiling for integer depths and 1.0 for float.
func (d Depth) Max() float32 { return d.info().max }

// IsFloat reports whether channels are stored as floating point.
func (d Depth) IsFloat() bool { return d.info().isFloat }

// IsValid reports whether d is one of the supported representations.
func (d Depth) IsValid() bool { return d > DepthNone && d < depthCount }

// String returns a human-readable name of the depth.
func (d Depth) String() string { return d.info().name }

// Components identifies the channel layout of a pixel.
type Components uint8

const (
	// ComponentsRGBA is four interleaved channels in R, G, B, A order.
	ComponentsRGBA Components = iota

	// ComponentsAlpha is a single alpha channel.
	ComponentsAlpha
)

// Channels returns the number of channels per pixel.
func (c Components) Channels() int {
	if c == ComponentsAlpha {
		return 1
	}
	return 4
}

// String returns a string representation of the layout.
func (c Components) String() string {
	switch c {
	case ComponentsRGBA:
		return "RGBA"
	case ComponentsAlpha:
		return "Alpha"
	default:
		return "Unknown"
	}
}

// Format is the pair of channel depth and channel layout.
type Format struct {
	Depth      Depth
	Components Components
}

// PixelBytes returns the size of one pixel in bytes.
func (f Format) PixelBytes() int {
	return f.Depth.BytesPerChannel() * f.Components.Channels()
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.PixelBytes()
}

// String returns e.g. "RGBA 16-bit".
func (f Format) String() string {
	return f.Components.String() + " " + f.Depth.String()
}
