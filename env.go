package gain

import (
	"github.com/gogpu/gain/internal/filter"
	"github.com/gogpu/gain/internal/image"
)

// Clip names the effect asks the host for.
const (
	SourceClip = "Source"
	OutputClip = "Output"
)

// Image is a host-owned strided pixel buffer. See NewImage and WrapImage.
type Image = image.Buffer

// Rect is a half-open integer rectangle.
type Rect = image.Rect

// Depth is the numeric representation of one channel.
type Depth = image.Depth

// Components is the channel layout of a pixel.
type Components = image.Components

// Format pairs a Depth with a Components layout.
type Format = image.Format

// Gains holds one multiplier per channel in R, G, B, A order.
type Gains = filter.Gains

// Pixel representations.
const (
	DepthNone = image.DepthNone
	Depth8    = image.Depth8
	Depth16   = image.Depth16
	Depth32F  = image.Depth32F
	Depth16F  = image.Depth16F
)

// Channel layouts.
const (
	ComponentsRGBA  = image.ComponentsRGBA
	ComponentsAlpha = image.ComponentsAlpha
)

// NewImage allocates a zeroed, tightly packed image. Hosts use it to stage
// frames; Render never allocates images.
func NewImage(bounds Rect, f Format) (*Image, error) {
	return image.NewBuffer(bounds, f)
}

// WrapImage wraps host memory: the first byte is pixel (bounds.X1, bounds.Y1)
// and rows are rowBytes apart.
func WrapImage(data []byte, bounds Rect, rowBytes int, f Format) (*Image, error) {
	return image.FromRaw(data, bounds, rowBytes, f)
}

// DepthFromBits maps a host bit depth (8, 16 or 32) to a Depth.
func DepthFromBits(bits int) Depth {
	return image.DepthFromBits(bits)
}

// ImageSource gives access to clip images at a point in time.
type ImageSource interface {
	// Image returns the image of clip at time t. A nil image or a non-nil
	// error both mean no image is available.
	Image(clip string, t float64) (*Image, error)

	// Release hands an image obtained from Image back to the host.
	Release(img *Image)
}

// ParamSource samples effect parameters at a point in time.
type ParamSource interface {
	Double(name string, t float64) (float64, error)
	Bool(name string, t float64) (bool, error)
}

// ThreadPool fans a callback out over worker threads.
// Run calls fn(id, n) once for every id in [0, n) and returns after all
// calls have returned.
type ThreadPool interface {
	NumWorkers() int
	Run(n int, fn func(id, n int)) error
}

// AbortPoller reports whether the host wants the current render to stop.
type AbortPoller interface {
	Abort() bool
}

// Environment bundles the host collaborators for one call. Threads and
// Abort are optional: without Threads bands run on the calling goroutine.
type Environment struct {
	Images  ImageSource
	Params  ParamSource
	Threads ThreadPool
	Abort   AbortPoller
}

// aborted polls the host abort signal.
func (env Environment) aborted() bool {
	return env.Abort != nil && env.Abort.Abort()
}
