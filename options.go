package gain

import "github.com/gogpu/gain/internal/filter"

// Option configures an Effect during creation.
//
// Example:
//
//	// Sample the source five frames ahead, like a temporal effect.
//	fx := gain.New(gain.WithSourceTimeOffset(5))
type Option func(*options)

type options struct {
	sourceTimeOffset float64
	outside          OutsidePolicy
	names            ParamNames
	identity         bool
}

func defaultOptions() options {
	return options{
		outside:  OutsidePreserve,
		names:    DefaultParamNames(),
		identity: true,
	}
}

// OutsidePolicy decides what happens to output pixels whose source pixel
// lies outside the source image bounds.
type OutsidePolicy = filter.OutsidePolicy

const (
	// OutsidePreserve leaves such output pixels unmodified. This is the default.
	OutsidePreserve = filter.OutsidePreserve

	// OutsideClear writes zero to such output pixels.
	OutsideClear = filter.OutsideClear
)

// ParamNames are the host parameter names the effect samples.
type ParamNames struct {
	Scale           string
	ComponentScales string
	ScaleR          string
	ScaleG          string
	ScaleB          string
	ScaleA          string
}

// DefaultParamNames returns the standard parameter names.
func DefaultParamNames() ParamNames {
	return ParamNames{
		Scale:           "scale",
		ComponentScales: "componentScales",
		ScaleR:          "scaleR",
		ScaleG:          "scaleG",
		ScaleB:          "scaleB",
		ScaleA:          "scaleA",
	}
}

// WithSourceTimeOffset samples the source clip at render time + offset.
func WithSourceTimeOffset(offset float64) Option {
	return func(o *options) {
		o.sourceTimeOffset = offset
	}
}

// WithOutsidePolicy sets the policy for output pixels without a source pixel.
func WithOutsidePolicy(p OutsidePolicy) Option {
	return func(o *options) {
		o.outside = p
	}
}

// WithParamNames overrides the sampled parameter names. Empty fields keep
// their default.
func WithParamNames(n ParamNames) Option {
	return func(o *options) {
		def := DefaultParamNames()
		o.names = ParamNames{
			Scale:           orDefault(n.Scale, def.Scale),
			ComponentScales: orDefault(n.ComponentScales, def.ComponentScales),
			ScaleR:          orDefault(n.ScaleR, def.ScaleR),
			ScaleG:          orDefault(n.ScaleG, def.ScaleG),
			ScaleB:          orDefault(n.ScaleB, def.ScaleB),
			ScaleA:          orDefault(n.ScaleA, def.ScaleA),
		}
	}
}

// WithIdentityShortcut controls whether IsIdentity may report the source
// clip as the output. Enabled by default.
func WithIdentityShortcut(enabled bool) Option {
	return func(o *options) {
		o.identity = enabled
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
