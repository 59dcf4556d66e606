// Package gain is the image-processing core of a per-channel gain effect.
//
// # Overview
//
// A host application owns the frames, the effect parameters and the worker
// threads. For every render call it hands the core an [Environment]
// describing those collaborators, and the core writes the requested window
// of the output clip:
//
//	dst = src * gain   (per channel)
//
// Integer frames (8-bit, 16-bit) are truncated and clamped to the channel
// maximum. Float frames are scaled linearly and never clamped, so HDR values
// pass through.
//
// # Quick Start
//
//	fx := gain.New()
//	env := gain.Environment{
//	    Images:  myHost,         // gain.ImageSource
//	    Params:  myHost,         // gain.ParamSource
//	    Threads: myThreadPool,   // gain.ThreadPool
//	    Abort:   myHost,         // gain.AbortPoller
//	}
//	err := fx.Render(ctx, env, gain.RenderArgs{Time: t, Window: window})
//	status := gain.StatusOf(err)
//
// The host package contains an in-memory implementation of every
// collaborator, used by the tests and the gainfx command.
//
// # Parameters
//
// The global gain is the double parameter "scale". When the boolean
// parameter "componentScales" is true, "scaleR", "scaleG", "scaleB" and
// "scaleA" are multiplied into it per channel. Names can be changed with
// [WithParamNames].
//
// # Concurrency
//
// The render window is split into one horizontal band per worker reported by
// the ThreadPool. Bands write disjoint rows, so no locking happens during a
// render. Cancellation, through the context or the host's AbortPoller, is
// polled before every scanline; a cancelled render leaves a partially
// written frame and returns nil.
//
// # Architecture
//
// The module is organized into:
//   - Public API: Effect, Environment, Status, Option (this package)
//   - internal/image: strided buffers and bounds-checked pixel addressing
//   - internal/filter: per-depth gain kernels and processors
//   - internal/parallel: band split, scheduler and worker pool
//   - host: reference in-memory host
package gain

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// PluginID identifies the effect to hosts.
	PluginID = "org.gogpu.gain"
)
