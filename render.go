package gain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gain/internal/filter"
	"github.com/gogpu/gain/internal/parallel"
)

// RenderArgs are the per-call inputs of a render action.
type RenderArgs struct {
	// Time is the frame time to render.
	Time float64

	// Window is the region of the output image to write. It is clipped to
	// the output image bounds.
	Window Rect
}

// Effect is the gain image effect. An Effect holds only configuration; it is
// safe to render several frames concurrently with one Effect.
type Effect struct {
	opts options
}

// New creates an Effect with the given options.
func New(opts ...Option) *Effect {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Effect{opts: o}
}

// ResolveGains samples the gain parameters at time t. The global scale is
// applied to all channels; when the per-channel toggle is on, the four
// channel scales are multiplied in.
func (e *Effect) ResolveGains(params ParamSource, t float64) (Gains, error) {
	if params == nil {
		return Gains{}, fmt.Errorf("gain: resolve gains: %w: no parameter source", ErrUnknownFailure)
	}
	n := e.opts.names

	scale, err := params.Double(n.Scale, t)
	if err != nil {
		return Gains{}, classify(fmt.Sprintf("sample %q", n.Scale), err)
	}
	g := filter.Uniform(float32(scale))

	perChannel, err := params.Bool(n.ComponentScales, t)
	if err != nil {
		if !errors.Is(err, ErrParamNotFound) {
			return Gains{}, classify(fmt.Sprintf("sample %q", n.ComponentScales), err)
		}
		perChannel = false
	}
	if !perChannel {
		return g, nil
	}

	var channels Gains
	for i, name := range [4]string{n.ScaleR, n.ScaleG, n.ScaleB, n.ScaleA} {
		v, err := params.Double(name, t)
		if err != nil {
			return Gains{}, classify(fmt.Sprintf("sample %q", name), err)
		}
		channels[i] = float32(v)
	}
	return g.Mul(channels), nil
}

// IsIdentity reports whether rendering at time t would reproduce the source
// exactly. When ok is true, clip names the input the host may use directly
// as the output. Hosts call this separately from Render.
func (e *Effect) IsIdentity(env Environment, t float64) (clip string, ok bool, err error) {
	if !e.opts.identity {
		return "", false, nil
	}
	g, err := e.ResolveGains(env.Params, t)
	if err != nil {
		return "", false, err
	}
	if !g.IsIdentity() {
		return "", false, nil
	}
	return SourceClip, true, nil
}

// Render writes args.Window of the output clip at args.Time.
//
// Both images are released on every return path. A cancelled render
// returns nil, leaving a partially written output. Any other failure wraps
// one of the Err* sentinels; panics are recovered and reported as
// ErrUnknownFailure.
func (e *Effect) Render(ctx context.Context, env Environment, args RenderArgs) (err error) {
	log := Logger()
	start := time.Now()
	log.Debug("gain: render", "time", args.Time, "window", args.Window.String())

	var src, dst *Image
	defer func() {
		if r := recover(); r != nil {
			err = recovered("render", r)
		}
		release(env.Images, src)
		release(env.Images, dst)

		if err != nil {
			log.Warn("gain: render failed", "time", args.Time, "status", StatusOf(err).String(), "err", err)
		}
		log.Debug("gain: render done", "time", args.Time, "elapsed", time.Since(start))
	}()

	if env.Images == nil {
		return fmt.Errorf("gain: render: %w: no image source", ErrUnknownFailure)
	}

	// AcquireImages
	src, err = env.Images.Image(SourceClip, args.Time+e.opts.sourceTimeOffset)
	if err != nil || src == nil {
		return noImage(ctx, env, SourceClip, err)
	}
	dst, err = env.Images.Image(OutputClip, args.Time)
	if err != nil || dst == nil {
		return noImage(ctx, env, OutputClip, err)
	}

	// ValidateCompatibility
	if src.Format() != dst.Format() {
		return fmt.Errorf("gain: render: %w: source %s, output %s",
			ErrIncompatibleImageFormat, src.Format(), dst.Format())
	}

	// ResolveGains
	g, err := e.ResolveGains(env.Params, args.Time)
	if err != nil {
		return err
	}

	// SelectRepresentation
	proc, err := filter.NewProcessor(g, src, dst, e.opts.outside)
	if err != nil {
		if errors.Is(err, filter.ErrUnsupportedDepth) {
			return fmt.Errorf("gain: render: %w: %s", ErrUnsupportedRepresentation, dst.Depth())
		}
		return classify("render", err)
	}

	// Execute
	window := args.Window.Intersect(dst.Bounds())
	var threads parallel.Runner
	if env.Threads != nil {
		threads = env.Threads
	}
	sched := parallel.NewScheduler(threads, env.aborted)
	res, err := sched.Process(ctx, window, proc.ProcessBand)
	if err != nil {
		return classify("render", err)
	}

	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug("gain: rendered",
			"gains", g,
			"format", dst.Format().String(),
			"window", window.String(),
			"bands", res.Bands,
			"aborted", res.Aborted)
	}
	return nil
}

// noImage reports a failed image fetch. A fetch that failed because the
// render was cancelled is benign.
func noImage(ctx context.Context, env Environment, clip string, hostErr error) error {
	if ctx.Err() != nil || env.aborted() {
		return nil
	}
	if hostErr != nil && !errors.Is(hostErr, ErrNoImageAvailable) {
		return fmt.Errorf("gain: fetch %s image: %w: %w", clip, ErrNoImageAvailable, hostErr)
	}
	if hostErr != nil {
		return fmt.Errorf("gain: fetch %s image: %w", clip, hostErr)
	}
	return fmt.Errorf("gain: fetch %s image: %w", clip, ErrNoImageAvailable)
}

func release(images ImageSource, img *Image) {
	if images == nil || img == nil {
		return
	}
	images.Release(img)
}
