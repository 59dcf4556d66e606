// Package host is an in-memory implementation of the collaborators a gain
// Effect needs: clip images, parameters, a thread pool and an abort signal.
//
// It is what the tests and the gainfx command render against. A real
// application host implements the gain interfaces over its own frame store.
package host

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gain"
)

// Host stores clip images and parameter values in memory.
//
// Thread safety: all methods are safe for concurrent use.
type Host struct {
	mu      sync.Mutex
	clips   map[string]*clip
	doubles map[string]func(t float64) float64
	bools   map[string]func(t float64) bool

	// checkedOut counts images handed out and not yet released.
	checkedOut atomic.Int64

	abortFlag  atomic.Bool
	abortAfter atomic.Int64 // polls left before abort; <0 disables
	polls      atomic.Int64
}

type clip struct {
	fallback *gain.Image
	frames   map[float64]*gain.Image
}

// New creates an empty host.
func New() *Host {
	h := &Host{
		clips:   make(map[string]*clip),
		doubles: make(map[string]func(float64) float64),
		bools:   make(map[string]func(float64) bool),
	}
	h.abortAfter.Store(-1)
	return h
}

// SetImage makes img the image of the named clip at every time without a
// dedicated frame.
func (h *Host) SetImage(name string, img *gain.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clipLocked(name).fallback = img
}

// SetFrame makes img the image of the named clip at exactly time t.
func (h *Host) SetFrame(name string, t float64, img *gain.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clipLocked(name).frames[t] = img
}

func (h *Host) clipLocked(name string) *clip {
	c, ok := h.clips[name]
	if !ok {
		c = &clip{frames: make(map[float64]*gain.Image)}
		h.clips[name] = c
	}
	return c
}

// Image implements gain.ImageSource.
func (h *Host) Image(name string, t float64) (*gain.Image, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clips[name]
	if !ok {
		return nil, fmt.Errorf("host: clip %q: %w", name, gain.ErrNoImageAvailable)
	}
	img := c.frames[t]
	if img == nil {
		img = c.fallback
	}
	if img == nil {
		return nil, fmt.Errorf("host: clip %q at %v: %w", name, t, gain.ErrNoImageAvailable)
	}
	h.checkedOut.Add(1)
	return img, nil
}

// Release implements gain.ImageSource.
func (h *Host) Release(*gain.Image) {
	h.checkedOut.Add(-1)
}

// Outstanding returns the number of images handed out and not released.
func (h *Host) Outstanding() int64 {
	return h.checkedOut.Load()
}

// SetDouble sets a constant double parameter.
func (h *Host) SetDouble(name string, v float64) {
	h.SetDoubleFunc(name, func(float64) float64 { return v })
}

// SetDoubleFunc sets a double parameter whose value depends on time.
func (h *Host) SetDoubleFunc(name string, fn func(t float64) float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.doubles[name] = fn
}

// SetBool sets a constant boolean parameter.
func (h *Host) SetBool(name string, v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bools[name] = func(float64) bool { return v }
}

// Double implements gain.ParamSource.
func (h *Host) Double(name string, t float64) (float64, error) {
	h.mu.Lock()
	fn, ok := h.doubles[name]
	h.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("host: double %q: %w", name, gain.ErrParamNotFound)
	}
	return fn(t), nil
}

// Bool implements gain.ParamSource.
func (h *Host) Bool(name string, t float64) (bool, error) {
	h.mu.Lock()
	fn, ok := h.bools[name]
	h.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("host: bool %q: %w", name, gain.ErrParamNotFound)
	}
	return fn(t), nil
}

// SetAbort raises or clears the abort signal.
func (h *Host) SetAbort(v bool) {
	h.abortFlag.Store(v)
}

// AbortAfter raises the abort signal once n more polls have returned false.
// A negative n disables the countdown.
func (h *Host) AbortAfter(n int) {
	h.abortAfter.Store(int64(n))
}

// Polls returns how many times Abort has been called.
func (h *Host) Polls() int64 {
	return h.polls.Load()
}

// Abort implements gain.AbortPoller.
func (h *Host) Abort() bool {
	h.polls.Add(1)
	if h.abortFlag.Load() {
		return true
	}
	if h.abortAfter.Load() < 0 {
		return false
	}
	if h.abortAfter.Add(-1) < 0 {
		h.abortFlag.Store(true)
		return true
	}
	return false
}

// Environment returns a gain.Environment backed by h and threads.
// threads may be nil for serial rendering.
func (h *Host) Environment(threads gain.ThreadPool) gain.Environment {
	return gain.Environment{
		Images:  h,
		Params:  h,
		Threads: threads,
		Abort:   h,
	}
}
