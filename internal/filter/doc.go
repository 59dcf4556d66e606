// Package filter implements the per-pixel channel gain and the typed
// processors that apply it to a band of scanlines.
//
// A Processor is selected once per render call from the buffer depth:
//   - 8-bit and 16-bit integer channels are truncated and clamped to [0, max]
//   - 32-bit float channels are scaled linearly and never clamped
//
// Inner loops are monomorphic per depth; no per-pixel dispatch takes place.
package filter
