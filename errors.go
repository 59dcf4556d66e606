package gain

import (
	"errors"
	"fmt"
	"runtime"
)

// Render failures. Every error returned by Render or IsIdentity wraps
// exactly one of these; use errors.Is or StatusOf to classify.
var (
	// ErrNoImageAvailable is returned when the host cannot supply the source
	// or output image. It is not returned when the render was cancelled.
	ErrNoImageAvailable = errors.New("gain: no image available")

	// ErrIncompatibleImageFormat is returned when source and output differ in
	// depth or components. No pixel is written.
	ErrIncompatibleImageFormat = errors.New("gain: incompatible image format")

	// ErrUnsupportedRepresentation is returned for a bit depth without a
	// processor. No pixel is written.
	ErrUnsupportedRepresentation = errors.New("gain: unsupported pixel representation")

	// ErrAllocationFailure marks a host or runtime allocation failure.
	ErrAllocationFailure = errors.New("gain: allocation failure")

	// ErrUnknownFailure is the catch-all for any other fault, including
	// panics recovered during a render.
	ErrUnknownFailure = errors.New("gain: unknown failure")

	// ErrParamNotFound may be returned by a ParamSource for a parameter it
	// does not define. The per-channel toggle treats it as false; for any
	// gain parameter it is a failure.
	ErrParamNotFound = errors.New("gain: parameter not found")
)

// Status is the result code reported to the host's action dispatcher.
type Status int

const (
	// StatusOK means the action succeeded.
	StatusOK Status = iota

	// StatusReplyDefault means the host should apply its default behaviour,
	// e.g. IsIdentity found the effect is not an identity.
	StatusReplyDefault

	// StatusFailed is a generic failure of this frame.
	StatusFailed

	// StatusErrImageFormat means source and output formats disagree.
	StatusErrImageFormat

	// StatusErrUnsupported means the pixel representation is not handled.
	StatusErrUnsupported

	// StatusErrMemory means an allocation failed.
	StatusErrMemory

	// StatusErrUnknown is any other fault.
	StatusErrUnknown
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusReplyDefault:
		return "ReplyDefault"
	case StatusFailed:
		return "Failed"
	case StatusErrImageFormat:
		return "ErrImageFormat"
	case StatusErrUnsupported:
		return "ErrUnsupported"
	case StatusErrMemory:
		return "ErrMemory"
	case StatusErrUnknown:
		return "ErrUnknown"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StatusOf converts a Render error into a host status code.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrIncompatibleImageFormat):
		return StatusErrImageFormat
	case errors.Is(err, ErrUnsupportedRepresentation):
		return StatusErrUnsupported
	case errors.Is(err, ErrAllocationFailure):
		return StatusErrMemory
	case errors.Is(err, ErrNoImageAvailable):
		return StatusFailed
	default:
		return StatusErrUnknown
	}
}

// IdentityStatus converts an IsIdentity result into a host status code.
func IdentityStatus(ok bool, err error) Status {
	if err != nil {
		return StatusOf(err)
	}
	if ok {
		return StatusOK
	}
	return StatusReplyDefault
}

// classify makes sure err carries one of the taxonomy sentinels.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		ErrNoImageAvailable,
		ErrIncompatibleImageFormat,
		ErrUnsupportedRepresentation,
		ErrAllocationFailure,
		ErrUnknownFailure,
	} {
		if errors.Is(err, known) {
			return fmt.Errorf("gain: %s: %w", op, err)
		}
	}
	return fmt.Errorf("gain: %s: %w: %w", op, ErrUnknownFailure, err)
}

// recovered turns a value caught by recover into a classified error.
func recovered(op string, r any) error {
	switch v := r.(type) {
	case runtime.Error:
		return fmt.Errorf("gain: %s: %w: panic: %w", op, ErrUnknownFailure, v)
	case error:
		return classify(op, v)
	default:
		return fmt.Errorf("gain: %s: %w: panic: %v", op, ErrUnknownFailure, v)
	}
}
