package transcript

import "errors"

var (
	// ErrInvalidURL means no video identifier could be resolved from the input.
	ErrInvalidURL = errors.New("invalid video url")

	// ErrNoTranscript means no captions exist in any preferred language and the
	// metadata fallback also failed.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrToolUnavailable means the external extraction tool is not installed
	// or not reachable.
	ErrToolUnavailable = errors.New("extraction tool unavailable")
)
