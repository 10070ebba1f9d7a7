// ABOUTME: Sequencer error taxonomy
// ABOUTME: Sentinel errors callers match with errors.Is
package beep

import "errors"

var (
	// ErrEmptySequence is returned when Play is called with no tones
	ErrEmptySequence = errors.New("empty tone sequence")

	// ErrInvalidTone is returned for a non-positive frequency or negative duration
	ErrInvalidTone = errors.New("invalid tone")

	// ErrHostUnavailable is returned when the audio pipeline cannot be created
	ErrHostUnavailable = errors.New("audio host unavailable")

	// ErrClosed is returned once the sequencer has been closed
	ErrClosed = errors.New("sequencer closed")
)
