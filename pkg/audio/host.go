// ABOUTME: Host audio capability interface
// ABOUTME: Minimal node graph contract implemented by synthesis backends
package audio

import "context"

// Host creates audio pipelines
type Host interface {
	// CreatePipeline builds the host's audio output pipeline
	CreatePipeline(ctx context.Context) (Context, error)
}

// Context is a live audio pipeline with its own clock
type Context interface {
	// CurrentTime returns the pipeline clock in seconds
	CurrentTime() float64

	// Destination returns the sink that audible graphs connect to
	Destination() Node

	// CreateOscillator returns an unstarted oscillator
	CreateOscillator(w Waveform) (Oscillator, error)

	// CreateGain returns a gain node with the given level
	CreateGain(level float64) (Gain, error)

	// Close releases the pipeline
	Close() error
}

// Node is anything that can receive a signal
type Node interface {
	// Connect routes this node's output into dst
	Connect(dst Node) error
}

// Param is a value that can change on the pipeline clock
type Param interface {
	// Value returns the value in effect right now
	Value() float64

	// SetValue changes the value immediately
	SetValue(v float64)

	// SetValueAtTime schedules a change to v at time t (seconds)
	SetValueAtTime(v, t float64)

	// ValueAtTime returns the value in effect at time t
	ValueAtTime(t float64) float64
}

// Oscillator produces a periodic waveform
type Oscillator interface {
	Node

	Frequency() Param

	// Start begins output at time t; times in the past start immediately
	Start(t float64)

	// Stop ends output at time t
	Stop(t float64)

	// OnEnded registers fn to run once output has stopped
	OnEnded(fn func())
}

// Gain scales its input by Level
type Gain interface {
	Node

	Level() Param
}
