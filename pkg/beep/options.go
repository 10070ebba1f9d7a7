// ABOUTME: Sequencer construction options
// ABOUTME: Volume, waveform, host and logger settings fixed at construction
package beep

import (
	"math"

	"github.com/Sendspin/beep-go/pkg/audio"
	"github.com/rs/zerolog"
)

const (
	// DefaultVolume is full scale
	DefaultVolume = 1.0

	// DefaultWaveform matches a classic beeper
	DefaultWaveform = audio.Square
)

type options struct {
	volume   float64
	waveform audio.Waveform
	host     audio.Host
	logger   zerolog.Logger
}

// Option configures a Sequencer
type Option func(*options)

// WithVolume sets the output level. Values outside [0, 1] are clamped.
func WithVolume(volume float64) Option {
	return func(o *options) { o.volume = volume }
}

// WithWaveform sets the oscillator shape
func WithWaveform(w audio.Waveform) Option {
	return func(o *options) { o.waveform = w }
}

// WithHost sets the audio host (default: software synth on the oto backend)
func WithHost(h audio.Host) Option {
	return func(o *options) { o.host = h }
}

// WithLogger sets the logger (default: disabled)
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// clampVolume limits v to [0, 1]; NaN becomes silence
func clampVolume(v float64) (float64, bool) {
	switch {
	case math.IsNaN(v):
		return 0, true
	case v < 0:
		return 0, true
	case v > 1:
		return 1, true
	default:
		return v, false
	}
}
