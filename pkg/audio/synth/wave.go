// ABOUTME: Waveform generators
// ABOUTME: Maps an oscillator phase in [0, 1) to a sample in [-1, 1]
package synth

import (
	"math"

	"github.com/Sendspin/beep-go/pkg/audio"
)

func sample(w audio.Waveform, phase float64) float64 {
	switch w {
	case audio.Sine:
		return math.Sin(2 * math.Pi * phase)
	case audio.Triangle:
		switch {
		case phase < 0.25:
			return 4 * phase
		case phase < 0.75:
			return 2 - 4*phase
		default:
			return 4*phase - 4
		}
	case audio.Sawtooth:
		return 2*phase - 1
	default:
		if phase < 0.5 {
			return 1
		}
		return -1
	}
}

// advance moves phase forward by one sample at freq and wraps it into [0, 1)
func advance(phase, freq float64, sampleRate int) float64 {
	_, phase = math.Modf(phase + freq/float64(sampleRate))
	if phase < 0 {
		phase++
	}
	return phase
}
