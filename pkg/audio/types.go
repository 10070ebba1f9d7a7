// ABOUTME: Audio type definitions
// ABOUTME: Defines waveforms and sample conversion helpers
package audio

import (
	"fmt"
	"math"
	"strings"
)

// Waveform is the shape of an oscillator's output
type Waveform int

const (
	Square Waveform = iota
	Sine
	Triangle
	Sawtooth
)

var waveformNames = [...]string{
	Square:   "square",
	Sine:     "sine",
	Triangle: "triangle",
	Sawtooth: "sawtooth",
}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// Valid reports whether w is one of the known waveforms
func (w Waveform) Valid() bool {
	return w >= 0 && int(w) < len(waveformNames)
}

// ParseWaveform converts a waveform name to a Waveform
func ParseWaveform(s string) (Waveform, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q (supported: %s)", s, strings.Join(waveformNames[:], ", "))
}

// Waveforms lists every supported waveform
func Waveforms() []Waveform {
	return []Waveform{Square, Sine, Triangle, Sawtooth}
}

// Clip limits a float sample to [-1, 1]
func Clip(sample float32) float32 {
	if sample > 1 {
		return 1
	}
	if sample < -1 {
		return -1
	}
	return sample
}

// SampleToInt16 converts a float sample in [-1, 1] to 16-bit PCM
func SampleToInt16(sample float32) int16 {
	return int16(math.Round(float64(Clip(sample)) * math.MaxInt16))
}

// SampleFromInt16 converts a 16-bit PCM sample to a float in [-1, 1]
func SampleFromInt16(sample int16) float32 {
	if sample == math.MinInt16 {
		return -1
	}
	return float32(sample) / math.MaxInt16
}
