// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends and their registry
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Sendspin/beep-go/pkg/audio"
)

// Source produces audio on demand
type Source interface {
	// Render fills buf with interleaved float32 frames
	Render(buf []float32)
}

// Output represents an audio output device
type Output interface {
	// Open initializes the output device and starts pulling from src
	Open(sampleRate, channels int, src Source) error

	// Close releases output resources
	Close() error
}

// LatencyReporter is implemented by outputs that render ahead of what the
// device is playing. Latency is the time between a frame being rendered and
// it being heard.
type LatencyReporter interface {
	Latency() time.Duration
}

// LatencyOf returns out's reported latency, or zero
func LatencyOf(out Output) time.Duration {
	if l, ok := out.(LatencyReporter); ok {
		return max(l.Latency(), 0)
	}
	return 0
}

// DefaultBackend is used when no backend is named
const DefaultBackend = "oto"

var backends = map[string]func() Output{
	"oto":       NewOto,
	"malgo":     NewMalgo,
	"pulse":     NewPulse,
	"portaudio": NewPortAudio,
	"null":      NewNull,
}

// Names returns the registered backend names in sorted order
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is a registered backend; empty means the default
func Has(name string) bool {
	_, ok := lookup(name)
	return ok
}

// ByName creates the named backend
func ByName(name string) (Output, error) {
	newOutput, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown output backend %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return newOutput(), nil
}

func lookup(name string) (func() Output, bool) {
	if name == "" {
		name = DefaultBackend
	}
	newOutput, ok := backends[strings.ToLower(name)]
	return newOutput, ok
}

// renderInt16 renders len(out) samples from src and converts them to 16-bit PCM
func renderInt16(src Source, scratch []float32, out []int16) []float32 {
	if cap(scratch) < len(out) {
		scratch = make([]float32, len(out))
	}
	scratch = scratch[:len(out)]
	src.Render(scratch)
	for i, s := range scratch {
		out[i] = audio.SampleToInt16(s)
	}
	return scratch
}
