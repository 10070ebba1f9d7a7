// ABOUTME: PulseAudio output implementation
// ABOUTME: Native PulseAudio client playback stream fed by a float32 reader
package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/jfreymuth/pulse"
)

// Pulse output implementation using the native PulseAudio protocol
type Pulse struct {
	mu     sync.Mutex
	client *pulse.Client
	stream *pulse.PlaybackStream
}

// pulseLatency is the buffering requested from the server
const pulseLatency = 50 * time.Millisecond

// NewPulse creates a new Pulse output
func NewPulse() Output {
	return &Pulse{}
}

// Open connects to the PulseAudio server and starts a playback stream
func (p *Pulse) Open(sampleRate, channels int, src Source) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream != nil {
		return fmt.Errorf("pulse output already open")
	}

	var layout pulse.PlaybackOption
	switch channels {
	case 1:
		layout = pulse.PlaybackMono
	case 2:
		layout = pulse.PlaybackStereo
	default:
		return fmt.Errorf("unsupported channel count: %d (supported: 1, 2)", channels)
	}

	c, err := pulse.NewClient(pulse.ClientApplicationName("beep"))
	if err != nil {
		return fmt.Errorf("failed to connect to pulseaudio: %w", err)
	}

	reader := pulse.Float32Reader(func(buf []float32) (int, error) {
		n := len(buf) - len(buf)%channels
		src.Render(buf[:n])
		return n, nil
	})

	stream, err := c.NewPlayback(reader,
		layout,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(pulseLatency.Seconds()),
	)
	if err != nil {
		c.Close()
		return fmt.Errorf("failed to create playback stream: %w", err)
	}

	stream.Start()

	p.client = c
	p.stream = stream
	return nil
}

// Latency is the buffering requested from the server
func (p *Pulse) Latency() time.Duration {
	return pulseLatency
}

// Close stops the stream and disconnects
func (p *Pulse) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream != nil {
		p.stream.Stop()
		p.stream.Close()
		p.stream = nil
	}
	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
	return nil
}
