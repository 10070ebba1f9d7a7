//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform audio output using PortAudio
package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

// PortAudio output implementation
type PortAudio struct {
	mu     sync.Mutex
	stream *portaudio.Stream
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Output {
	return &PortAudio{}
}

// Open initializes PortAudio and starts a callback stream
func (p *PortAudio) Open(sampleRate, channels int, src Source) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream != nil {
		return fmt.Errorf("portaudio output already open")
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), 0, func(out []float32) {
		src.Render(out)
	})
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream
	return nil
}

// Latency is the output latency PortAudio reports for the open stream
func (p *PortAudio) Latency() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return 0
	}
	return p.stream.Info().OutputLatency
}

// Close releases resources
func (p *PortAudio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream == nil {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		return err
	}
	if err := p.stream.Close(); err != nil {
		return err
	}
	p.stream = nil
	return portaudio.Terminate()
}
